package formatfile_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tztail/tztail-go/internal/safefile"
	"github.com/tztail/tztail-go/pkg/tztail/formatfile"
)

func TestLoad_Valid(t *testing.T) {
	ff, err := formatfile.Load("testdata/valid.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1, ff.Version)
	require.Len(t, ff.Formats, 2)
	assert.Equal(t, "syslog-iso", ff.Formats[0].Name)
	assert.Equal(t, []string{"%Y-%m-%dT%H:%M:%S%:z", "%d/%b/%Y:%H:%M:%S %z"}, ff.Specs())
}

func TestLoad_InvalidFormat(t *testing.T) {
	// Validation does not compile specifiers.
	ff, err := formatfile.Load("testdata/invalid_format.yaml")
	require.NoError(t, err)
	assert.NotNil(t, ff)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		file        string
		wantFormat  bool
		wantMessage string
	}{
		{"missing_fields.yaml", true, "format is required"},
		{"unsupported_version.yaml", false, "unsupported version"},
		{"duplicate_name.yaml", true, "duplicate name"},
		{"no_formats.yaml", false, "at least one format"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := formatfile.Load(filepath.Join("testdata", tt.file))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMessage)

			if tt.wantFormat {
				var fmtErr *formatfile.FormatError
				assert.True(t, errors.As(err, &fmtErr))
			} else {
				var valErr *formatfile.ValidationError
				assert.True(t, errors.As(err, &valErr))
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := formatfile.Load("testdata/nonexistent.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.NotContains(t, err.Error(), "nonexistent.yaml")
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := formatfile.Load(path)
	assert.ErrorIs(t, err, safefile.ErrEmpty)
}

func TestLoad_Directory(t *testing.T) {
	_, err := formatfile.Load(t.TempDir())
	assert.ErrorIs(t, err, safefile.ErrNotRegularFile)
}

func TestLoad_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.yaml")
	require.NoError(t, os.WriteFile(path, make([]byte, formatfile.MaxFileSize+1), 0644))

	_, err := formatfile.Load(path)
	assert.ErrorIs(t, err, safefile.ErrTooLarge)
}

func TestLoadBytes_Valid(t *testing.T) {
	ff, err := formatfile.LoadBytes([]byte(`version: 1
formats:
  - name: time-only
    format: "%H:%M:%S"
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"%H:%M:%S"}, ff.Specs())
}

func TestLoadBytes_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty", "", "empty"},
		{"malformed yaml", "version: [1", "failed to parse YAML"},
		{"missing name", "version: 1\nformats:\n  - format: \"%H\"\n", "name is required"},
		{"missing version", "formats:\n  - name: a\n    format: \"%H\"\n", "unsupported version 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := formatfile.LoadBytes([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_Limits(t *testing.T) {
	ff := &formatfile.File{Version: 1}
	for i := 0; i <= formatfile.MaxFormatCount; i++ {
		ff.Formats = append(ff.Formats, formatfile.Entry{Name: fmt.Sprintf("f%d", i), Format: "%H"})
	}
	err := ff.Validate()
	var valErr *formatfile.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Contains(t, err.Error(), "too many formats")

	ff = &formatfile.File{Version: 1, Formats: []formatfile.Entry{
		{Name: "long", Format: strings.Repeat("%H", formatfile.MaxFormatLength)},
	}}
	err = ff.Validate()
	var fmtErr *formatfile.FormatError
	require.True(t, errors.As(err, &fmtErr))
	assert.Equal(t, "long", fmtErr.Name)
	assert.Contains(t, err.Error(), "format too long")
}

func TestFormatError_Error(t *testing.T) {
	err := &formatfile.FormatError{Index: 3, Field: "name", Message: "name is required"}
	assert.Equal(t, "format[3]: name: name is required", err.Error())

	cause := errors.New("boom")
	err = &formatfile.FormatError{Index: 0, Name: "x", Field: "format", Message: "failed to compile", Cause: cause}
	assert.Equal(t, `format "x": format: failed to compile: boom`, err.Error())
	assert.ErrorIs(t, err, cause)
}
