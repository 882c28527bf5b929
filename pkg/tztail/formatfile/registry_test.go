package formatfile_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tztail/tztail-go/pkg/tztail/formatfile"
	"github.com/tztail/tztail-go/pkg/tztail/timefmt"
)

func TestNewRegistryFromFile(t *testing.T) {
	reg, err := formatfile.NewRegistryFromFile("testdata/valid.yaml")
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	m, ok := reg.Find("<13>1 2020-03-01T10:20:30+05:30 host app")
	require.True(t, ok)
	assert.Equal(t, "%Y-%m-%dT%H:%M:%S%:z", m.Format.String())
	assert.Equal(t, "2020-03-01T10:20:30+05:30", m.Text)

	m, ok = reg.Find(`10.0.0.1 - - [14/Nov/2018:22:14:27 -0800] "GET /"`)
	require.True(t, ok)
	assert.Equal(t, "%d/%b/%Y:%H:%M:%S %z", m.Format.String())
}

func TestNewRegistry_KeepsFileOrder(t *testing.T) {
	ff := &formatfile.File{Version: 1, Formats: []formatfile.Entry{
		{Name: "time", Format: "%H:%M:%S"},
		{Name: "datetime", Format: "%Y-%m-%d %H:%M:%S"},
	}}
	reg, err := formatfile.NewRegistry(ff)
	require.NoError(t, err)

	m, ok := reg.Find("2020-03-01 10:20:30")
	require.True(t, ok)
	assert.Equal(t, "%H:%M:%S", m.Format.String())
	assert.Equal(t, "10:20:30", m.Text)
}

func TestNewRegistry_CompileError(t *testing.T) {
	_, err := formatfile.NewRegistryFromFile("testdata/invalid_format.yaml")
	require.Error(t, err)

	var fmtErr *formatfile.FormatError
	require.True(t, errors.As(err, &fmtErr))
	assert.Equal(t, 0, fmtErr.Index)
	assert.Equal(t, "broken", fmtErr.Name)
	assert.True(t, errors.Is(err, timefmt.ErrInvalidFormat))
}

func TestNewRegistry_Invalid(t *testing.T) {
	_, err := formatfile.NewRegistry(nil)
	require.Error(t, err)

	_, err = formatfile.NewRegistry(&formatfile.File{Version: 1})
	var valErr *formatfile.ValidationError
	assert.True(t, errors.As(err, &valErr))
}
