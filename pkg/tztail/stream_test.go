package tztail

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Copy(t *testing.T) {
	c := mustNew(t, WithTimezone("Asia/Kolkata"))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lines with newline",
			input: "2018-11-03 22:39:33 a\nno timestamp\n2018-08-08 10:32:15 +0000 b\n",
			want:  "2018-11-04 04:09:33 a\nno timestamp\n2018-08-08 16:02:15 +0530 b\n",
		},
		{
			name:  "last line without newline",
			input: "x\n2018-11-03 22:39:33 tail",
			want:  "x\n2018-11-04 04:09:33 tail",
		},
		{
			name:  "empty lines kept",
			input: "\n\n2018-11-03 22:39:33\n\n",
			want:  "\n\n2018-11-04 04:09:33\n\n",
		},
		{
			name:  "carriage return is literal",
			input: "2018-11-03 22:39:33 dos\r\n",
			want:  "2018-11-04 04:09:33 dos\r\n",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := c.Copy(context.Background(), &out, strings.NewReader(tt.input), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestConverter_Copy_Highlight(t *testing.T) {
	c := mustNew(t, WithTimezone("Asia/Kolkata"))

	var out bytes.Buffer
	err := c.Copy(context.Background(), &out,
		strings.NewReader("2018-11-03 22:39:33 a\nplain\n"),
		func(s string) string { return "*" + s + "*" })
	require.NoError(t, err)
	assert.Equal(t, "*2018-11-04 04:09:33* a\nplain\n", out.String())
}

func TestConverter_Copy_Canceled(t *testing.T) {
	c := mustNew(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := c.Copy(ctx, &out, strings.NewReader("line\n"), nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestConverter_Copy_WriteError(t *testing.T) {
	c := mustNew(t)
	err := c.Copy(context.Background(), failingWriter{}, strings.NewReader("line\n"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestConverter_Copy_ReadError(t *testing.T) {
	c := mustNew(t)
	var out bytes.Buffer
	err := c.Copy(context.Background(), &out, failingReader{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device gone")
}
