package follow

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func equalLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, want %d lines %q", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadLastN(t *testing.T) {
	tests := []struct {
		name    string
		content string
		n       int
		want    []string
	}{
		{"normal", "line1\nline2\nline3\nline4\nline5\n", 3, []string{"line3", "line4", "line5"}},
		{"fewer than n", "line1\nline2\n", 10, []string{"line1", "line2"}},
		{"exactly n", "line1\nline2\nline3\n", 3, []string{"line1", "line2", "line3"}},
		{"no trailing newline", "line1\nline2\nline3", 2, []string{"line2", "line3"}},
		{"empty lines count", "a\n\nb\n\n", 3, []string{"", "b", ""}},
		{"crlf", "line1\r\nline2\r\nline3\r\n", 2, []string{"line2", "line3"}},
		{"single newline", "\n", 5, []string{""}},
		{"single line", "only", 1, []string{"only"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)
			lines, offset, err := ReadLastN(path, tt.n, 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			equalLines(t, lines, tt.want)
			if offset != int64(len(tt.content)) {
				t.Errorf("offset = %d, want %d", offset, len(tt.content))
			}
		})
	}
}

func TestReadLastN_EmptyFile(t *testing.T) {
	path := writeFile(t, "")
	lines, offset, err := ReadLastN(path, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 || offset != 0 {
		t.Errorf("got %q at offset %d, want nothing at 0", lines, offset)
	}
}

func TestReadLastN_ZeroN(t *testing.T) {
	path := writeFile(t, "a\nb\n")
	lines, offset, err := ReadLastN(path, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("got %q, want no lines", lines)
	}
	if offset != 4 {
		t.Errorf("offset = %d, want 4", offset)
	}
}

func TestReadLastN_MultipleChunks(t *testing.T) {
	var sb strings.Builder
	var all []string
	for i := 0; i < 1000; i++ {
		line := strings.Repeat("x", 20) + "-" + strings.Repeat("y", i%7)
		all = append(all, line)
		sb.WriteString(line + "\n")
	}
	path := writeFile(t, sb.String())

	lines, _, err := ReadLastN(path, 500, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	equalLines(t, lines, all[500:])
}

func TestReadLastN_MaxBytesExceeded(t *testing.T) {
	content := strings.Repeat(strings.Repeat("z", 99)+"\n", 100)
	path := writeFile(t, content)

	_, _, err := ReadLastN(path, 100, 1024)
	if !errors.Is(err, ErrReplayLimitExceeded) {
		t.Errorf("err = %v, want ErrReplayLimitExceeded", err)
	}

	// A single chunk within the limit is fine.
	lines, _, err := ReadLastN(path, 2, 8192)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("got %d lines, want 2", len(lines))
	}
}

func TestReadLastN_FileNotFound(t *testing.T) {
	_, _, err := ReadLastN(filepath.Join(t.TempDir(), "missing.log"), 5, 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}
