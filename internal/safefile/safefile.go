// Package safefile opens and reads user-supplied files, refusing anything
// that is not a regular file.
package safefile

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Sentinel errors.
var (
	// ErrNotRegularFile is returned for symlinks (OpenRegular only), FIFOs,
	// devices, sockets and directories.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrTooLarge is returned by ReadFile when the file exceeds its limit.
	ErrTooLarge = errors.New("file too large")

	// ErrEmpty is returned by ReadFile for an empty file.
	ErrEmpty = errors.New("file is empty")
)

// OpenRegular opens path without following a final symlink and verifies
// that both the path and the opened descriptor are regular files.
//
// There is still a small window between Lstat and Open; Go does not expose
// O_NOFOLLOW portably. Stat-ing the descriptor afterwards catches a path
// swapped for a special file in between.
//
// The caller must close the returned file.
func OpenRegular(path string) (*os.File, os.FileInfo, error) {
	linkInfo, err := os.Lstat(path)
	if err != nil {
		return nil, nil, err
	}
	if !linkInfo.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}
	return open(path)
}

// Open opens path, following symlinks, and verifies the target is a regular
// file. Use it for inputs such as log files that are commonly symlinked.
//
// The caller must close the returned file.
func Open(path string) (*os.File, os.FileInfo, error) {
	// Check before opening: opening a FIFO for reading blocks.
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, nil, ErrNotRegularFile
	}
	return open(path)
}

func open(path string) (*os.File, os.FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	// Stat the descriptor, not the path.
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegularFile
	}
	return f, info, nil
}

// ReadFile reads a regular, non-symlinked file of at most limit bytes.
// Errors never contain the path.
func ReadFile(path string, limit int64) ([]byte, error) {
	f, info, err := OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", SanitizePathError(err))
	}
	defer f.Close()

	if info.Size() == 0 {
		return nil, ErrEmpty
	}
	if info.Size() > limit {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, info.Size(), limit)
	}

	// Read one byte past the limit to notice a file that grew after Stat.
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read: %w", SanitizePathError(err))
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

// SanitizePathError strips the path from an *os.PathError so that error
// messages do not leak file system layout.
func SanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}
