// Package logfinder picks the log file to read when the user names a
// directory instead of a file.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// DefaultPattern matches the files considered logs inside a directory.
const DefaultPattern = "*.log"

// Sentinel errors.
var (
	ErrNoLogFiles   = errors.New("no log files found")
	ErrNotLogSource = errors.New("not a file or directory")
)

// Source is a resolved input path.
type Source struct {
	// File is the log file to read.
	File string

	// Dir is set when the user named a directory. A newer file matching
	// the pattern in Dir replaces File on rotation.
	Dir string
}

// Resolve turns a user-supplied path into a Source. A regular file is used
// as is. A directory resolves to its most recently modified file matching
// pattern (DefaultPattern if empty).
func Resolve(path, pattern string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Source{}, err
	}

	switch {
	case info.Mode().IsRegular():
		return Source{File: path}, nil
	case info.IsDir():
		// Resolve symlinks so rotation compares stable paths.
		dir, err := filepath.EvalSymlinks(path)
		if err != nil {
			return Source{}, fmt.Errorf("resolving directory: %w", err)
		}
		file, err := FindLatestLogFile(dir, pattern)
		if err != nil {
			return Source{}, err
		}
		return Source{File: file, Dir: dir}, nil
	default:
		return Source{}, ErrNotLogSource
	}
}

// logCandidate holds a log file path and its cached modification time.
// This avoids race conditions where files are deleted between stat and sort.
type logCandidate struct {
	path    string
	modTime int64
}

// FindLatestLogFile returns the most recently modified regular file in dir
// matching pattern (DefaultPattern if empty). Ties go to the
// lexicographically greatest name.
//
// Returns ErrNoLogFiles if nothing matches.
func FindLatestLogFile(dir, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("globbing log files: %w", err)
	}

	// Stat files once and cache results to avoid race conditions
	candidates := make([]logCandidate, 0, len(matches))
	for _, m := range matches {
		info, err := os.Lstat(m)
		if err != nil {
			// Deleted since the glob, or unreadable.
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		candidates = append(candidates, logCandidate{
			path:    m,
			modTime: info.ModTime().UnixNano(),
		})
	}

	if len(candidates) == 0 {
		return "", ErrNoLogFiles
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].modTime != candidates[j].modTime {
			return candidates[i].modTime > candidates[j].modTime
		}
		return candidates[i].path > candidates[j].path
	})

	return candidates[0].path, nil
}
