package follow

import (
	"strings"

	"github.com/tztail/tztail-go/internal/safefile"
)

const chunkSize = 4096

// ReadLastN returns the last n lines of path, oldest first, and the file
// size at the time of reading so that following can resume exactly there.
// Empty lines count. Line terminators, including a trailing "\r", are
// removed.
//
// If maxBytes > 0 and more than maxBytes must be scanned to collect n
// lines, ErrReplayLimitExceeded is returned.
func ReadLastN(path string, n int, maxBytes int64) ([]string, int64, error) {
	f, info, err := safefile.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	size := info.Size()
	if n <= 0 || size == 0 {
		return nil, size, nil
	}

	// Scan backwards for the newline that precedes the n-th line from the
	// end. A newline in the file's last byte terminates the last line and
	// does not start a new one.
	start := int64(0)
	found := 0
	buf := make([]byte, chunkSize)
	pos := size
scan:
	for pos > 0 {
		readSize := int64(chunkSize)
		if pos < readSize {
			readSize = pos
		}
		pos -= readSize

		if maxBytes > 0 && size-pos > maxBytes {
			return nil, 0, ErrReplayLimitExceeded
		}

		chunk := buf[:readSize]
		if _, err := f.ReadAt(chunk, pos); err != nil {
			return nil, 0, err
		}
		for i := len(chunk) - 1; i >= 0; i-- {
			off := pos + int64(i)
			if chunk[i] != '\n' || off == size-1 {
				continue
			}
			found++
			if found == n {
				start = off + 1
				break scan
			}
		}
	}

	data := make([]byte, size-start)
	if _, err := f.ReadAt(data, start); err != nil {
		return nil, 0, err
	}

	text := strings.TrimSuffix(string(data), "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, size, nil
}
