package tztail

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Copy converts every line read from r and writes it to w. Line endings are
// preserved, including a missing newline on the last line. A non-nil
// highlight is applied to each replacement before writing.
//
// Copy stops at EOF or when ctx is canceled.
func (c *Converter) Copy(ctx context.Context, w io.Writer, r io.Reader, highlight func(string) string) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)

	for {
		if err := ctx.Err(); err != nil {
			_ = bw.Flush()
			return err
		}

		line, readErr := br.ReadString('\n')
		if line != "" {
			body, nl := strings.CutSuffix(line, "\n")
			out := c.ConvertLine(body).Highlight(highlight)
			if nl {
				out += "\n"
			}
			if _, err := bw.WriteString(out); err != nil {
				return fmt.Errorf("write: %w", err)
			}
			// Flush before the next read may block on a live pipe.
			if br.Buffered() == 0 {
				if err := bw.Flush(); err != nil {
					return fmt.Errorf("write: %w", err)
				}
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			_ = bw.Flush()
			return fmt.Errorf("read: %w", readErr)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
