package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tztail/tztail-go/internal/follow"
	"github.com/tztail/tztail-go/internal/logfinder"
	"github.com/tztail/tztail-go/internal/safefile"
	"github.com/tztail/tztail-go/pkg/tztail"
)

// run converts the input selected by s and writes it to stdout.
// Diagnostics go to stderr.
func run(ctx context.Context, s settings, stdin io.Reader, stdout, stderr io.Writer) error {
	logger := newLogger(stderr, s.Verbose)

	conv, err := buildConverter(s, logger)
	if err != nil {
		return err
	}
	highlight := newHighlighter(stdout, s.Color)

	if s.stdin() {
		if s.Follow || s.Lines >= 0 {
			return errors.New("--follow and --lines need a FILE")
		}
		logger.Debug("reading standard input")
		return ignoreCanceled(conv.Copy(ctx, stdout, stdin, highlight))
	}

	if s.Follow {
		return followFile(ctx, conv, s, stdout, highlight, logger)
	}

	src, err := logfinder.Resolve(s.Path, "")
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	logger.Debug("reading file", "path", src.File)

	if s.Lines >= 0 {
		lines, _, err := follow.ReadLastN(src.File, s.Lines, follow.DefaultConfig().MaxReplayBytes)
		if err != nil {
			return fmt.Errorf("input: %w", err)
		}
		return writeLines(stdout, conv, lines, highlight)
	}

	f, _, err := safefile.Open(src.File)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	defer f.Close()

	return ignoreCanceled(conv.Copy(ctx, stdout, f, highlight))
}

// followFile streams converted lines until ctx is canceled. Without --lines
// the whole file is printed first.
func followFile(ctx context.Context, conv *tztail.Converter, s settings, w io.Writer, highlight func(string) string, logger *slog.Logger) error {
	cfg := follow.DefaultConfig()
	cfg.Logger = logger
	if s.Lines < 0 {
		cfg.FromStart = true
	} else {
		cfg.LastN = s.Lines
	}

	f, err := follow.New(s.Path, cfg)
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	defer f.Close()

	lines, errs, err := f.Follow(ctx)
	if err != nil {
		return fmt.Errorf("follow: %w", err)
	}
	logger.Debug("following", "path", f.File())

	return streamLines(ctx, lines, errs, func(line string) error {
		_, err := io.WriteString(w, conv.ConvertLine(line).Highlight(highlight)+"\n")
		return err
	}, logger)
}

// streamLines writes followed lines until the stream ends. Errors are logged
// as they arrive. If the stream ends while ctx is still live, the last error
// seen is returned so the exit status reflects the failure.
func streamLines(ctx context.Context, lines <-chan string, errs <-chan error, write func(string) error, logger *slog.Logger) error {
	var last error
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				if errs != nil {
					for err := range errs {
						logger.Warn("follow error", "error", err)
						last = err
					}
				}
				if last != nil {
					return fmt.Errorf("follow: %w", last)
				}
				return nil
			}
			if err := write(line); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("follow error", "error", err)
			last = err
		case <-ctx.Done():
			return nil
		}
	}
}

func writeLines(w io.Writer, conv *tztail.Converter, lines []string, highlight func(string) string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(conv.ConvertLine(line).Highlight(highlight) + "\n"); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ignoreCanceled treats an interrupted copy as a clean exit.
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
