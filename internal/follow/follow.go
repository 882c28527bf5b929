// Package follow streams the lines appended to a log file, like tail -f.
// When following a directory, it switches to a newer log file on rotation.
package follow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tztail/tztail-go/internal/logfinder"
)

// errBuffer is the buffer size for the error channel.
const errBuffer = 16

// Config configures a Follower.
type Config struct {
	// FromStart emits the whole file before following it.
	FromStart bool

	// LastN emits the last LastN lines before following. It takes
	// precedence over FromStart.
	LastN int

	// MaxReplayBytes bounds the bytes scanned for LastN (0 = unlimited).
	MaxReplayBytes int64

	// Poll checks files for changes by polling instead of inotify.
	Poll bool

	// RotationInterval is how often a followed directory is checked for a
	// newer log file.
	RotationInterval time.Duration

	// Pattern selects log files in a followed directory.
	Pattern string

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// DefaultConfig returns a Config that follows from the end of the file.
func DefaultConfig() Config {
	return Config{
		MaxReplayBytes:   64 * 1024 * 1024,
		RotationInterval: 2 * time.Second,
		Pattern:          logfinder.DefaultPattern,
	}
}

func (c Config) validate() error {
	if c.LastN < 0 {
		return fmt.Errorf("last N must be non-negative, got %d", c.LastN)
	}
	if c.MaxReplayBytes < 0 {
		return fmt.Errorf("max replay bytes must be non-negative, got %d", c.MaxReplayBytes)
	}
	if c.RotationInterval <= 0 {
		return fmt.Errorf("rotation interval must be positive, got %v", c.RotationInterval)
	}
	return nil
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Follower streams lines from a file or from the newest log in a directory.
type Follower struct {
	cfg Config
	src logfinder.Source
	log *slog.Logger

	mu        sync.Mutex
	closed    bool
	following bool
	cancel    context.CancelFunc
	doneCh    chan struct{}
}

// New resolves path and validates cfg. It does not start any goroutine.
func New(path string, cfg Config) (*Follower, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	src, err := logfinder.Resolve(path, cfg.Pattern)
	if err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = discardLogger
	}
	return &Follower{cfg: cfg, src: src, log: log}, nil
}

// Follow creates a Follower for path and starts it. The follower stops when
// ctx is canceled.
func Follow(ctx context.Context, path string, cfg Config) (<-chan string, <-chan error, error) {
	f, err := New(path, cfg)
	if err != nil {
		return nil, nil, err
	}
	return f.Follow(ctx)
}

// File returns the file being followed when the Follower was created.
func (f *Follower) File() string {
	return f.src.File
}

// Follow starts streaming. Lines carry no line terminator. Both channels
// close when ctx is canceled, Close is called, or tailing fails.
// Follow can only be called once.
func (f *Follower) Follow(ctx context.Context) (<-chan string, <-chan error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, nil, ErrClosed
	}
	if f.following {
		return nil, nil, ErrAlreadyFollowing
	}
	f.following = true

	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.doneCh = make(chan struct{})

	lineCh := make(chan string)
	errCh := make(chan error, errBuffer)

	go f.run(ctx, lineCh, errCh)

	return lineCh, errCh, nil
}

// Close stops the follower and waits for its goroutine to exit.
// Safe to call multiple times.
func (f *Follower) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	if f.cancel != nil {
		f.cancel()
	}
	doneCh := f.doneCh
	f.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

func (f *Follower) run(ctx context.Context, lineCh chan<- string, errCh chan<- error) {
	defer close(f.doneCh)
	defer close(lineCh)
	defer close(errCh)

	file := f.src.File
	from := seekEnd()
	switch {
	case f.cfg.LastN > 0:
		f.log.Debug("replaying last lines", "n", f.cfg.LastN, "path", file)
		lines, offset, err := ReadLastN(file, f.cfg.LastN, f.cfg.MaxReplayBytes)
		if err != nil {
			sendError(ctx, errCh, &Error{Op: OpReplay, Path: file, Err: err})
			break
		}
		for _, line := range lines {
			if !send(ctx, lineCh, line) {
				return
			}
		}
		from = seekTo(offset)
	case f.cfg.FromStart:
		from = nil
	}

	t, err := openTail(file, from, f.cfg.Poll)
	if err != nil {
		sendError(ctx, errCh, &Error{Op: OpTail, Path: file, Err: err})
		return
	}
	defer func() { stopTail(t) }()
	f.log.Debug("started tailing", "path", file)

	var rotation <-chan time.Time
	if f.src.Dir != "" {
		ticker := time.NewTicker(f.cfg.RotationInterval)
		defer ticker.Stop()
		rotation = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-t.Lines:
			if !ok {
				if err := t.Err(); err != nil {
					sendError(ctx, errCh, &Error{Op: OpTail, Path: file, Err: err})
				}
				return
			}
			if line.Err != nil {
				sendError(ctx, errCh, &Error{Op: OpTail, Path: file, Err: line.Err})
				continue
			}
			if !send(ctx, lineCh, strings.TrimSuffix(line.Text, "\r")) {
				return
			}
		case <-rotation:
			newFile, err := logfinder.FindLatestLogFile(f.src.Dir, f.cfg.Pattern)
			if err != nil {
				sendError(ctx, errCh, &Error{Op: OpRotation, Err: err})
				continue
			}
			if newFile == file {
				continue
			}
			f.log.Debug("log rotation detected", "from", file, "to", newFile)
			nt, err := openTail(newFile, nil, f.cfg.Poll)
			if err != nil {
				sendError(ctx, errCh, &Error{Op: OpTail, Path: newFile, Err: err})
				continue
			}
			stopTail(t)
			t, file = nt, newFile
		}
	}
}

func send(ctx context.Context, ch chan<- string, line string) bool {
	select {
	case ch <- line:
		return true
	case <-ctx.Done():
		return false
	}
}

// sendError drops err if the buffer is full or ctx is done.
func sendError(ctx context.Context, errCh chan<- error, err error) {
	if err == nil {
		return
	}
	select {
	case errCh <- err:
	case <-ctx.Done():
	default:
	}
}
