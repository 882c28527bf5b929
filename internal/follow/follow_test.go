package follow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Poll = true
	cfg.RotationInterval = 100 * time.Millisecond
	return cfg
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		t.Fatal(err)
	}
}

func expectLine(t *testing.T, lines <-chan string, errs <-chan error, want string) {
	t.Helper()
	select {
	case got, ok := <-lines:
		if !ok {
			t.Fatalf("lines closed, want %q", want)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	case err := <-errs:
		t.Fatalf("unexpected error waiting for %q: %v", want, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("timeout waiting for %q", want)
	}
}

func TestFollow_FromStart(t *testing.T) {
	path := writeFile(t, "first\r\nsecond\n")

	cfg := testConfig()
	cfg.FromStart = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines, errs, err := Follow(ctx, path, cfg)
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	expectLine(t, lines, errs, "first")
	expectLine(t, lines, errs, "second")

	appendLine(t, path, "third")
	expectLine(t, lines, errs, "third")
}

func TestFollow_LastN(t *testing.T) {
	path := writeFile(t, "1\n2\n3\n4\n5\n")

	cfg := testConfig()
	cfg.LastN = 2
	cfg.FromStart = true // LastN wins

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines, errs, err := Follow(ctx, path, cfg)
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	expectLine(t, lines, errs, "4")
	expectLine(t, lines, errs, "5")

	appendLine(t, path, "6")
	expectLine(t, lines, errs, "6")
}

func TestFollow_FromEnd(t *testing.T) {
	path := writeFile(t, "old\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines, errs, err := Follow(ctx, path, testConfig())
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	// Give the tailer time to seek to the end.
	time.Sleep(500 * time.Millisecond)

	appendLine(t, path, "new")
	expectLine(t, lines, errs, "new")
}

func TestFollow_ReplayLimit(t *testing.T) {
	path := writeFile(t, "aaaaaaaaaa\nbbbbbbbbbb\n")

	cfg := testConfig()
	cfg.LastN = 2
	cfg.MaxReplayBytes = 5

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, errs, err := Follow(ctx, path, cfg)
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	select {
	case err := <-errs:
		var ferr *Error
		if !errors.As(err, &ferr) || ferr.Op != OpReplay {
			t.Errorf("err = %v, want replay *Error", err)
		}
		if !errors.Is(err, ErrReplayLimitExceeded) {
			t.Errorf("err = %v, want ErrReplayLimitExceeded", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for replay error")
	}
}

func TestFollow_DirectoryRotation(t *testing.T) {
	dir := t.TempDir()
	oldFile := filepath.Join(dir, "app-1.log")
	if err := os.WriteFile(oldFile, nil, 0644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(oldFile, past, past); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.FromStart = true

	f, err := New(dir, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer f.Close()
	if filepath.Base(f.File()) != "app-1.log" {
		t.Fatalf("File() = %q, want app-1.log", f.File())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lines, errs, err := f.Follow(ctx)
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	appendLine(t, oldFile, "before rotation")
	expectLine(t, lines, errs, "before rotation")
	if err := os.Chtimes(oldFile, past, past); err != nil {
		t.Fatal(err)
	}

	// A file not matching the pattern is ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored\n"), 0644); err != nil {
		t.Fatal(err)
	}

	newFile := filepath.Join(dir, "app-2.log")
	if err := os.WriteFile(newFile, []byte("after rotation\n"), 0644); err != nil {
		t.Fatal(err)
	}
	expectLine(t, lines, errs, "after rotation")

	appendLine(t, newFile, "still following")
	expectLine(t, lines, errs, "still following")
}

func TestFollower_Lifecycle(t *testing.T) {
	path := writeFile(t, "")

	f, err := New(path, testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lines, errs, err := f.Follow(ctx)
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	if _, _, err := f.Follow(ctx); !errors.Is(err, ErrAlreadyFollowing) {
		t.Errorf("second Follow() err = %v, want ErrAlreadyFollowing", err)
	}

	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	// Both channels are closed once Close returns.
	if _, ok := <-lines; ok {
		t.Error("lines channel still open")
	}
	for range errs {
	}

	if _, _, err := f.Follow(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Follow() after Close err = %v, want ErrClosed", err)
	}
}

func TestFollow_ContextCancel(t *testing.T) {
	path := writeFile(t, "")

	ctx, cancel := context.WithCancel(context.Background())
	lines, _, err := Follow(ctx, path, testConfig())
	if err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	cancel()

	select {
	case _, ok := <-lines:
		if ok {
			t.Error("unexpected line after cancel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("lines channel not closed after cancel")
	}
}

func TestNew_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := New(filepath.Join(dir, "missing.log"), testConfig()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want os.ErrNotExist", err)
	}

	if _, err := New(dir, testConfig()); err == nil {
		t.Error("empty directory: want error")
	}

	cfg := testConfig()
	cfg.LastN = -1
	if _, err := New(writeFile(t, "x\n"), cfg); err == nil {
		t.Error("negative LastN: want error")
	}

	cfg = testConfig()
	cfg.RotationInterval = 0
	if _, err := New(writeFile(t, "x\n"), cfg); err == nil {
		t.Error("zero rotation interval: want error")
	}
}
