package follow

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrClosed              = errors.New("follower closed")
	ErrAlreadyFollowing    = errors.New("already following")
	ErrReplayLimitExceeded = errors.New("replay limit exceeded")
)

// Op identifies the step of following that failed.
type Op string

const (
	OpReplay   Op = "replay"
	OpTail     Op = "tail"
	OpRotation Op = "rotation"
)

// Error reports a failure while following a file.
type Error struct {
	Op   Op
	Path string // may be empty
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
