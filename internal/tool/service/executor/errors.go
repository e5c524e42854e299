package executor

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = errors.New("command timeout")

// ErrEmptyCommand is returned when no program is given.
var ErrEmptyCommand = errors.New("empty command")

// CommandError represents a command that could not be run to completion.
type CommandError struct {
	Cmd   string
	Cause error
	Stage string // "start", "execution"
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed at %s: %v", e.Cmd, e.Stage, e.Cause)
}
func (e *CommandError) Unwrap() error { return e.Cause }
