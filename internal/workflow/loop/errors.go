package loop

import (
	"errors"
	"fmt"
)

var (
	// ErrMaxIterations reports that the round budget ran out while the
	// model was still requesting tools.
	ErrMaxIterations = errors.New("max iterations reached")

	ErrMissingToolResponse = errors.New("no tool response")
	ErrEmptyReply          = errors.New("provider returned no reply")
)

// MaxIterationsError carries the transcript accumulated before the budget ran out.
type MaxIterationsError struct {
	Limit      int
	Transcript Transcript
}

func (e *MaxIterationsError) Error() string {
	return fmt.Sprintf("max iterations (%d) reached", e.Limit)
}
func (e *MaxIterationsError) Unwrap() error { return ErrMaxIterations }
