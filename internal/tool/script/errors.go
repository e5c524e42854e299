package script

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrFileMissing   = errors.New("file not found")
	ErrWrongFileType = errors.New("wrong file type")
	ErrPathRequired  = errors.New("file_path is required")
)

// -- Typed errors --

type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}
func (e *StatError) Unwrap() error { return e.Cause }
