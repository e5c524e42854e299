package path

import (
	"errors"
	"fmt"
)

// -- Error Types --

// WorkspaceRootError is returned when the workspace root is invalid.
type WorkspaceRootError struct {
	Root  string
	Cause error
}

func (e *WorkspaceRootError) Error() string {
	return fmt.Sprintf("invalid workspace root %s: %v", e.Root, e.Cause)
}
func (e *WorkspaceRootError) Unwrap() error { return e.Cause }

// SymlinkResolveError is returned when a path cannot be re-resolved through
// the real filesystem in symlink-aware mode.
type SymlinkResolveError struct {
	Path  string
	Cause error
}

func (e *SymlinkResolveError) Error() string {
	return fmt.Sprintf("failed to resolve symlinks for %s: %v", e.Path, e.Cause)
}
func (e *SymlinkResolveError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrOutsideWorkspace    = errors.New("path is outside workspace root")
	ErrWorkspaceRootNotSet = errors.New("workspace root not set")
	ErrNotADirectory       = errors.New("not a directory")
)
