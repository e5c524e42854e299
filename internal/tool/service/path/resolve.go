package path

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// Resolver confines paths to a single workspace root.
// The root is fixed at construction and never changes.
type Resolver struct {
	workspaceRoot   string
	resolveSymlinks bool
}

// NewResolver creates a new path resolver for the given workspace.
// The containment check is purely lexical: a symlink inside the workspace
// that points outside of it is not detected.
func NewResolver(workspaceRoot string) *Resolver {
	return &Resolver{
		workspaceRoot: workspaceRoot,
	}
}

// NewSymlinkAwareResolver creates a resolver that, after the lexical check,
// evaluates symlinks scoped to the workspace root so they cannot lead outside.
func NewSymlinkAwareResolver(workspaceRoot string) *Resolver {
	return &Resolver{
		workspaceRoot:   workspaceRoot,
		resolveSymlinks: true,
	}
}

// Root returns the workspace root.
func (r *Resolver) Root() string {
	return r.workspaceRoot
}

// CanonicaliseRoot canonicalises a workspace root path by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &WorkspaceRootError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &WorkspaceRootError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &WorkspaceRootError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &WorkspaceRootError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Abs resolves any path to absolute and validates it is within the workspace boundary.
// It cleans the path and ensures it does not escape the workspace root.
func (r *Resolver) Abs(path string) (string, error) {
	if r.workspaceRoot == "" {
		return "", ErrWorkspaceRootNotSet
	}

	var abs string
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else {
		abs = filepath.Clean(filepath.Join(r.workspaceRoot, path))
	}

	// Boundary check: must be the root itself or a child of the root
	if !r.contains(abs) {
		return "", ErrOutsideWorkspace
	}

	if !r.resolveSymlinks {
		return abs, nil
	}

	rel, err := filepath.Rel(r.workspaceRoot, abs)
	if err != nil {
		return "", ErrOutsideWorkspace
	}
	resolved, err := securejoin.SecureJoin(r.workspaceRoot, rel)
	if err != nil {
		return "", &SymlinkResolveError{Path: abs, Cause: err}
	}
	return resolved, nil
}

func (r *Resolver) contains(abs string) bool {
	if abs == r.workspaceRoot {
		return true
	}
	prefix := r.workspaceRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(abs, prefix)
}
