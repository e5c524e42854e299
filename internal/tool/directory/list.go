package directory

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Cyclone1070/sandboxagent/internal/config"
	"github.com/Cyclone1070/sandboxagent/internal/tool"
	"github.com/Cyclone1070/sandboxagent/internal/tool/service/path"
)

const listToolName = "get_files_info"

// ListDirectoryTool handles directory listing operations.
type ListDirectoryTool struct {
	fs           dirLister
	config       *config.Config
	pathResolver pathResolver
}

// NewListDirectoryTool creates a new ListDirectoryTool with injected dependencies.
func NewListDirectoryTool(fs dirLister, cfg *config.Config, pathResolver pathResolver) *ListDirectoryTool {
	return &ListDirectoryTool{
		fs:           fs,
		config:       cfg,
		pathResolver: pathResolver,
	}
}

func (t *ListDirectoryTool) Name() string { return listToolName }

func (t *ListDirectoryTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        listToolName,
		Description: "Lists files in the specified directory along with their sizes, constrained to the working directory.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"directory": tool.StringParam("The directory to list files from, relative to the working directory. If not provided, lists files in the working directory itself."),
			},
		},
	}
}

func (t *ListDirectoryTool) Input() any { return &ListDirectoryRequest{} }

// Execute adapts Run to the tool result contract.
func (t *ListDirectoryTool) Execute(ctx context.Context, input any) (*tool.Result, error) {
	req, ok := input.(*ListDirectoryRequest)
	if !ok {
		return nil, fmt.Errorf("unexpected input type %T", input)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := req.Directory
	if dir == "" {
		dir = "."
	}

	resp, err := t.Run(ctx, dir)
	switch {
	case err == nil:
		return tool.Success(listToolName, resp.String()), nil
	case errors.Is(err, path.ErrOutsideWorkspace):
		return tool.Failure(listToolName, fmt.Sprintf(`Error: Cannot list "%s" as it is outside the permitted working directory`, dir)), nil
	case errors.Is(err, ErrNotADirectory):
		return tool.Failure(listToolName, fmt.Sprintf(`Error: "%s" is not a directory`, dir)), nil
	default:
		return tool.Failure(listToolName, fmt.Sprintf(`Error: listing "%s": %v`, dir, err)), nil
	}
}

// Run lists the immediate children of dir, which is resolved against the
// sandbox root before anything touches the filesystem. A missing path is
// reported as ErrNotADirectory.
//
// Note: ctx is accepted for API consistency but not used - directory I/O is synchronous.
func (t *ListDirectoryTool) Run(ctx context.Context, dir string) (*ListDirectoryResponse, error) {
	abs, err := t.pathResolver.Abs(dir)
	if err != nil {
		return nil, err
	}

	info, err := t.fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotADirectory, abs)
		}
		return nil, &StatError{Path: abs, Cause: err}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, abs)
	}

	infos, err := t.fs.ListDir(abs)
	if err != nil {
		return nil, &ListDirError{Path: abs, Cause: err}
	}

	entries := make([]DirectoryEntry, 0, len(infos))
	for _, fi := range infos {
		entries = append(entries, DirectoryEntry{
			Name:  fi.Name(),
			Size:  fi.Size(),
			IsDir: fi.IsDir(),
		})
	}

	return &ListDirectoryResponse{AbsolutePath: abs, Entries: entries}, nil
}
