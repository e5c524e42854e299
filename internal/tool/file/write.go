package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/Cyclone1070/sandboxagent/internal/config"
	"github.com/Cyclone1070/sandboxagent/internal/tool"
	"github.com/Cyclone1070/sandboxagent/internal/tool/service/path"
)

const writeToolName = "write_file"

const defaultFilePerm os.FileMode = 0o644

// WriteFileTool handles file writing operations.
type WriteFileTool struct {
	fileOps      fileWriter
	config       *config.Config
	pathResolver pathResolver
}

// NewWriteFileTool creates a new WriteFileTool with injected dependencies.
func NewWriteFileTool(fileOps fileWriter, cfg *config.Config, pathResolver pathResolver) *WriteFileTool {
	return &WriteFileTool{
		fileOps:      fileOps,
		config:       cfg,
		pathResolver: pathResolver,
	}
}

func (t *WriteFileTool) Name() string { return writeToolName }

func (t *WriteFileTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        writeToolName,
		Description: "Writes content to a file within the working directory. Creates the file and any missing parent directories, and overwrites the file if it already exists.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"file_path": tool.StringParam("The path to the file to write, relative to the working directory."),
				"content":   tool.StringParam("The content to write to the file."),
			},
			Required: []string{"file_path", "content"},
		},
	}
}

func (t *WriteFileTool) Input() any { return &WriteFileRequest{} }

// Execute adapts Run to the tool result contract.
func (t *WriteFileTool) Execute(ctx context.Context, input any) (*tool.Result, error) {
	req, ok := input.(*WriteFileRequest)
	if !ok {
		return nil, fmt.Errorf("unexpected input type %T", input)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := t.Run(ctx, req)
	switch {
	case err == nil:
		return tool.Success(writeToolName, fmt.Sprintf(`Successfully wrote to "%s" (%d characters written)`, req.FilePath, resp.CharsWritten)), nil
	case errors.Is(err, ErrPathRequired):
		return tool.Failure(writeToolName, "Error: "+err.Error()), nil
	case errors.Is(err, path.ErrOutsideWorkspace):
		return tool.Failure(writeToolName, fmt.Sprintf(`Error: Cannot write to "%s" as it is outside the permitted working directory`, req.FilePath)), nil
	case errors.Is(err, ErrIsDirectory):
		return tool.Failure(writeToolName, fmt.Sprintf(`Error: Cannot write to "%s" as it is a directory`, req.FilePath)), nil
	default:
		return tool.Failure(writeToolName, fmt.Sprintf(`Error: writing to file "%s": %v`, req.FilePath, err)), nil
	}
}

// Run replaces the file's content, creating it and its missing parent
// directories as needed. The write goes through a temp file and rename, so
// a failed write leaves any previous content intact. Existing files keep
// their permission bits.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *WriteFileTool) Run(ctx context.Context, req *WriteFileRequest) (*WriteFileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	abs, err := t.pathResolver.Abs(req.FilePath)
	if err != nil {
		return nil, err
	}

	perm := defaultFilePerm
	created := false

	info, err := t.fileOps.Stat(abs)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrIsDirectory, abs)
		}
		perm = info.Mode().Perm()
	case os.IsNotExist(err):
		created = true
	default:
		return nil, &StatError{Path: abs, Cause: err}
	}

	// Parents may have been removed since the stat.
	parentDir := filepath.Dir(abs)
	if err := t.fileOps.EnsureDirs(parentDir); err != nil {
		return nil, &EnsureDirsError{Path: parentDir, Cause: err}
	}

	if err := t.fileOps.WriteFileAtomic(abs, []byte(req.Content), perm); err != nil {
		return nil, &WriteError{Path: abs, Cause: err}
	}

	return &WriteFileResponse{
		AbsolutePath: abs,
		CharsWritten: utf8.RuneCountInString(req.Content),
		Created:      created,
	}, nil
}
