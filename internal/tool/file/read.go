package file

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Cyclone1070/sandboxagent/internal/config"
	"github.com/Cyclone1070/sandboxagent/internal/tool"
	"github.com/Cyclone1070/sandboxagent/internal/tool/service/fs"
	"github.com/Cyclone1070/sandboxagent/internal/tool/service/path"
)

const readToolName = "get_file_content"

// ReadFileTool handles file reading operations.
type ReadFileTool struct {
	fileOps      fileReader
	config       *config.Config
	pathResolver pathResolver
}

// NewReadFileTool creates a new ReadFileTool with injected dependencies.
func NewReadFileTool(fileOps fileReader, cfg *config.Config, pathResolver pathResolver) *ReadFileTool {
	return &ReadFileTool{
		fileOps:      fileOps,
		config:       cfg,
		pathResolver: pathResolver,
	}
}

func (t *ReadFileTool) Name() string { return readToolName }

func (t *ReadFileTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name: readToolName,
		Description: fmt.Sprintf(
			"Reads and returns the first %d characters of the content from a specified file within the working directory.",
			t.config.Tools.MaxReadChars,
		),
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"file_path": tool.StringParam("The path to the file whose content should be read, relative to the working directory."),
			},
			Required: []string{"file_path"},
		},
	}
}

func (t *ReadFileTool) Input() any { return &ReadFileRequest{} }

// Execute adapts Run to the tool result contract.
func (t *ReadFileTool) Execute(ctx context.Context, input any) (*tool.Result, error) {
	req, ok := input.(*ReadFileRequest)
	if !ok {
		return nil, fmt.Errorf("unexpected input type %T", input)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := t.Run(ctx, req)
	switch {
	case err == nil:
		return tool.Success(readToolName, resp.Content), nil
	case errors.Is(err, ErrPathRequired):
		return tool.Failure(readToolName, "Error: "+err.Error()), nil
	case errors.Is(err, path.ErrOutsideWorkspace):
		return tool.Failure(readToolName, fmt.Sprintf(`Error: Cannot read "%s" as it is outside the permitted working directory`, req.FilePath)), nil
	case errors.Is(err, ErrFileMissing):
		return tool.Failure(readToolName, fmt.Sprintf(`Error: File not found or is not a regular file: "%s"`, req.FilePath)), nil
	default:
		return tool.Failure(readToolName, fmt.Sprintf(`Error: reading file "%s": %v`, req.FilePath, err)), nil
	}
}

// Run reads at most tools.max_read_chars characters of the file. When the
// file is longer, a marker naming the absolute path is appended to the
// returned content.
//
// Note: ctx is accepted for API consistency but not used - file I/O is synchronous.
func (t *ReadFileTool) Run(ctx context.Context, req *ReadFileRequest) (*ReadFileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	abs, err := t.pathResolver.Abs(req.FilePath)
	if err != nil {
		return nil, err
	}

	maxChars := t.config.Tools.MaxReadChars
	prefix, err := t.fileOps.ReadFilePrefix(abs, maxChars)
	if err != nil {
		if os.IsNotExist(err) || errors.Is(err, fs.ErrNotRegular) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, abs)
		}
		return nil, &ReadError{Path: abs, Cause: err}
	}

	content := prefix.Content
	if prefix.Truncated {
		content += fmt.Sprintf(`[...File "%s" truncated at %d characters]`, abs, maxChars)
	}

	return &ReadFileResponse{
		AbsolutePath: abs,
		Content:      content,
		Truncated:    prefix.Truncated,
	}, nil
}
