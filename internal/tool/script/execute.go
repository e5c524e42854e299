package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Cyclone1070/sandboxagent/internal/config"
	"github.com/Cyclone1070/sandboxagent/internal/tool"
	"github.com/Cyclone1070/sandboxagent/internal/tool/service/executor"
	"github.com/Cyclone1070/sandboxagent/internal/tool/service/path"
)

const toolName = "run_python_file"

// ExecuteScriptTool runs script files found inside the sandbox.
type ExecuteScriptTool struct {
	fs           fileStatter
	executor     commandExecutor
	config       *config.Config
	pathResolver pathResolver
}

// NewExecuteScriptTool creates a new ExecuteScriptTool with injected dependencies.
func NewExecuteScriptTool(fs fileStatter, executor commandExecutor, cfg *config.Config, pathResolver pathResolver) *ExecuteScriptTool {
	return &ExecuteScriptTool{
		fs:           fs,
		executor:     executor,
		config:       cfg,
		pathResolver: pathResolver,
	}
}

func (t *ExecuteScriptTool) Name() string { return toolName }

func (t *ExecuteScriptTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        toolName,
		Description: "Executes a Python file within the working directory and returns its standard output and standard error.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"file_path": tool.StringParam("The path to the Python file to execute, relative to the working directory."),
			},
			Required: []string{"file_path"},
		},
	}
}

func (t *ExecuteScriptTool) Input() any { return &ExecuteScriptRequest{} }

func (t *ExecuteScriptTool) timeout() time.Duration {
	return time.Duration(t.config.Tools.ScriptTimeoutSeconds) * time.Second
}

// Execute adapts Run to the tool result contract.
func (t *ExecuteScriptTool) Execute(ctx context.Context, input any) (*tool.Result, error) {
	req, ok := input.(*ExecuteScriptRequest)
	if !ok {
		return nil, fmt.Errorf("unexpected input type %T", input)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := t.Run(ctx, req)
	switch {
	case err == nil:
		return tool.Success(toolName, resp.String()), nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, ErrPathRequired):
		return tool.Failure(toolName, "Error: "+err.Error()), nil
	case errors.Is(err, path.ErrOutsideWorkspace):
		return tool.Failure(toolName, fmt.Sprintf(`Error: Cannot execute "%s" as it is outside the permitted working directory`, req.FilePath)), nil
	case errors.Is(err, ErrFileMissing):
		return tool.Failure(toolName, fmt.Sprintf(`Error: File "%s" not found.`, req.FilePath)), nil
	case errors.Is(err, ErrWrongFileType):
		return tool.Failure(toolName, fmt.Sprintf(`Error: "%s" is not a Python file.`, req.FilePath)), nil
	case errors.Is(err, executor.ErrTimeout):
		return tool.Failure(toolName, fmt.Sprintf("Error: executing Python file: timed out after %s", t.timeout())), nil
	default:
		return tool.Failure(toolName, fmt.Sprintf("Error: executing Python file: %v", err)), nil
	}
}

// Run spawns the configured interpreter on the file with the sandbox root
// as working directory. Nothing is spawned unless the file exists and has
// the configured extension. A non-zero exit status is not an error.
func (t *ExecuteScriptTool) Run(ctx context.Context, req *ExecuteScriptRequest) (*ExecuteScriptResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	abs, err := t.pathResolver.Abs(req.FilePath)
	if err != nil {
		return nil, err
	}

	info, err := t.fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, abs)
		}
		return nil, &StatError{Path: abs, Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrFileMissing, abs)
	}

	if filepath.Ext(abs) != t.config.Tools.ScriptExtension {
		return nil, fmt.Errorf("%w: %s", ErrWrongFileType, abs)
	}

	res, err := t.executor.Run(ctx, executor.Command{
		Args:    []string{t.config.Tools.ScriptInterpreter, abs},
		Dir:     t.pathResolver.Root(),
		Timeout: t.timeout(),
	})
	if err != nil {
		return nil, err
	}

	return &ExecuteScriptResponse{
		Stdout:    res.Stdout,
		Stderr:    res.Stderr,
		ExitCode:  res.ExitCode,
		Truncated: res.Truncated,
	}, nil
}
