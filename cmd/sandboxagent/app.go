package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Cyclone1070/sandboxagent/internal/config"
	"github.com/Cyclone1070/sandboxagent/internal/provider/gemini"
	"github.com/Cyclone1070/sandboxagent/internal/tool/directory"
	"github.com/Cyclone1070/sandboxagent/internal/tool/file"
	"github.com/Cyclone1070/sandboxagent/internal/tool/script"
	"github.com/Cyclone1070/sandboxagent/internal/tool/service/executor"
	"github.com/Cyclone1070/sandboxagent/internal/tool/service/fs"
	"github.com/Cyclone1070/sandboxagent/internal/tool/service/path"
	"github.com/Cyclone1070/sandboxagent/internal/ui"
	"github.com/Cyclone1070/sandboxagent/internal/workflow"
	"github.com/Cyclone1070/sandboxagent/internal/workflow/loop"
	"github.com/Cyclone1070/sandboxagent/internal/workflow/toolmanager"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const defaultRenderWidth = 100

var errMissingAPIKey = errors.New("GEMINI_API_KEY environment variable is required")

// Dependencies holds the components the command needs from the outside world.
type Dependencies struct {
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	// NewClient creates the Gemini API client for a key.
	NewClient func(ctx context.Context, apiKey string) (gemini.GeminiClient, error)
	// LoadConfig loads the config file at path, or the default location when path is empty.
	LoadConfig func(path string) (*config.Config, error)
	// Markdown renders the final answer; nil prints it verbatim.
	Markdown *ui.MarkdownRenderer
	// Interactive shows a spinner while the model thinks or a tool runs.
	Interactive bool
}

func DefaultDependencies() Dependencies {
	return Dependencies{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
		NewClient: func(ctx context.Context, apiKey string) (gemini.GeminiClient, error) {
			return gemini.NewClient(ctx, apiKey)
		},
		LoadConfig:  loadConfigFile,
		Markdown:    terminalRenderer(),
		Interactive: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

func loadConfigFile(configPath string) (*config.Config, error) {
	if configPath == "" {
		return config.Load()
	}
	return config.NewLoader().LoadFile(configPath, true)
}

// terminalRenderer returns a glamour renderer sized to stdout, or nil when
// stdout is not a terminal so piped output stays plain.
func terminalRenderer() *ui.MarkdownRenderer {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	width := defaultRenderWidth
	if w, _, err := term.GetSize(fd); err == nil && w > 0 && w < width {
		width = w
	}
	return ui.NewMarkdownRenderer(width)
}

// resolveConfig loads the config and applies command-line overrides.
func resolveConfig(deps Dependencies, opts *options) (*config.Config, error) {
	cfg, err := deps.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.root != "" {
		cfg.Sandbox.Root = opts.root
	}
	if opts.model != "" {
		cfg.Provider.Model = opts.model
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newProvider(ctx context.Context, deps Dependencies, cfg *config.Config) (*gemini.Provider, error) {
	apiKey := deps.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errMissingAPIKey
	}
	client, err := deps.NewClient(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return gemini.New(client, cfg.Provider), nil
}

// createTools wires the four sandbox tools to one resolver rooted at the
// canonical sandbox directory.
func createTools(cfg *config.Config, logger zerolog.Logger) (*toolmanager.ToolManager, error) {
	canonicalRoot, err := path.CanonicaliseRoot(cfg.Sandbox.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize sandbox root: %w", err)
	}

	resolver := path.NewResolver(canonicalRoot)
	if cfg.Sandbox.ResolveSymlinks {
		resolver = path.NewSymlinkAwareResolver(canonicalRoot)
	}

	osFS := fs.NewOSFileSystem()
	commandExecutor := executor.NewOSCommandExecutor(cfg)

	return toolmanager.NewToolManager(logger,
		directory.NewListDirectoryTool(osFS, cfg, resolver),
		file.NewReadFileTool(osFS, cfg, resolver),
		file.NewWriteFileTool(osFS, cfg, resolver),
		script.NewExecuteScriptTool(osFS, commandExecutor, cfg, resolver),
	), nil
}

func runPrompt(ctx context.Context, deps Dependencies, opts *options, prompt string) error {
	logger, closer, err := initLogger(opts.verbose, opts.logFile, deps.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := resolveConfig(deps, opts)
	if err != nil {
		return err
	}

	tools, err := createTools(cfg, logger)
	if err != nil {
		return err
	}

	llm, err := newProvider(ctx, deps, cfg)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("root", cfg.Sandbox.Root).
		Str("model", llm.Model()).
		Int("max_iterations", cfg.Workflow.MaxIterations).
		Msg("starting run")

	console := ui.NewConsole(deps.Stdout, opts.verbose, deps.Markdown)
	console.Prompt(prompt)

	events := make(chan workflow.Event, 16)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		if !deps.Interactive {
			console.Consume(events)
			return
		}
		if err := ui.RunProgress(console, events, deps.Stdout, ui.DotSpinner); err != nil {
			logger.Warn().Err(err).Msg("progress display stopped")
		}
	}()

	result, err := loop.NewLoop(llm, tools, events, cfg.Workflow.MaxIterations, logger).Run(ctx, prompt)
	close(events)
	<-printed

	if err != nil {
		return err
	}
	console.Answer(result.Text)
	return nil
}

func listModels(ctx context.Context, deps Dependencies, opts *options) error {
	cfg, err := resolveConfig(deps, opts)
	if err != nil {
		return err
	}
	llm, err := newProvider(ctx, deps, cfg)
	if err != nil {
		return err
	}
	names, err := llm.ListModels(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		marker := " "
		if name == llm.Model() {
			marker = "*"
		}
		fmt.Fprintf(deps.Stdout, "%s %s\n", marker, name)
	}
	return nil
}
