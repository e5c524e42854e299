// Package main provides the sandboxagent command: it hands a prompt to a
// Gemini model that may inspect and change files under a sandbox directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cyclone1070/sandboxagent/internal/provider"
	"github.com/Cyclone1070/sandboxagent/internal/ui"
	"github.com/Cyclone1070/sandboxagent/internal/workflow/loop"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	exitError         = 1
	exitMaxIterations = 2
)

var errTooFewArgs = errors.New("Too few args were provided.  Please provide a prompt, in quotes, as an argument.")

type options struct {
	verbose    bool
	root       string
	model      string
	logFile    string
	configPath string
}

func newRootCmd(deps Dependencies) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "sandboxagent <prompt>",
		Short: "Let a Gemini model work on files inside a sandbox directory",
		Long: `sandboxagent sends a prompt to a Gemini model that can list, read and write
files and run scripts, all confined to the sandbox root directory.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errTooFewArgs
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt(cmd.Context(), deps, opts, args[0])
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "print prompts, tool results and token usage")
	flags.StringVar(&opts.root, "root", "", "sandbox root directory (overrides sandbox.root)")
	flags.StringVarP(&opts.model, "model", "m", "", "Gemini model name (overrides provider.model)")
	flags.StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file")
	flags.StringVar(&opts.configPath, "config", "", "config file path (default ~/.config/sandboxagent/config.json)")

	cmd.AddCommand(newModelsCmd(deps, opts))
	return cmd
}

func newModelsCmd(deps Dependencies, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the Gemini text models available to the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listModels(cmd.Context(), deps, opts)
		},
	}
}

func exitCode(err error) int {
	if errors.Is(err, loop.ErrMaxIterations) {
		return exitMaxIterations
	}
	return exitError
}

func main() {
	// A missing .env file is fine; the key may come from the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := DefaultDependencies()
	if err := newRootCmd(deps).ExecuteContext(ctx); err != nil {
		ui.NewConsole(deps.Stderr, false, nil).Error(errorMessage(err))
		stop()
		os.Exit(exitCode(err))
	}
}

func errorMessage(err error) string {
	var maxErr *loop.MaxIterationsError
	switch {
	case errors.As(err, &maxErr):
		return fmt.Sprintf("Error: no final answer after %d rounds; giving up", maxErr.Limit)
	case errors.Is(err, errTooFewArgs):
		return err.Error()
	case provider.IsRetryable(err):
		return fmt.Sprintf("Error: %v (temporary failure, try again later)", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
