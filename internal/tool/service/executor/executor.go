package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/Cyclone1070/sandboxagent/internal/config"
)

// Command describes a single process invocation.
type Command struct {
	Args    []string
	Dir     string
	Timeout time.Duration
}

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor runs real processes through os/exec.
type OSCommandExecutor struct {
	grace     time.Duration
	maxOutput int
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{
		grace:     time.Duration(cfg.Tools.ScriptGraceMs) * time.Millisecond,
		maxOutput: int(cfg.Tools.MaxScriptOutputSize),
	}
}

// Run executes the command and waits for it to finish.
//
// A non-zero exit status is not an error: it is reported through
// Result.ExitCode. When the timeout elapses the process receives an
// interrupt, is killed after the grace period, and Run returns the
// partial Result together with ErrTimeout. Cancellation of ctx is
// reported as ctx.Err().
func (e *OSCommandExecutor) Run(ctx context.Context, c Command) (*Result, error) {
	if len(c.Args) == 0 {
		return nil, ErrEmptyCommand
	}

	runCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	stdout := newCollector(e.maxOutput, binarySampleSize)
	stderr := newCollector(e.maxOutput, binarySampleSize)

	cmd := exec.CommandContext(runCtx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.Stdin = nil
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = e.grace

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: c.Args[0], Cause: err, Stage: "start"}
	}
	waitErr := cmd.Wait()

	res := &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		ExitCode:  exitCode(cmd, waitErr),
		Truncated: stdout.Truncated() || stderr.Truncated(),
	}

	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		res.ExitCode = -1
		return res, ErrTimeout
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return res, &CommandError{Cmd: c.Args[0], Cause: waitErr, Stage: "execution"}
	}
	return res, nil
}

func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}
