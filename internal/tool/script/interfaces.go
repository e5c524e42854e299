package script

import (
	"context"
	"os"

	"github.com/Cyclone1070/sandboxagent/internal/tool/service/executor"
)

// fileStatter defines the filesystem operations needed before spawning.
type fileStatter interface {
	Stat(path string) (os.FileInfo, error)
}

// commandExecutor runs a process to completion.
type commandExecutor interface {
	Run(ctx context.Context, cmd executor.Command) (*executor.Result, error)
}

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
	Root() string
}
