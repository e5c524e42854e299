package file

import (
	"os"

	"github.com/Cyclone1070/sandboxagent/internal/tool/service/fs"
)

// fileReader defines the minimal filesystem operations needed for reading files.
type fileReader interface {
	ReadFilePrefix(path string, maxChars int) (*fs.ReadPrefixResult, error)
}

// fileWriter defines the minimal filesystem operations needed for writing files.
type fileWriter interface {
	Stat(path string) (os.FileInfo, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
	EnsureDirs(path string) error
}

// pathResolver defines workspace path resolution operations.
type pathResolver interface {
	Abs(path string) (string, error)
}
