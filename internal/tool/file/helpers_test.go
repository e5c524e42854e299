package file

import (
	"os"
	"testing"
	"time"

	"github.com/Cyclone1070/sandboxagent/internal/config"
	"github.com/Cyclone1070/sandboxagent/internal/tool/service/fs"
	"github.com/Cyclone1070/sandboxagent/internal/tool/service/path"
	"github.com/stretchr/testify/require"
)

type mockFileInfo struct {
	name  string
	mode  os.FileMode
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return 0 }
func (m *mockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return nil }

// mockFileOps records calls and lets each test override behaviour.
type mockFileOps struct {
	StatFunc            func(path string) (os.FileInfo, error)
	WriteFileAtomicFunc func(path string, content []byte, perm os.FileMode) error
	EnsureDirsFunc      func(path string) error
	ReadFilePrefixFunc  func(path string, maxChars int) (*fs.ReadPrefixResult, error)

	calls []string
}

func (m *mockFileOps) Stat(path string) (os.FileInfo, error) {
	m.calls = append(m.calls, "Stat")
	if m.StatFunc != nil {
		return m.StatFunc(path)
	}
	return nil, os.ErrNotExist
}

func (m *mockFileOps) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	m.calls = append(m.calls, "WriteFileAtomic")
	if m.WriteFileAtomicFunc != nil {
		return m.WriteFileAtomicFunc(path, content, perm)
	}
	return nil
}

func (m *mockFileOps) EnsureDirs(path string) error {
	m.calls = append(m.calls, "EnsureDirs")
	if m.EnsureDirsFunc != nil {
		return m.EnsureDirsFunc(path)
	}
	return nil
}

func (m *mockFileOps) ReadFilePrefix(path string, maxChars int) (*fs.ReadPrefixResult, error) {
	m.calls = append(m.calls, "ReadFilePrefix")
	if m.ReadFilePrefixFunc != nil {
		return m.ReadFilePrefixFunc(path, maxChars)
	}
	return nil, os.ErrNotExist
}

type sandbox struct {
	root   string
	cfg    *config.Config
	reader *ReadFileTool
	writer *WriteFileTool
}

func newSandbox(t *testing.T) *sandbox {
	t.Helper()
	root, err := path.CanonicaliseRoot(t.TempDir())
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	resolver := path.NewResolver(root)
	osfs := fs.NewOSFileSystem()
	return &sandbox{
		root:   root,
		cfg:    cfg,
		reader: NewReadFileTool(osfs, cfg, resolver),
		writer: NewWriteFileTool(osfs, cfg, resolver),
	}
}
