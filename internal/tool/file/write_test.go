package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/sandboxagent/internal/config"
	"github.com/Cyclone1070/sandboxagent/internal/tool/service/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, wt *WriteFileTool, filePath, content string) (string, bool) {
	t.Helper()
	res, err := wt.Execute(context.Background(), &WriteFileRequest{FilePath: filePath, Content: content})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "write_file", res.Name)
	return res.Output, res.Failed
}

func TestWriteFile_CreateAndReadBack(t *testing.T) {
	sb := newSandbox(t)

	out, failed := write(t, sb.writer, "lorem.txt", "wait, this isn't lorem ipsum")
	assert.False(t, failed)
	assert.Equal(t, `Successfully wrote to "lorem.txt" (28 characters written)`, out)

	got, failed := read(t, sb.reader, "lorem.txt")
	assert.False(t, failed)
	assert.Equal(t, "wait, this isn't lorem ipsum", got)
}

func TestWriteFile_CreatesParents(t *testing.T) {
	sb := newSandbox(t)

	out, failed := write(t, sb.writer, "pkg/deep/nested/morelorem.txt", "lorem ipsum dolor sit amet")

	assert.False(t, failed)
	assert.Equal(t, `Successfully wrote to "pkg/deep/nested/morelorem.txt" (26 characters written)`, out)
	data, err := os.ReadFile(filepath.Join(sb.root, "pkg", "deep", "nested", "morelorem.txt"))
	require.NoError(t, err)
	assert.Equal(t, "lorem ipsum dolor sit amet", string(data))
}

func TestWriteFile_OverwritesAndKeepsMode(t *testing.T) {
	sb := newSandbox(t)
	abs := filepath.Join(sb.root, "main.py")
	require.NoError(t, os.WriteFile(abs, []byte("a much longer original body"), 0o600))

	_, failed := write(t, sb.writer, "main.py", "short")
	assert.False(t, failed)

	data, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
	info, err := os.Stat(abs)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteFile_CountsCharacters(t *testing.T) {
	sb := newSandbox(t)

	out, failed := write(t, sb.writer, "unicode.txt", "héllo wörld ✓")

	assert.False(t, failed)
	assert.Equal(t, `Successfully wrote to "unicode.txt" (13 characters written)`, out)
}

func TestWriteFile_EmptyContent(t *testing.T) {
	sb := newSandbox(t)

	out, failed := write(t, sb.writer, "empty.txt", "")

	assert.False(t, failed)
	assert.Equal(t, `Successfully wrote to "empty.txt" (0 characters written)`, out)
	info, err := os.Stat(filepath.Join(sb.root, "empty.txt"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWriteFile_Directory(t *testing.T) {
	sb := newSandbox(t)
	require.NoError(t, os.Mkdir(filepath.Join(sb.root, "pkg"), 0o755))

	for _, p := range []string{"pkg", "."} {
		t.Run(p, func(t *testing.T) {
			out, failed := write(t, sb.writer, p, "x")
			assert.True(t, failed)
			assert.Equal(t, `Error: Cannot write to "`+p+`" as it is a directory`, out)
		})
	}
}

func TestWriteFile_EscapeLeavesFilesystemUntouched(t *testing.T) {
	sb := newSandbox(t)
	outside := filepath.Join(filepath.Dir(sb.root), "escaped-"+filepath.Base(sb.root)+".txt")

	out, failed := write(t, sb.writer, "../"+filepath.Base(outside), "pwned")

	assert.True(t, failed)
	assert.Equal(t, `Error: Cannot write to "../`+filepath.Base(outside)+`" as it is outside the permitted working directory`, out)
	_, err := os.Stat(outside)
	assert.True(t, os.IsNotExist(err))

	ops := &mockFileOps{}
	wt := NewWriteFileTool(ops, config.DefaultConfig(), path.NewResolver("/workspace"))
	_, failed = write(t, wt, "/tmp/evil.txt", "pwned")
	assert.True(t, failed)
	assert.Empty(t, ops.calls)
}

func TestWriteFile_MissingPath(t *testing.T) {
	sb := newSandbox(t)

	out, failed := write(t, sb.writer, "", "content")

	assert.True(t, failed)
	assert.Equal(t, "Error: file_path is required", out)
}

func TestWriteFile_Faults(t *testing.T) {
	resolver := path.NewResolver("/workspace")

	t.Run("Stat Fault", func(t *testing.T) {
		ops := &mockFileOps{StatFunc: func(string) (os.FileInfo, error) { return nil, os.ErrPermission }}
		_, err := NewWriteFileTool(ops, config.DefaultConfig(), resolver).Run(context.Background(), &WriteFileRequest{FilePath: "a.txt"})
		var statErr *StatError
		assert.ErrorAs(t, err, &statErr)
		assert.Equal(t, []string{"Stat"}, ops.calls)
	})

	t.Run("EnsureDirs Fault", func(t *testing.T) {
		ops := &mockFileOps{EnsureDirsFunc: func(string) error { return errors.New("read-only fs") }}
		_, err := NewWriteFileTool(ops, config.DefaultConfig(), resolver).Run(context.Background(), &WriteFileRequest{FilePath: "a/b.txt"})
		var dirsErr *EnsureDirsError
		require.ErrorAs(t, err, &dirsErr)
		assert.Equal(t, "/workspace/a", dirsErr.Path)
	})

	t.Run("Write Fault", func(t *testing.T) {
		ops := &mockFileOps{WriteFileAtomicFunc: func(string, []byte, os.FileMode) error { return errors.New("disk full") }}
		wt := NewWriteFileTool(ops, config.DefaultConfig(), resolver)
		out, failed := write(t, wt, "a.txt", "x")
		assert.True(t, failed)
		assert.Equal(t, `Error: writing to file "a.txt": failed to write /workspace/a.txt: disk full`, out)
	})

	t.Run("Call Order", func(t *testing.T) {
		var gotPerm os.FileMode
		ops := &mockFileOps{
			StatFunc: func(string) (os.FileInfo, error) { return &mockFileInfo{mode: 0o640}, nil },
			WriteFileAtomicFunc: func(p string, content []byte, perm os.FileMode) error {
				gotPerm = perm
				return nil
			},
		}
		resp, err := NewWriteFileTool(ops, config.DefaultConfig(), resolver).Run(context.Background(), &WriteFileRequest{FilePath: "a.txt", Content: "x"})
		require.NoError(t, err)
		assert.False(t, resp.Created)
		assert.Equal(t, []string{"Stat", "EnsureDirs", "WriteFileAtomic"}, ops.calls)
		assert.Equal(t, os.FileMode(0o640), gotPerm)
	})
}

func TestWriteFile_Cancelled(t *testing.T) {
	sb := newSandbox(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := sb.writer.Execute(ctx, &WriteFileRequest{FilePath: "a.txt", Content: "x"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
	_, statErr := os.Stat(filepath.Join(sb.root, "a.txt"))
	assert.True(t, os.IsNotExist(statErr))
}
