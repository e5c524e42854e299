package fs

import (
	"io"
	"os"
	"path/filepath"
	"syscall"
	"unicode/utf8"
)

// OSFileSystem implements filesystem operations using the local OS filesystem primitives.
type OSFileSystem struct{}

// NewOSFileSystem creates a new OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat returns file info for a path (follows symlinks).
func (fs *OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// ListDir lists the contents of a directory in the order the filesystem
// returns them. Entries are deliberately not sorted.
// Symlinked entries report the size and type of their target; dangling
// links fall back to the link itself.
func (fs *OSFileSystem) ListDir(path string) ([]os.FileInfo, error) {
	dir, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := os.Stat(filepath.Join(path, entry.Name()))
		if err != nil {
			info, err = entry.Info()
			if err != nil {
				return nil, &EntryInfoError{Path: filepath.Join(path, entry.Name()), Cause: err}
			}
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// ReadPrefixResult is the outcome of ReadFilePrefix.
type ReadPrefixResult struct {
	Content   string // at most maxChars characters
	Truncated bool   // the file holds more than maxChars characters
	Size      int64  // size in bytes reported by the open handle
}

// ReadFilePrefix reads at most maxChars characters from the start of a file.
//
// Truncation is decided on the total content, not on what remains after the
// first read: a single bounded read of 4*maxChars+1 bytes always holds more
// than maxChars runes when the file does, since a rune never exceeds 4 bytes.
func (fs *OSFileSystem) ReadFilePrefix(path string, maxChars int) (*ReadPrefixResult, error) {
	if maxChars < 0 {
		return nil, ErrInvalidLimit
	}

	// Opening a FIFO for reading blocks until a writer appears, so the
	// type is checked before the open and again on the handle.
	pre, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !pre.Mode().IsRegular() {
		return nil, ErrNotRegular
	}

	file, err := os.OpenFile(path, os.O_RDONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotRegular
	}

	limit := int64(maxChars)*utf8.UTFMax + 1
	data, err := io.ReadAll(io.LimitReader(file, limit))
	if err != nil {
		return nil, err
	}

	content, truncated := truncateRunes(data, maxChars)
	return &ReadPrefixResult{
		Content:   content,
		Truncated: truncated,
		Size:      info.Size(),
	}, nil
}

// truncateRunes keeps the first n runes of data.
func truncateRunes(data []byte, n int) (string, bool) {
	if utf8.RuneCount(data) <= n {
		return string(data), false
	}
	offset := 0
	for range n {
		_, size := utf8.DecodeRune(data[offset:])
		offset += size
	}
	return string(data[:offset]), true
}

// WriteFileAtomic writes content to a file atomically using temp file + rename pattern.
// This ensures that if the process crashes mid-write, the original file remains intact.
// The temp file is created in the same directory as the target to ensure atomic rename.
// A symlink at path is replaced by a regular file; its target is left untouched.
func (fs *OSFileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return &TempFileError{Dir: dir, Cause: err}
	}

	tmpPath := tmpFile.Name()
	needsCleanup := true

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
		}
		if needsCleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(content); err != nil {
		return &TempWriteError{Path: tmpPath, Cause: err}
	}

	if err := tmpFile.Sync(); err != nil {
		return &TempSyncError{Path: tmpPath, Cause: err}
	}

	// Close file before rename (required on some systems)
	if err := tmpFile.Close(); err != nil {
		tmpFile = nil
		return &TempCloseError{Path: tmpPath, Cause: err}
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, perm); err != nil {
		return &ChmodError{Path: tmpPath, Mode: perm, Cause: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return &RenameError{Old: tmpPath, New: path, Cause: err}
	}
	needsCleanup = false

	return nil
}

// EnsureDirs creates parent directories recursively if they don't exist.
func (fs *OSFileSystem) EnsureDirs(path string) error {
	return os.MkdirAll(path, 0o755)
}
