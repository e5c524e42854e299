package directory

import (
	"fmt"
	"strings"
)

// ListDirectoryRequest holds the arguments of get_files_info.
type ListDirectoryRequest struct {
	Directory string `json:"directory,omitempty"`
}

// DirectoryEntry is a single child of the listed directory.
type DirectoryEntry struct {
	Name  string
	Size  int64
	IsDir bool
}

// ListDirectoryResponse contains the entries in the order the OS returned them.
type ListDirectoryResponse struct {
	AbsolutePath string
	Entries      []DirectoryEntry
}

// String renders one line per entry. An empty directory renders as "".
func (r *ListDirectoryResponse) String() string {
	lines := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		lines = append(lines, fmt.Sprintf("- %s: file_size=%d bytes, is_dir=%t", e.Name, e.Size, e.IsDir))
	}
	return strings.Join(lines, "\n")
}
