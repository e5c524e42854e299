package script

import (
	"fmt"
	"strings"
)

type ExecuteScriptRequest struct {
	FilePath string `json:"file_path"`
}

func (r *ExecuteScriptRequest) Validate() error {
	if r.FilePath == "" {
		return ErrPathRequired
	}
	return nil
}

type ExecuteScriptResponse struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// String renders the captured streams. A run that printed nothing to
// stdout is summarised as "No output produced." even when stderr is set.
func (r *ExecuteScriptResponse) String() string {
	if r.Stdout == "" {
		return "No output produced."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "STDOUT:\n%s\nSTDERR:\n%s", r.Stdout, r.Stderr)
	if r.ExitCode != 0 {
		fmt.Fprintf(&b, "\nProcess exited with code %d", r.ExitCode)
	}
	return b.String()
}
