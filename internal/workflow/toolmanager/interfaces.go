package toolmanager

import (
	"context"

	"github.com/Cyclone1070/sandboxagent/internal/tool"
)

// toolImpl defines the interface for individual tools.
type toolImpl interface {
	// Name returns the tool's identifier.
	Name() string

	// Declaration returns the tool's schema for the LLM.
	Declaration() tool.Declaration

	// Input returns a pointer to a fresh request struct (e.g., &ReadFileRequest{}).
	Input() any

	// Execute runs the tool with the decoded input.
	// Only context cancellation is reported as an error.
	Execute(ctx context.Context, input any) (*tool.Result, error)
}
