package toolmanager

import (
	"context"
	"testing"

	"github.com/Cyclone1070/sandboxagent/internal/provider"
	"github.com/Cyclone1070/sandboxagent/internal/tool"
	"github.com/Cyclone1070/sandboxagent/internal/workflow"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockInput struct {
	Value string `json:"value"`
	Path  string `json:"path,omitempty"`
}

type mockTool struct {
	name        string
	declaration tool.Declaration
	executeFunc func(ctx context.Context, input any) (*tool.Result, error)
}

func (m *mockTool) Name() string                  { return m.name }
func (m *mockTool) Declaration() tool.Declaration { return m.declaration }
func (m *mockTool) Input() any                    { return &mockInput{} }
func (m *mockTool) Execute(ctx context.Context, input any) (*tool.Result, error) {
	if m.executeFunc != nil {
		return m.executeFunc(ctx, input)
	}
	return tool.Success(m.name, "ok"), nil
}

func newManager(tools ...toolImpl) *ToolManager {
	return NewToolManager(zerolog.Nop(), tools...)
}

func TestRegister(t *testing.T) {
	tm := newManager()
	tm.Register(&mockTool{name: "test-tool", declaration: tool.Declaration{Name: "test-tool"}})

	decls := tm.Declarations()
	assert.Len(t, decls, 1)
	assert.Equal(t, "test-tool", decls[0].Name)
}

func TestRegister_DuplicateName(t *testing.T) {
	tm := newManager(
		&mockTool{name: "test-tool", declaration: tool.Declaration{Name: "test-tool", Description: "v1"}},
		&mockTool{name: "test-tool", declaration: tool.Declaration{Name: "test-tool", Description: "v2"}},
	)

	decls := tm.Declarations()
	assert.Len(t, decls, 1)
	assert.Equal(t, "v2", decls[0].Description)
}

func TestDeclarations_SortedByName(t *testing.T) {
	tm := newManager(
		&mockTool{name: "z", declaration: tool.Declaration{Name: "z"}},
		&mockTool{name: "a", declaration: tool.Declaration{Name: "a"}},
		&mockTool{name: "m", declaration: tool.Declaration{Name: "m"}},
	)

	decls := tm.Declarations()
	require.Len(t, decls, 3)
	assert.Equal(t, "a", decls[0].Name)
	assert.Equal(t, "m", decls[1].Name)
	assert.Equal(t, "z", decls[2].Name)
}

func TestExecute_UnknownTool_ReturnsFailure(t *testing.T) {
	tm := newManager(&mockTool{name: "known"})

	msg, err := tm.Execute(context.Background(), provider.ToolCall{ID: "tc-123", Name: "delete_everything"}, nil)

	require.NoError(t, err)
	assert.Equal(t, provider.RoleTool, msg.Role)
	assert.Equal(t, "tc-123", msg.ToolCallID)
	assert.Equal(t, "delete_everything", msg.Name)
	assert.Equal(t, "Error: Unknown function: delete_everything", msg.Content)
	assert.True(t, msg.IsError)
}

func TestExecute_DecodesArguments(t *testing.T) {
	var captured *mockInput
	tm := newManager(&mockTool{
		name: "test",
		executeFunc: func(ctx context.Context, input any) (*tool.Result, error) {
			captured = input.(*mockInput)
			return tool.Success("test", "done"), nil
		},
	})

	msg, err := tm.Execute(context.Background(), provider.ToolCall{
		ID:   "tc-456",
		Name: "test",
		Args: map[string]any{"value": "hello", "path": "pkg"},
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "hello", captured.Value)
	assert.Equal(t, "pkg", captured.Path)
	assert.Equal(t, "tc-456", msg.ToolCallID)
	assert.Equal(t, "done", msg.Content)
	assert.False(t, msg.IsError)
}

func TestExecute_WeaklyTypedArguments(t *testing.T) {
	var captured *mockInput
	tm := newManager(&mockTool{
		name: "test",
		executeFunc: func(ctx context.Context, input any) (*tool.Result, error) {
			captured = input.(*mockInput)
			return tool.Success("test", "ok"), nil
		},
	})

	_, err := tm.Execute(context.Background(), provider.ToolCall{Name: "test", Args: map[string]any{"value": 42}}, nil)

	require.NoError(t, err)
	assert.Equal(t, "42", captured.Value)
}

func TestExecute_NoArguments(t *testing.T) {
	var captured *mockInput
	tm := newManager(&mockTool{
		name: "test",
		executeFunc: func(ctx context.Context, input any) (*tool.Result, error) {
			captured = input.(*mockInput)
			return tool.Success("test", "ok"), nil
		},
	})

	_, err := tm.Execute(context.Background(), provider.ToolCall{Name: "test"}, nil)

	require.NoError(t, err)
	assert.Equal(t, &mockInput{}, captured)
}

func TestExecute_BadArguments_ReturnsFailure(t *testing.T) {
	called := false
	tm := newManager(&mockTool{
		name: "test",
		declaration: tool.Declaration{
			Name: "test",
			Parameters: &tool.Schema{
				Type:       tool.TypeObject,
				Properties: map[string]*tool.Schema{"value": tool.StringParam("a value")},
			},
		},
		executeFunc: func(ctx context.Context, input any) (*tool.Result, error) {
			called = true
			return tool.Success("test", "ok"), nil
		},
	})

	tests := []struct {
		name string
		args map[string]any
	}{
		{"Unexpected Key", map[string]any{"value": "x", "root": "/"}},
		{"Structured Value", map[string]any{"value": map[string]any{"nested": true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := tm.Execute(context.Background(), provider.ToolCall{ID: "tc", Name: "test", Args: tt.args}, nil)

			require.NoError(t, err)
			assert.True(t, msg.IsError)
			assert.Contains(t, msg.Content, "Error: invalid arguments for function test")
			assert.Contains(t, msg.Content, "Expected schema:")
			assert.Contains(t, msg.Content, `"value"`)
		})
	}
	assert.False(t, called)
}

func TestExecute_FailedResultIsPropagated(t *testing.T) {
	tm := newManager(&mockTool{
		name: "test",
		executeFunc: func(ctx context.Context, input any) (*tool.Result, error) {
			return tool.Failure("test", "Error: nope"), nil
		},
	})

	msg, err := tm.Execute(context.Background(), provider.ToolCall{Name: "test"}, nil)

	require.NoError(t, err)
	assert.True(t, msg.IsError)
	assert.Equal(t, "Error: nope", msg.Content)
}

func TestExecute_NilResult_ReturnsError(t *testing.T) {
	tm := newManager(&mockTool{
		name: "test",
		executeFunc: func(ctx context.Context, input any) (*tool.Result, error) {
			return nil, nil
		},
	})

	msg, err := tm.Execute(context.Background(), provider.ToolCall{Name: "test"}, nil)

	assert.ErrorIs(t, err, ErrNoResult)
	assert.Nil(t, msg)
}

func TestExecute_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tm := newManager(&mockTool{
		name: "test",
		executeFunc: func(ctx context.Context, input any) (*tool.Result, error) {
			cancel()
			return tool.Success("test", "late"), nil
		},
	})

	_, err := tm.Execute(ctx, provider.ToolCall{Name: "test"}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecute_EmitsToolEvents(t *testing.T) {
	tm := newManager(&mockTool{
		name: "test",
		executeFunc: func(ctx context.Context, input any) (*tool.Result, error) {
			return tool.Success("test", "result"), nil
		},
	})

	events := make(chan workflow.Event, 10)
	_, err := tm.Execute(context.Background(), provider.ToolCall{
		Name: "test",
		Args: map[string]any{"value": "hello"},
	}, events)
	require.NoError(t, err)

	start, ok := (<-events).(workflow.ToolStartEvent)
	require.True(t, ok)
	assert.Equal(t, "test", start.ToolName)
	assert.Equal(t, map[string]any{"value": "hello"}, start.Args)

	end, ok := (<-events).(workflow.ToolEndEvent)
	require.True(t, ok)
	assert.Equal(t, "test", end.ToolName)
	assert.Equal(t, "result", end.Output)
	assert.False(t, end.Failed)
}
