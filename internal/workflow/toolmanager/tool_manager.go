package toolmanager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/Cyclone1070/sandboxagent/internal/provider"
	"github.com/Cyclone1070/sandboxagent/internal/tool"
	"github.com/Cyclone1070/sandboxagent/internal/workflow"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
)

var (
	ErrUnknownTool     = errors.New("unknown tool")
	ErrInvalidArgument = errors.New("invalid arguments")
	ErrNoResult        = errors.New("tool produced no result")
)

// ToolManager dispatches tool calls to a fixed set of tools.
type ToolManager struct {
	registry map[string]toolImpl
	logger   zerolog.Logger
}

func NewToolManager(logger zerolog.Logger, tools ...toolImpl) *ToolManager {
	tm := &ToolManager{
		registry: make(map[string]toolImpl),
		logger:   logger,
	}
	for _, t := range tools {
		tm.Register(t)
	}
	return tm
}

// Register adds t, replacing any tool with the same name.
func (m *ToolManager) Register(t toolImpl) {
	m.registry[t.Name()] = t
}

func (m *ToolManager) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, 0, len(m.registry))
	for _, t := range m.registry {
		decls = append(decls, t.Declaration())
	}
	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// Execute runs one tool call and returns the tool message answering it.
// Unknown tools and undecodable arguments become failed tool messages;
// an error is returned only when ctx is done or a tool yields no result.
func (m *ToolManager) Execute(ctx context.Context, tc provider.ToolCall, events chan<- workflow.Event) (*provider.Message, error) {
	emit(events, workflow.ToolStartEvent{ToolName: tc.Name, Args: tc.Args})

	res, err := m.run(ctx, tc)
	if err != nil {
		m.logger.Debug().Str("tool", tc.Name).Err(err).Msg("tool aborted")
		return nil, err
	}

	emit(events, workflow.ToolEndEvent{ToolName: tc.Name, Output: res.Output, Failed: res.Failed})

	return &provider.Message{
		Role:       provider.RoleTool,
		ToolCallID: tc.ID,
		Name:       tc.Name,
		Content:    res.Output,
		IsError:    res.Failed,
	}, nil
}

func (m *ToolManager) run(ctx context.Context, tc provider.ToolCall) (*tool.Result, error) {
	t, ok := m.registry[tc.Name]
	if !ok {
		m.logger.Warn().Str("tool", tc.Name).Err(ErrUnknownTool).Msg("model called an undeclared tool")
		return tool.Failure(tc.Name, fmt.Sprintf("Error: Unknown function: %s", tc.Name)), nil
	}

	req := t.Input()
	if err := decodeArgs(tc.Args, req); err != nil {
		m.logger.Warn().Str("tool", tc.Name).Err(err).Msg("rejected tool arguments")
		declJSON, _ := json.MarshalIndent(t.Declaration().Parameters, "", "  ")
		return tool.Failure(tc.Name, fmt.Sprintf("Error: invalid arguments for function %s: %v\n\nExpected schema:\n%s", tc.Name, err, declJSON)), nil
	}

	m.logger.Debug().Str("tool", tc.Name).Interface("args", tc.Args).Msg("executing tool")

	res, err := t.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoResult, tc.Name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.logger.Debug().Str("tool", tc.Name).Bool("failed", res.Failed).Int("output_len", len(res.Output)).Msg("tool finished")
	return res, nil
}

// decodeArgs fills req from the model-supplied arguments. Scalars are
// accepted in their string form; keys the tool does not declare are rejected.
func decodeArgs(args map[string]any, req any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           req,
		TagName:          "json",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nil
}

func emit(events chan<- workflow.Event, e workflow.Event) {
	if events != nil {
		events <- e
	}
}
