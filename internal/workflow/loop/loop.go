package loop

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/sandboxagent/internal/provider"
	"github.com/Cyclone1070/sandboxagent/internal/workflow"
	"github.com/rs/zerolog"
)

// Transcript is the ordered conversation of one run.
type Transcript struct {
	Messages []provider.Message
	// RoundsUsed counts replies that requested tools.
	RoundsUsed int
}

// Result is the outcome of a completed run.
type Result struct {
	Text       string
	Transcript Transcript
}

type Loop struct {
	provider      llmProvider
	tools         toolManager
	events        chan<- workflow.Event
	maxIterations int
	logger        zerolog.Logger
}

func NewLoop(provider llmProvider, tools toolManager, events chan<- workflow.Event, maxIterations int, logger zerolog.Logger) *Loop {
	return &Loop{
		provider:      provider,
		tools:         tools,
		events:        events,
		maxIterations: maxIterations,
		logger:        logger,
	}
}

// Run drives the conversation until the model answers without requesting
// tools or the round budget is spent. Tool calls are dispatched one at a
// time in the order the model listed them.
func (l *Loop) Run(ctx context.Context, prompt string) (*Result, error) {
	tr := Transcript{
		Messages: []provider.Message{{Role: provider.RoleUser, Content: prompt}},
	}

	defer l.emit(workflow.DoneEvent{})

	decls := l.tools.Declarations()

	for tr.RoundsUsed < l.maxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		l.emit(workflow.ThinkingEvent{Round: tr.RoundsUsed + 1})

		resp, err := l.provider.Generate(ctx, tr.Messages, decls)
		if err != nil {
			return nil, fmt.Errorf("provider.Generate: %w", err)
		}
		if resp == nil {
			return nil, fmt.Errorf("provider.Generate: %w", ErrEmptyReply)
		}
		resp.Role = provider.RoleAssistant
		tr.Messages = append(tr.Messages, *resp)

		if resp.Usage != nil {
			l.emit(workflow.UsageEvent{
				PromptTokens:   resp.Usage.PromptTokens,
				ResponseTokens: resp.Usage.CompletionTokens,
			})
		}
		if resp.Content != "" {
			l.emit(workflow.TextEvent{Text: resp.Content})
		}

		if len(resp.ToolCalls) == 0 {
			l.logger.Debug().Int("rounds", tr.RoundsUsed).Msg("model finished")
			return &Result{Text: resp.Content, Transcript: tr}, nil
		}

		for _, tc := range resp.ToolCalls {
			msg, err := l.tools.Execute(ctx, tc, l.events)
			if err != nil {
				return nil, fmt.Errorf("tools.Execute (%s): %w", tc.Name, err)
			}
			if msg == nil {
				return nil, fmt.Errorf("tools.Execute (%s): %w", tc.Name, ErrMissingToolResponse)
			}
			tr.Messages = append(tr.Messages, *msg)
		}
		tr.RoundsUsed++

		l.logger.Debug().Int("round", tr.RoundsUsed).Int("calls", len(resp.ToolCalls)).Msg("round complete")
	}

	l.logger.Warn().Int("limit", l.maxIterations).Msg("round budget exhausted")
	return &Result{Transcript: tr}, &MaxIterationsError{Limit: l.maxIterations, Transcript: tr}
}

func (l *Loop) emit(e workflow.Event) {
	if l.events != nil {
		l.events <- e
	}
}
