package workflow

// Event is the interface for all workflow events.
// Consumers handle events via type switch.
type Event interface {
	isEvent()
}

// ThinkingEvent is emitted before each request to the model.
type ThinkingEvent struct {
	Round int
}

func (ThinkingEvent) isEvent() {}

// TextEvent is emitted when the model produces text output.
type TextEvent struct {
	Text string
}

func (TextEvent) isEvent() {}

// UsageEvent carries the token counters of one model reply.
type UsageEvent struct {
	PromptTokens   int
	ResponseTokens int
}

func (UsageEvent) isEvent() {}

// ToolStartEvent is emitted when a tool execution begins.
type ToolStartEvent struct {
	ToolName string
	Args     map[string]any
}

func (ToolStartEvent) isEvent() {}

// ToolEndEvent is emitted when a tool completes.
type ToolEndEvent struct {
	ToolName string
	Output   string
	Failed   bool
}

func (ToolEndEvent) isEvent() {}

// DoneEvent is emitted when the workflow loop completes.
type DoneEvent struct{}

func (DoneEvent) isEvent() {}
