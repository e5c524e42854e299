package provider

// Role identifies who produced a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a single named operation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// Usage holds token counters reported for one generation.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Message is one entry of the conversation transcript.
//
// User messages carry Content. Assistant messages carry Content, ToolCalls,
// or both. Tool messages answer the ToolCall with the matching ToolCallID
// and carry the tool Name and its textual output.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
	IsError    bool
	Usage      *Usage
}
