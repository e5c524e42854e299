package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Sandbox  SandboxConfig  `json:"sandbox"`
	Tools    ToolsConfig    `json:"tools"`
	Workflow WorkflowConfig `json:"workflow"`
	Provider ProviderConfig `json:"provider"`
}

type SandboxConfig struct {
	Root            string `json:"root"`             // Default: ./calculator
	ResolveSymlinks bool   `json:"resolve_symlinks"` // Default: false (lexical prefix check only)
}

type ToolsConfig struct {
	// File Operations
	MaxReadChars int `json:"max_read_chars"` // Default: 10000

	// Script Execution
	ScriptExtension      string `json:"script_extension"`       // Default: .py
	ScriptInterpreter    string `json:"script_interpreter"`     // Default: python3
	ScriptTimeoutSeconds int    `json:"script_timeout_seconds"` // Default: 30
	ScriptGraceMs        int    `json:"script_grace_ms"`        // Default: 2000
	MaxScriptOutputSize  int64  `json:"max_script_output_size"` // Default: 10 * 1024 * 1024 (10MB)
}

type WorkflowConfig struct {
	MaxIterations int `json:"max_iterations"` // Default: 20
}

type ProviderConfig struct {
	Model        string   `json:"model"`         // Default: gemini-2.0-flash-001
	SystemPrompt string   `json:"system_prompt"` // Default: DefaultSystemPrompt
	Temperature  *float32 `json:"temperature,omitempty"`
}

// DefaultSystemPrompt tells the model which operations it can plan with.
const DefaultSystemPrompt = `You are a helpful AI coding agent.

When a user asks a question or makes a request, make a function call plan. You can perform the following operations:

- List files and directories
- Read file contents
- Execute Python files
- Write or overwrite files

All paths you provide should be relative to the working directory. You do not need to specify the working directory in your function calls as it is automatically injected for security reasons.
`

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Sandbox: SandboxConfig{
			Root: "./calculator",
		},
		Tools: ToolsConfig{
			MaxReadChars:         10000,
			ScriptExtension:      ".py",
			ScriptInterpreter:    "python3",
			ScriptTimeoutSeconds: 30,
			ScriptGraceMs:        2000,
			MaxScriptOutputSize:  10 * 1024 * 1024,
		},
		Workflow: WorkflowConfig{
			MaxIterations: 20,
		},
		Provider: ProviderConfig{
			Model:        "gemini-2.0-flash-001",
			SystemPrompt: DefaultSystemPrompt,
		},
	}
}
