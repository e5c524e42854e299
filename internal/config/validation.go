package config

import (
	"fmt"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Sandbox.Root) == "" {
		errs = append(errs, "sandbox.root must not be empty")
	}

	// Tools validation
	if c.Tools.MaxReadChars < 1 {
		errs = append(errs, "tools.max_read_chars must be >= 1")
	}
	if !strings.HasPrefix(c.Tools.ScriptExtension, ".") || len(c.Tools.ScriptExtension) < 2 {
		errs = append(errs, "tools.script_extension must start with '.'")
	}
	if strings.TrimSpace(c.Tools.ScriptInterpreter) == "" {
		errs = append(errs, "tools.script_interpreter must not be empty")
	}
	if c.Tools.ScriptTimeoutSeconds < 1 {
		errs = append(errs, "tools.script_timeout_seconds must be >= 1")
	}
	if c.Tools.ScriptGraceMs < 1 {
		errs = append(errs, "tools.script_grace_ms must be >= 1")
	}
	if c.Tools.MaxScriptOutputSize < 1 {
		errs = append(errs, "tools.max_script_output_size must be >= 1")
	}

	// Workflow validation
	if c.Workflow.MaxIterations < 1 {
		errs = append(errs, "workflow.max_iterations must be >= 1")
	}

	// Provider validation
	if strings.TrimSpace(c.Provider.Model) == "" {
		errs = append(errs, "provider.model must not be empty")
	}
	if t := c.Provider.Temperature; t != nil && (*t < 0 || *t > 2) {
		errs = append(errs, "provider.temperature must be between 0 and 2")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
