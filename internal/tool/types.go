package tool

// Type represents JSON Schema types.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Schema represents a JSON Schema for tool parameters.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Declaration declares a tool's function signature for the LLM.
type Declaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// Result is the outcome of a single tool invocation.
// A tool always produces a Result; Failed marks the Failure variant and
// Output then carries the human-readable error description.
type Result struct {
	Name   string
	Output string
	Failed bool
}

// Success builds a successful Result.
func Success(name, output string) *Result {
	return &Result{Name: name, Output: output}
}

// Failure builds a failed Result.
func Failure(name, output string) *Result {
	return &Result{Name: name, Output: output, Failed: true}
}

// StringParam is a convenience for declaring a string parameter.
func StringParam(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}
