// Package toolkit provides the tool catalog and dispatcher: a registry of
// schema-described tools built once at startup and an invocation layer that
// validates arguments, runs the handler, and reports a tagged result.
package toolkit

import "context"

// ToolParameter defines a single parameter accepted by a tool.
type ToolParameter struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
}

// ToolHandler is the function signature for tool execution.
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// ToolDefinition describes a registered tool: its name, description,
// declared parameters, and the handler that implements it.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ToolParameter `json:"parameters"`
	Handler     ToolHandler     `json:"-"`
}

// ToolInfo is the advertised view of a tool: what a caller needs to
// discover and invoke it, without the handler.
type ToolInfo struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// FailureKind classifies a failed invocation.
type FailureKind string

const (
	KindToolNotFound     FailureKind = "tool_not_found"
	KindInvalidArguments FailureKind = "invalid_arguments"
	KindUpstreamError    FailureKind = "upstream_error"
	KindTimeout          FailureKind = "timeout"
	KindCancelled        FailureKind = "cancelled"
)

// Request is a single invocation: a tool name and its argument bag.
type Request struct {
	Tool      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// Result is the outcome of an invocation. Either Success is true and Output
// holds the handler's return value unchanged, or Success is false and
// Kind/Error describe the failure.
type Result struct {
	Success  bool                   `json:"success"`
	Output   interface{}            `json:"output,omitempty"`
	Kind     FailureKind            `json:"kind,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}
