// Package llm defines the provider-independent chat client used by the
// embedded agent. Providers register themselves through init so the binary
// only links the backends it imports.
package llm

import (
	"context"
	"fmt"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one chat turn. Tool-result messages set Role to RoleTool and
// carry the originating call's ID.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// FunctionCall carries the function name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCall is a model-requested tool invocation.
type ToolCall struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Function FunctionCall `json:"function"`
}

// ToolSpec advertises one callable tool to the model.
type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Response is a completed (non-streaming) model turn.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Client is a chat-completion backend.
type Client interface {
	Chat(ctx context.Context, messages []Message, tools []ToolSpec) (*Response, error)
	Provider() string

	// IsTransientError reports whether err is worth retrying (connection
	// resets, overload) as opposed to a permanent request failure.
	IsTransientError(err error) bool
}

// Config selects and parameterizes a provider.
type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Options  map[string]any
}

// Factory builds a Client from a Config.
type Factory func(cfg Config) (Client, error)

var providerRegistry = make(map[string]Factory)

// RegisterProvider registers a provider factory under a name. Called from
// provider package init functions.
func RegisterProvider(name string, factory Factory) {
	providerRegistry[name] = factory
}

// New builds a client for cfg.Provider.
func New(cfg Config) (Client, error) {
	factory, ok := providerRegistry[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider %q (registered: %v)", cfg.Provider, registeredProviders())
	}
	return factory(cfg)
}

func registeredProviders() []string {
	names := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		names = append(names, name)
	}
	return names
}
