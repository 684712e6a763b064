package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format.
type Message struct {
	Role       string // "user", "assistant", "system", "tool"
	Content    string
	ToolCalls  []ToolCall // set on assistant messages that requested tools
	ToolCallID string     // set on tool messages, links back to the request
}

// ToolCall is a model-initiated request to invoke a tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON object
}

// Tool describes a capability exposed to the model.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{} // JSON schema
}

// Tool choice modes.
const (
	ToolChoiceAuto = "auto"
	ToolChoiceNone = "none"
)

// Option allows for optional parameters like Temperature, Tools, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	Tools       []Tool
	ToolChoice  string
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithTools(tools []Tool) Option {
	return func(o *Options) {
		o.Tools = tools
	}
}

func WithToolChoice(choice string) Option {
	return func(o *Options) {
		o.ToolChoice = choice
	}
}

// Response is one model turn: text content, tool-call requests, or both.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// LLMProvider defines the contract for any tool-calling-capable LLM backend.
type LLMProvider interface {
	Chat(ctx context.Context, history []Message, options ...Option) (*Response, error)
}
