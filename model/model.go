package model

import (
	"context"

	"github.com/lokiteck/dspagent/core"
)

// Request captures the normalized model input produced by an agent: the
// rendered prompt template as instructions, the (bounded) prior conversation
// history, and the new user message.
type Request struct {
	Instructions string      `json:"instructions"`
	History      []core.Turn `json:"history"`
	UserMessage  string      `json:"user_message"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the completed model output for a request.
type Response struct {
	Text         string      `json:"text"`
	FinishReason string      `json:"finish_reason"`
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface agents use to drive generation. Complete
// blocks until the provider returns; callers bound it with a context
// deadline. Implementations must honor ctx cancellation.
type Model interface {
	Complete(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}
