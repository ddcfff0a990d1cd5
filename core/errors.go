package core

import "errors"

// Shared error taxonomy. Callers match with errors.Is; lower layers wrap
// these with %w to attach detail while keeping the category inspectable.
var (
	// ErrTemplateNotFound is returned when a prompt template name is not
	// registered.
	ErrTemplateNotFound = errors.New("prompt template not found")

	// ErrMissingPlaceholder is returned when rendering a template without a
	// binding for a declared placeholder. Programmer error; fail fast.
	ErrMissingPlaceholder = errors.New("missing placeholder binding")

	// ErrUnknownPlaceholder is returned when a binding names a placeholder
	// the template never declared. Programmer error; fail fast.
	ErrUnknownPlaceholder = errors.New("unknown placeholder binding")

	// ErrCompanyNotFound is returned when a supplied company code has no
	// questions configured.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrProviderUnavailable is returned when the question provider cannot be
	// reached. Transient; safe to retry at the transport layer.
	ErrProviderUnavailable = errors.New("question provider unavailable")

	// ErrContextFetchFailed is returned when required per-company context
	// could not be fetched for a session's first turn.
	ErrContextFetchFailed = errors.New("context fetch failed")

	// ErrModelCallFailed is returned when the underlying model call errors or
	// times out. Surfaced verbatim; never retried inside the agent.
	ErrModelCallFailed = errors.New("model call failed")

	// ErrEmptyCompletion is returned when the model produced no usable text.
	ErrEmptyCompletion = errors.New("model returned empty completion")

	// ErrMalformedMetrics is reported when performance input parses to no
	// recognizable metric. Recovered locally by the performance analyzer.
	ErrMalformedMetrics = errors.New("malformed performance metrics")
)
