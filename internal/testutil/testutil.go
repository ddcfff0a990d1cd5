// Package testutil contains helper builders used across tests to reduce
// boilerplate when constructing sessions and conversation turns. These
// helpers are intentionally minimal and avoid adding third-party
// dependencies. They are not intended for production usage.
package testutil

import (
	"fmt"

	"github.com/lokiteck/dspagent/core"
)

// SessionBuilder helps construct sessions with fluent chaining for tests.
// Example:
//
//	sess := NewSessionBuilder("sess-1").Context("k","v").Exchange("hi", "hello").Build()
type SessionBuilder struct {
	id      string
	context map[string]string
	turns   []core.Turn
}

// NewSessionBuilder creates a new builder for a session with the given id.
// Use chainable methods (Context, Turn, Exchange) then call Build.
func NewSessionBuilder(id string) *SessionBuilder {
	return &SessionBuilder{id: id, context: map[string]string{}}
}

// Context sets or overwrites a context key/value pair on the resulting session (chainable).
func (b *SessionBuilder) Context(key, value string) *SessionBuilder {
	b.context[key] = value
	return b
}

// Turn appends a single turn to the session history (chainable).
func (b *SessionBuilder) Turn(t core.Turn) *SessionBuilder {
	b.turns = append(b.turns, t)
	return b
}

// Exchange appends one user/assistant turn pair (chainable).
func (b *SessionBuilder) Exchange(userText, assistantText string) *SessionBuilder {
	b.turns = append(b.turns, core.NewUserTurn(userText), core.NewAssistantTurn(assistantText))
	return b
}

// Build returns a *core.Session with pre-populated context and turns.
func (b *SessionBuilder) Build() *core.Session {
	s := core.NewSession(b.id)
	for k, v := range b.context {
		s.SetContext(k, v)
	}
	s.AppendTurns(b.turns...)
	return s
}

// Conversation produces n alternating user/assistant turns, user first, with
// deterministic texts ("user 0", "assistant 0", ...).
func Conversation(n int) []core.Turn {
	turns := make([]core.Turn, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			turns = append(turns, core.NewUserTurn(fmt.Sprintf("user %d", i/2)))
		} else {
			turns = append(turns, core.NewAssistantTurn(fmt.Sprintf("assistant %d", i/2)))
		}
	}
	return turns
}
