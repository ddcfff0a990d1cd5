// Package core provides the foundational domain types and interfaces for the
// DSP agent platform. It defines:
//
//   - Turns (immutable user/assistant conversation records)
//   - Sessions (ordered turn history plus per-session cached context)
//   - The SessionStore contract for pluggable persistence backends
//   - The shared error taxonomy used across agents, stores and transport
//
// The package intentionally keeps implementation concerns (persistence,
// concrete agents, model providers) out of scope, exposing small interfaces to
// enable custom backends and extensions.
package core
