// Package agent contains the platform's conversational agents and the shared
// message-processing engine they are built on. The package focuses on three
// concerns:
//
//  1. The ConversationalAgent contract consumed by the transport layer
//  2. The shared turn protocol (per-session serialization, one-shot context
//     fetch with session-lifetime caching, bounded history window, atomic
//     user/assistant turn append)
//  3. Concrete variants: driver screening, company admin, content generation,
//     performance analysis and coaching feedback
//
// Variants differ only in which template they render, whether they require
// per-company context, and any pre-processing of the user input (the
// performance analyzer parses metrics before rendering). Everything else is
// the shared engine.
//
// Design principles:
//   - No hidden global state: stores, models and providers are injected at
//     construction time
//   - Either both turns of an exchange are recorded or neither is
//   - External calls are bounded by finite timeouts and never retried here
package agent
