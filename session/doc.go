// Package session houses concrete implementations of core.SessionStore. The
// interface itself (and the Session struct) live in the core package to
// centralize domain contracts; keeping only implementations here prevents
// higher level packages (agents, server) from depending on concrete storage.
//
// The in-memory store suits tests and ephemeral demo servers; the mongo
// subpackage persists screening transcripts durably. Additional backends can
// be added in subpackages without changing any calling code.
package session
