// Package logging provides a minimal logging interface and adapters for the
// DSP agent platform.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that agents, stores and the server use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - ZerologAdapter wrapping rs/zerolog
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
