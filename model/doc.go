// Package model defines the provider-agnostic abstraction for the hosted
// language models the agents delegate to.
//
// Core goals:
//   - Keep request/response shapes minimal and transport independent
//   - Normalize rendered instructions + conversation history into provider
//     message formats inside the adapters
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic) implement the Model interface from this
// package so agents remain decoupled from vendor SDKs.
package model
