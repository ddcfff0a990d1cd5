// Package prompt defines the platform's prompt templates and the registry
// that owns them for the process lifetime.
//
// Core goals:
//   - Model templates as a closed set of named-placeholder strings whose
//     placeholder set is derived and validated at registration time
//   - Reject renders with missing or unknown bindings instead of silently
//     substituting empty text
//   - Keep rendering a pure function of template + bindings (no side effects)
//
// Placeholders use single-brace syntax ({company_specific_questions}); the
// built-in platform templates live in templates.go.
package prompt
