// Package metrics parses free-form driver performance reports ("POD: 97.8%,
// Violations: 2") into structured metrics and evaluates them against the DSP
// scorecard standards. The parser is deliberately tolerant: unrecognizable
// segments are skipped, and only an input with no recognizable metric at all
// reports core.ErrMalformedMetrics.
package metrics
