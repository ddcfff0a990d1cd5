package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokiteck/dspagent/core"
)

func TestParseBasicReport(t *testing.T) {
	report, err := Parse("POD: 97.8%, Violations: 2")
	require.NoError(t, err)
	require.Len(t, report.Metrics, 2)

	pod, ok := report.Get("POD")
	require.True(t, ok)
	assert.Equal(t, 97.8, pod.Value)
	assert.True(t, pod.Percent)

	violations, ok := report.Get("Sign/Signal Violations")
	require.True(t, ok)
	assert.Equal(t, 2.0, violations.Value)
}

func TestParseAliases(t *testing.T) {
	report, err := Parse("DCR: 98.5%\nFICO Score: 812\nSeatbelt Off Rate: 100")
	require.NoError(t, err)

	cdr, ok := report.Get("CDR")
	require.True(t, ok)
	assert.Equal(t, 98.5, cdr.Value)

	fico, ok := report.Get("FICO")
	require.True(t, ok)
	assert.Equal(t, 812.0, fico.Value)
}

func TestParseSkipsUnrecognizableSegments(t *testing.T) {
	report, err := Parse("driver had a good week, POD: 99.9%, see attached")
	require.NoError(t, err)
	require.Len(t, report.Metrics, 1)
	assert.Equal(t, "POD", report.Metrics[0].Name)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("garbage")
	assert.ErrorIs(t, err, core.ErrMalformedMetrics)

	_, err = Parse("")
	assert.ErrorIs(t, err, core.ErrMalformedMetrics)
}

func TestEvaluate(t *testing.T) {
	report, err := Parse("POD: 97.8%, Violations: 2, CDF: 98.5%, FICO: 812")
	require.NoError(t, err)

	failures := Evaluate(report)
	require.Len(t, failures, 2)
	assert.Equal(t, "POD", failures[0].Metric.Name)
	assert.Equal(t, "SIGN/SIGNAL VIOLATIONS", failures[1].Metric.Name)
}

func TestEvaluateAllPassing(t *testing.T) {
	report, err := Parse("POD: 99.9%, CDR: 99.5%, Speeding Events: 0")
	require.NoError(t, err)
	assert.Empty(t, Evaluate(report))
}

func TestFormatReport(t *testing.T) {
	report, err := Parse("POD: 97.8%, FICO: 812, Mystery: 5")
	require.NoError(t, err)

	out := FormatReport(report)
	assert.Contains(t, out, "POD: 97.8% (required at least 99.8, FAILED)")
	assert.Contains(t, out, "FICO: 812 (required above 800, PASS)")
	assert.Contains(t, out, "MYSTERY: 5 (no standard on record)")
}
