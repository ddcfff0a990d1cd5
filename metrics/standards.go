package metrics

import (
	"fmt"
	"strings"
)

// comparison is how a metric value is checked against its threshold.
type comparison int

const (
	atLeast comparison = iota
	atMost
	exactly
	above
)

// Standard is one scorecard requirement.
type Standard struct {
	Metric    string
	Threshold float64
	compare   comparison
}

// Met reports whether value satisfies the standard.
func (s Standard) Met(value float64) bool {
	switch s.compare {
	case atLeast:
		return value >= s.Threshold
	case atMost:
		return value <= s.Threshold
	case exactly:
		return value == s.Threshold
	default:
		return value > s.Threshold
	}
}

// Requirement renders the standard in human-readable form.
func (s Standard) Requirement() string {
	switch s.compare {
	case atLeast:
		return fmt.Sprintf("at least %g", s.Threshold)
	case atMost:
		return fmt.Sprintf("at most %g", s.Threshold)
	case exactly:
		return fmt.Sprintf("exactly %g", s.Threshold)
	default:
		return fmt.Sprintf("above %g", s.Threshold)
	}
}

// standards is the DSP scorecard: safety metrics, delivery standards and
// route compliance thresholds.
var standards = map[string]Standard{
	"SIGN/SIGNAL VIOLATIONS": {Metric: "SIGN/SIGNAL VIOLATIONS", Threshold: 0, compare: exactly},
	"SPEEDING EVENTS":        {Metric: "SPEEDING EVENTS", Threshold: 0, compare: exactly},
	"DISTRACTION EVENTS":     {Metric: "DISTRACTION EVENTS", Threshold: 0, compare: exactly},
	"ACCELERATION EVENTS":    {Metric: "ACCELERATION EVENTS", Threshold: 0, compare: exactly},
	"BRAKING EVENTS":         {Metric: "BRAKING EVENTS", Threshold: 0, compare: exactly},
	"CORNERING EVENTS":       {Metric: "CORNERING EVENTS", Threshold: 0, compare: exactly},
	"DNR":                    {Metric: "DNR", Threshold: 0, compare: exactly},
	"FICO":                   {Metric: "FICO", Threshold: 800, compare: above},
	"SEATBELT USAGE":         {Metric: "SEATBELT USAGE", Threshold: 100, compare: atLeast},
	"IDLING TIME":            {Metric: "IDLING TIME", Threshold: 20, compare: atMost},
	"DVIC DURATION":          {Metric: "DVIC DURATION", Threshold: 90, compare: atLeast},
	"POD":                    {Metric: "POD", Threshold: 99.8, compare: atLeast},
	"DPMOC":                  {Metric: "DPMOC", Threshold: 99, compare: atLeast},
	"CDF":                    {Metric: "CDF", Threshold: 98, compare: atLeast},
	"CDR":                    {Metric: "CDR", Threshold: 99, compare: atLeast},
	"DSB":                    {Metric: "DSB", Threshold: 99, compare: atLeast},
	"PSB":                    {Metric: "PSB", Threshold: 99, compare: atLeast},
}

// Failure pairs a metric with the standard it missed.
type Failure struct {
	Metric   Metric
	Standard Standard
}

// Evaluate checks every parsed metric that has a known standard and returns
// the failures in report order. Metrics without a standard are ignored.
func Evaluate(report Report) []Failure {
	var failures []Failure
	for _, m := range report.Metrics {
		std, ok := standards[m.Name]
		if !ok {
			continue
		}
		if !std.Met(m.Value) {
			failures = append(failures, Failure{Metric: m, Standard: std})
		}
	}
	return failures
}

// FormatReport renders the parsed metrics with pass/fail status for
// injection into the analyzer prompt.
func FormatReport(report Report) string {
	var b strings.Builder
	for _, m := range report.Metrics {
		unit := ""
		if m.Percent {
			unit = "%"
		}
		std, ok := standards[m.Name]
		switch {
		case !ok:
			fmt.Fprintf(&b, "%s: %g%s (no standard on record)\n", m.Name, m.Value, unit)
		case std.Met(m.Value):
			fmt.Fprintf(&b, "%s: %g%s (required %s, PASS)\n", m.Name, m.Value, unit, std.Requirement())
		default:
			fmt.Fprintf(&b, "%s: %g%s (required %s, FAILED)\n", m.Name, m.Value, unit, std.Requirement())
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
