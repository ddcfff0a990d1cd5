package metrics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lokiteck/dspagent/core"
)

// Metric is a single parsed performance measurement.
type Metric struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent bool    `json:"percent"`
}

// Report is the structured form of a driver performance input.
type Report struct {
	Metrics []Metric `json:"metrics"`
}

// Get returns the metric with the given canonical name.
func (r Report) Get(name string) (Metric, bool) {
	canonical := canonicalName(name)
	for _, m := range r.Metrics {
		if m.Name == canonical {
			return m, true
		}
	}
	return Metric{}, false
}

// metricPattern matches one "Name: 97.8%" style segment. The name may span
// words ("Sign/Signal Violations Rate"); the separator may be ':' or '='.
var metricPattern = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9 /_-]*?)\s*[:=]\s*(-?\d+(?:\.\d+)?)\s*(%?)\s*$`)

// Parse extracts metrics from a free-form report. Segments are split on
// commas, semicolons and newlines; segments that do not look like a metric
// are skipped. An input yielding no metric at all returns
// core.ErrMalformedMetrics.
func Parse(input string) (Report, error) {
	var report Report
	for _, segment := range splitSegments(input) {
		m := metricPattern.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		report.Metrics = append(report.Metrics, Metric{
			Name:    canonicalName(m[1]),
			Value:   value,
			Percent: m[3] == "%",
		})
	}
	if len(report.Metrics) == 0 {
		return Report{}, fmt.Errorf("%w: no recognizable metric in %q", core.ErrMalformedMetrics, truncate(input, 80))
	}
	return report, nil
}

func splitSegments(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
}

// canonicalName upper-cases, collapses whitespace and resolves aliases so
// standards lookups are stable ("dcr", "CDR" and "Delivery Completion Rate"
// all evaluate against the same threshold).
func canonicalName(name string) string {
	n := strings.ToUpper(strings.Join(strings.Fields(name), " "))
	if alias, ok := aliases[n]; ok {
		return alias
	}
	return n
}

var aliases = map[string]string{
	"DCR":                          "CDR",
	"DELIVERY COMPLETION RATE":     "CDR",
	"PROOF OF DELIVERY":            "POD",
	"FICO SCORE":                   "FICO",
	"VIOLATIONS":                   "SIGN/SIGNAL VIOLATIONS",
	"SIGN/SIGNAL VIOLATIONS RATE":  "SIGN/SIGNAL VIOLATIONS",
	"SPEEDING":                     "SPEEDING EVENTS",
	"DISTRACTIONS":                 "DISTRACTION EVENTS",
	"DISTRACTIONS RATE":            "DISTRACTION EVENTS",
	"CUSTOMER DELIVERY FEEDBACK":   "CDF",
	"DID NOT RECEIVE":              "DNR",
	"SEATBELT":                     "SEATBELT USAGE",
	"SEATBELT OFF RATE":            "SEATBELT USAGE",
	"IDLING":                       "IDLING TIME",
	"DVIC":                         "DVIC DURATION",
	"DELIVERY SERVICE BASICS":      "DSB",
	"PROFESSIONAL SERVICE BASICS":  "PSB",
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
