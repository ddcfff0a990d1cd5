package agent

import (
	"context"
	"errors"

	"github.com/lokiteck/dspagent/core"
	"github.com/lokiteck/dspagent/metrics"
	"github.com/lokiteck/dspagent/model"
	"github.com/lokiteck/dspagent/prompt"
)

// insufficientDataNote is substituted for the metrics report when the input
// parses to nothing recognizable, so the analyzer still answers instead of
// failing the whole request.
const insufficientDataNote = "No recognizable performance metrics were provided. " +
	"State that the data is insufficient for an assessment and list the expected " +
	"input format (metric name followed by its value, e.g. \"POD: 99.8%\")."

// NewPerformanceAnalyzerAgent builds the agent that assesses driver
// performance metrics against the DSP scorecard. The user input is parsed
// into structured metrics before rendering; malformed input is recovered
// locally with an insufficient-data note rather than aborting the exchange.
func NewPerformanceAnalyzerAgent(registry *prompt.Registry, store core.SessionStore, llm model.Model, optFns ...func(o *Options)) (*Agent, error) {
	template, err := registry.Get(prompt.PerformanceAnalyzerTemplate)
	if err != nil {
		return nil, err
	}

	bind := func(_ context.Context, a *Agent, sessionID, userText string, _ ProcessOptions) (map[string]string, error) {
		report, err := metrics.Parse(userText)
		if errors.Is(err, core.ErrMalformedMetrics) {
			a.logger.Warn("malformed metrics input", "agent", a.name, "session_id", sessionID, "error", err)
			return map[string]string{"metrics_report": insufficientDataNote}, nil
		}
		if err != nil {
			return nil, err
		}
		return map[string]string{"metrics_report": metrics.FormatReport(report)}, nil
	}

	return newAgent("performance_analyzer", template, store, llm, bind, optFns...), nil
}
