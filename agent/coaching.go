package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lokiteck/dspagent/core"
	"github.com/lokiteck/dspagent/model"
	"github.com/lokiteck/dspagent/prompt"
)

// CoachingRecord is one prior coaching entry for a driver.
type CoachingRecord struct {
	EmployeeName string    `json:"employee_name" bson:"employee_name"`
	Category     string    `json:"category" bson:"category"`
	Severity     string    `json:"severity,omitempty" bson:"severity,omitempty"`
	Statement    string    `json:"statement" bson:"statement"`
	Date         time.Time `json:"date" bson:"date"`
}

// CoachingSource yields the prior coaching records for an employee and
// category. An employee with no history returns an empty slice, not an error.
type CoachingSource interface {
	FetchRecords(ctx context.Context, employeeName, category string) ([]CoachingRecord, error)
}

// InMemoryCoachingSource is a threadsafe in-process CoachingSource, useful
// for tests and local development.
type InMemoryCoachingSource struct {
	mu      sync.RWMutex
	records []CoachingRecord
}

var _ CoachingSource = (*InMemoryCoachingSource)(nil)

// NewInMemoryCoachingSource creates an empty in-memory coaching source.
func NewInMemoryCoachingSource() *InMemoryCoachingSource {
	return &InMemoryCoachingSource{}
}

// NewCoachingSourceFromFile loads coaching records from a JSON file holding
// an array of CoachingRecord objects.
func NewCoachingSourceFromFile(path string) (*InMemoryCoachingSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read coaching records %q: %w", path, err)
	}

	var records []CoachingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode coaching records %q: %w", path, err)
	}

	s := NewInMemoryCoachingSource()
	s.Add(records...)
	return s, nil
}

// Add appends records to the source.
func (s *InMemoryCoachingSource) Add(records ...CoachingRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// FetchRecords implements CoachingSource. Matching is case-insensitive on
// both employee name and category.
func (s *InMemoryCoachingSource) FetchRecords(_ context.Context, employeeName, category string) ([]CoachingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []CoachingRecord
	for _, r := range s.records {
		if strings.EqualFold(r.EmployeeName, employeeName) && strings.EqualFold(r.Category, category) {
			out = append(out, r)
		}
	}
	return out, nil
}

// coachingHistoryKey caches the formatted history block on the session so the
// source is consulted once per conversation.
const coachingHistoryKey = "coaching_history"

// FormatCoachingHistory renders records as a dated list for prompt
// injection. An empty slice yields an explicit no-history note.
func FormatCoachingHistory(records []CoachingRecord) string {
	if len(records) == 0 {
		return "No prior coaching history on record for this employee and category."
	}

	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%d. [%s]", i+1, r.Date.Format("2006-01-02")))
		if r.Severity != "" {
			b.WriteString(fmt.Sprintf(" (%s)", r.Severity))
		}
		b.WriteString(" " + r.Statement)
	}
	return b.String()
}

// NewCoachingAnalyzerAgent builds the agent that drafts coaching feedback
// for a driver, grounded in the driver's prior coaching history. Employee
// name and category arrive through ProcessOptions; the fetched history is
// cached on the session after the first exchange.
func NewCoachingAnalyzerAgent(registry *prompt.Registry, store core.SessionStore, llm model.Model, source CoachingSource, optFns ...func(o *Options)) (*Agent, error) {
	template, err := registry.Get(prompt.CoachingHistoryTemplate)
	if err != nil {
		return nil, err
	}

	bind := func(ctx context.Context, a *Agent, sessionID, _ string, opts ProcessOptions) (map[string]string, error) {
		if opts.Employee == "" {
			return nil, fmt.Errorf("%w: employee name is required for coaching analysis", core.ErrMissingPlaceholder)
		}
		category := opts.Category
		if category == "" {
			category = "General"
		}

		history, err := coachingHistoryBlock(ctx, a, source, sessionID, opts.Employee, category)
		if err != nil {
			return nil, err
		}
		return map[string]string{
			"employee_name":     opts.Employee,
			"coaching_category": category,
			"coaching_history":  history,
		}, nil
	}

	return newAgent("coaching_analyzer", template, store, llm, bind, optFns...), nil
}

func coachingHistoryBlock(ctx context.Context, a *Agent, source CoachingSource, sessionID, employee, category string) (string, error) {
	cached, found, err := a.store.GetContext(ctx, sessionID, coachingHistoryKey)
	if err != nil {
		return "", fmt.Errorf("load cached coaching history for session %q: %w", sessionID, err)
	}
	if found {
		return cached, nil
	}

	fctx, cancel := context.WithTimeout(ctx, a.contextTimeout)
	defer cancel()

	records, err := source.FetchRecords(fctx, employee, category)
	if err != nil {
		return "", fmt.Errorf("%w: fetch coaching records for %q: %v", core.ErrContextFetchFailed, employee, err)
	}

	block := FormatCoachingHistory(records)
	if err := a.store.SetContext(ctx, sessionID, coachingHistoryKey, block); err != nil {
		return "", fmt.Errorf("cache coaching history for session %q: %w", sessionID, err)
	}
	return block, nil
}
