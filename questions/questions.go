package questions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lokiteck/dspagent/core"
)

// ErrIndexOutOfRange is returned by Manager operations addressing a question
// index the company's list does not have.
var ErrIndexOutOfRange = errors.New("question index out of range")

// Question is a single screening question configured by a company admin.
type Question struct {
	Text     string `json:"question_text" firestore:"question_text"`
	Criteria string `json:"criteria,omitempty" firestore:"criteria,omitempty"`
	Required bool   `json:"required" firestore:"required"`
}

// Provider supplies the ordered per-company question list consumed by the
// driver screening agent. An empty list means "no customization" and is not
// an error; an unknown company code is core.ErrCompanyNotFound and a
// transport failure is core.ErrProviderUnavailable.
type Provider interface {
	FetchQuestions(ctx context.Context, companyCode string) ([]Question, error)
}

// Manager extends Provider with the admin CRUD surface. Indices are 0-based.
type Manager interface {
	Provider

	// CreateQuestions stores questions for a company. With appendMode the new
	// questions are added after any existing ones, otherwise they replace
	// them.
	CreateQuestions(ctx context.Context, companyCode string, qs []Question, appendMode bool) error

	// UpdateQuestion replaces the question at index.
	UpdateQuestion(ctx context.Context, companyCode string, index int, q Question) error

	// DeleteQuestion removes the question at index.
	DeleteQuestion(ctx context.Context, companyCode string, index int) error
}

// FormatForPrompt renders questions as the numbered block substituted into
// the screening template. An empty list renders a skip note so the agent
// proceeds without customization.
func FormatForPrompt(qs []Question) string {
	if len(qs) == 0 {
		return "   No company-specific questions are configured. Skip this section and proceed to next steps."
	}
	var b strings.Builder
	for i, q := range qs {
		fmt.Fprintf(&b, "   - Ask Question %d: %q\n", i+1, q.Text)
		if q.Criteria != "" {
			fmt.Fprintf(&b, "     * Evaluation criteria: %q\n", q.Criteria)
		}
	}
	b.WriteString("   After asking all questions, thank the driver and proceed to next steps.")
	return b.String()
}

// InMemory is a volatile Manager implementation backed by a process-local
// map. Safe for concurrent use; best suited for tests and ephemeral demo
// servers.
type InMemory struct {
	mu        sync.RWMutex
	questions map[string][]Question
}

// NewInMemory constructs an empty in-memory question store.
func NewInMemory() *InMemory {
	return &InMemory{questions: map[string][]Question{}}
}

// Seed stores questions for a company without CRUD semantics. Test helper.
func (m *InMemory) Seed(companyCode string, qs ...Question) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions[companyCode] = append([]Question{}, qs...)
}

// FetchQuestions implements Provider.
func (m *InMemory) FetchQuestions(_ context.Context, companyCode string) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	qs, ok := m.questions[companyCode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrCompanyNotFound, companyCode)
	}
	out := make([]Question, len(qs))
	copy(out, qs)
	return out, nil
}

// CreateQuestions implements Manager.
func (m *InMemory) CreateQuestions(_ context.Context, companyCode string, qs []Question, appendMode bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if appendMode {
		m.questions[companyCode] = append(m.questions[companyCode], qs...)
		return nil
	}
	m.questions[companyCode] = append([]Question{}, qs...)
	return nil
}

// UpdateQuestion implements Manager.
func (m *InMemory) UpdateQuestion(_ context.Context, companyCode string, index int, q Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	qs, ok := m.questions[companyCode]
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrCompanyNotFound, companyCode)
	}
	if index < 0 || index >= len(qs) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(qs))
	}
	qs[index] = q
	return nil
}

// DeleteQuestion implements Manager.
func (m *InMemory) DeleteQuestion(_ context.Context, companyCode string, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	qs, ok := m.questions[companyCode]
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrCompanyNotFound, companyCode)
	}
	if index < 0 || index >= len(qs) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(qs))
	}
	m.questions[companyCode] = append(qs[:index:index], qs[index+1:]...)
	return nil
}
