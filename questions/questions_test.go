package questions

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokiteck/dspagent/core"
)

// Interface compliance (compile-time assertion)
var _ Manager = (*InMemory)(nil)

func TestInMemoryFetchUnknownCompany(t *testing.T) {
	m := NewInMemory()

	_, err := m.FetchQuestions(context.Background(), "NOPE")
	assert.ErrorIs(t, err, core.ErrCompanyNotFound)
}

func TestInMemoryCreateAppendAndReplace(t *testing.T) {
	ctx := context.Background()
	m := NewInMemory()

	require.NoError(t, m.CreateQuestions(ctx, "DSP1", []Question{{Text: "Q1", Required: true}}, false))
	require.NoError(t, m.CreateQuestions(ctx, "DSP1", []Question{{Text: "Q2"}}, true))

	qs, err := m.FetchQuestions(ctx, "DSP1")
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "Q1", qs[0].Text)
	assert.Equal(t, "Q2", qs[1].Text)

	require.NoError(t, m.CreateQuestions(ctx, "DSP1", []Question{{Text: "Q3"}}, false))
	qs, err = m.FetchQuestions(ctx, "DSP1")
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "Q3", qs[0].Text)
}

func TestInMemoryUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	m := NewInMemory()
	m.Seed("DSP1", Question{Text: "Q1"}, Question{Text: "Q2"})

	require.NoError(t, m.UpdateQuestion(ctx, "DSP1", 1, Question{Text: "Q2b", Required: true}))
	qs, err := m.FetchQuestions(ctx, "DSP1")
	require.NoError(t, err)
	assert.Equal(t, "Q2b", qs[1].Text)
	assert.True(t, qs[1].Required)

	assert.Error(t, m.UpdateQuestion(ctx, "DSP1", 5, Question{Text: "X"}))
	assert.ErrorIs(t, m.UpdateQuestion(ctx, "NOPE", 0, Question{Text: "X"}), core.ErrCompanyNotFound)

	require.NoError(t, m.DeleteQuestion(ctx, "DSP1", 0))
	qs, err = m.FetchQuestions(ctx, "DSP1")
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "Q2b", qs[0].Text)

	assert.Error(t, m.DeleteQuestion(ctx, "DSP1", 3))
}

func TestInMemoryConcurrentAppendLosesNothing(t *testing.T) {
	ctx := context.Background()
	m := NewInMemory()

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q := Question{Text: fmt.Sprintf("Q%d", i)}
			assert.NoError(t, m.CreateQuestions(ctx, "DSP1", []Question{q}, true))
		}(i)
	}
	wg.Wait()

	qs, err := m.FetchQuestions(ctx, "DSP1")
	require.NoError(t, err)
	assert.Len(t, qs, n)
}

func TestFetchReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewInMemory()
	m.Seed("DSP1", Question{Text: "Q1"})

	qs, err := m.FetchQuestions(ctx, "DSP1")
	require.NoError(t, err)
	qs[0].Text = "mutated"

	again, err := m.FetchQuestions(ctx, "DSP1")
	require.NoError(t, err)
	assert.Equal(t, "Q1", again[0].Text)
}

func TestFormatForPrompt(t *testing.T) {
	out := FormatForPrompt([]Question{
		{Text: "Do you have refrigerated transport experience?", Criteria: "at least 1 year"},
		{Text: "Are you comfortable with overnight routes?"},
	})
	assert.Contains(t, out, `Ask Question 1: "Do you have refrigerated transport experience?"`)
	assert.Contains(t, out, `Evaluation criteria: "at least 1 year"`)
	assert.Contains(t, out, "Ask Question 2")

	empty := FormatForPrompt(nil)
	assert.Contains(t, empty, "No company-specific questions")
}
