package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/lokiteck/dspagent/core"
	"github.com/lokiteck/dspagent/model"
	"github.com/lokiteck/dspagent/prompt"
	"github.com/lokiteck/dspagent/questions"
)

// screeningQuestionsKey caches the rendered question block on the session so
// the provider is consulted exactly once per conversation.
const screeningQuestionsKey = "screening_questions"

// NewDriverScreeningAgent builds the agent that conducts structured driver
// screening conversations. When a company code is supplied, the company's
// screening questions are fetched on the first exchange and cached for the
// session's remaining lifetime; later turns reuse the cached block.
func NewDriverScreeningAgent(registry *prompt.Registry, store core.SessionStore, llm model.Model, provider questions.Provider, optFns ...func(o *Options)) (*Agent, error) {
	template, err := registry.Get(prompt.DriverScreeningTemplate)
	if err != nil {
		return nil, err
	}

	bind := func(ctx context.Context, a *Agent, sessionID, _ string, opts ProcessOptions) (map[string]string, error) {
		block, err := screeningQuestionBlock(ctx, a, provider, sessionID, opts.CompanyCode)
		if err != nil {
			return nil, err
		}
		return map[string]string{"company_specific_questions": block}, nil
	}

	return newAgent("driver_screening", template, store, llm, bind, optFns...), nil
}

// screeningQuestionBlock resolves the question block for a session: cached
// value if present, otherwise one provider fetch whose result is cached. A
// conversation without a company code gets the no-customization block.
func screeningQuestionBlock(ctx context.Context, a *Agent, provider questions.Provider, sessionID, companyCode string) (string, error) {
	cached, found, err := a.store.GetContext(ctx, sessionID, screeningQuestionsKey)
	if err != nil {
		return "", fmt.Errorf("load cached questions for session %q: %w", sessionID, err)
	}
	if found {
		return cached, nil
	}

	var block string
	if companyCode == "" {
		block = questions.FormatForPrompt(nil)
	} else {
		fctx, cancel := context.WithTimeout(ctx, a.contextTimeout)
		defer cancel()

		qs, err := provider.FetchQuestions(fctx, companyCode)
		switch {
		case errors.Is(err, core.ErrCompanyNotFound):
			return "", err
		case err != nil:
			a.logger.Error("question fetch failed", "agent", a.name, "company_code", companyCode, "error", err)
			return "", fmt.Errorf("%w: company %q: %v", core.ErrContextFetchFailed, companyCode, err)
		}
		// An empty question list is "no customization", not an error.
		block = questions.FormatForPrompt(qs)
	}

	if err := a.store.SetContext(ctx, sessionID, screeningQuestionsKey, block); err != nil {
		return "", fmt.Errorf("cache questions for session %q: %w", sessionID, err)
	}
	return block, nil
}
