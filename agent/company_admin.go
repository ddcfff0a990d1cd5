package agent

import (
	"github.com/lokiteck/dspagent/core"
	"github.com/lokiteck/dspagent/model"
	"github.com/lokiteck/dspagent/prompt"
)

// NewCompanyAdminAgent builds the agent that guides company administrators
// through collecting and managing screening questions. The conversation is
// purely template-driven; actual question persistence happens through the
// admin API, not through the model.
func NewCompanyAdminAgent(registry *prompt.Registry, store core.SessionStore, llm model.Model, optFns ...func(o *Options)) (*Agent, error) {
	template, err := registry.Get(prompt.CompanyAdminTemplate)
	if err != nil {
		return nil, err
	}
	return newAgent("company_admin", template, store, llm, nil, optFns...), nil
}
