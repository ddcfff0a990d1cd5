package agent

import (
	"github.com/lokiteck/dspagent/core"
	"github.com/lokiteck/dspagent/model"
	"github.com/lokiteck/dspagent/prompt"
)

// NewContentGeneratorAgent builds the agent that drafts emails, SMS and
// social media content. No external context is required; the session history
// alone carries the drafting conversation.
func NewContentGeneratorAgent(registry *prompt.Registry, store core.SessionStore, llm model.Model, optFns ...func(o *Options)) (*Agent, error) {
	template, err := registry.Get(prompt.ContentGeneratorTemplate)
	if err != nil {
		return nil, err
	}
	return newAgent("content_generator", template, store, llm, nil, optFns...), nil
}
