// Package dspagent provides a high-level façade over the agent platform:
// prompt registry, session store and the conversational agents serving DSP
// (Delivery Service Partner) operations. Most applications interact with
// this package by:
//  1. Creating a Platform via New() (optionally overriding the default
//     in-memory services and the mock model)
//  2. Dispatching messages to a named agent via ProcessMessage, or mounting
//     the agents behind the HTTP server
//
// All defaults are safe for local development and testing; production
// deployments supply a real model, a Mongo-backed session store and a
// Firestore-backed question manager.
package dspagent

import (
	"context"
	"fmt"

	"github.com/lokiteck/dspagent/agent"
	"github.com/lokiteck/dspagent/core"
	"github.com/lokiteck/dspagent/logging"
	"github.com/lokiteck/dspagent/model"
	"github.com/lokiteck/dspagent/prompt"
	"github.com/lokiteck/dspagent/questions"
	"github.com/lokiteck/dspagent/session"
)

// Options configures the Platform.
type Options struct {
	// SessionStore holds conversation history. Defaults to in-memory.
	SessionStore core.SessionStore

	// Questions supplies and manages per-company screening questions.
	// Defaults to an empty in-memory manager.
	Questions questions.Manager

	// Coaching supplies prior coaching records. Defaults to an empty
	// in-memory source.
	Coaching agent.CoachingSource

	// Model is the language model shared by all agents. Defaults to a mock.
	Model model.Model

	// Logger defaults to NoOp.
	Logger logging.Logger

	// AgentOptions are applied to every agent (timeouts, history window).
	AgentOptions []func(o *agent.Options)
}

// Platform aggregates the prompt registry, shared services and the named
// conversational agents.
type Platform struct {
	opts     Options
	registry *prompt.Registry
	agents   map[string]agent.ConversationalAgent
}

// New creates a Platform with optional overrides. Any unset service is
// initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) (*Platform, error) {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Questions:    questions.NewInMemory(),
		Coaching:     agent.NewInMemoryCoachingSource(),
		Model:        model.NewMockModel("mock"),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	registry := prompt.NewPlatformRegistry()

	// One lock set across all agents: they share the session store, so
	// processing and reset on a session must exclude each other regardless
	// of which agent the call lands on.
	locks := agent.NewSessionLocks()
	agentOpts := append([]func(o *agent.Options){func(o *agent.Options) {
		o.Logger = opts.Logger
		o.Locks = locks
	}}, opts.AgentOptions...)

	screening, err := agent.NewDriverScreeningAgent(registry, opts.SessionStore, opts.Model, opts.Questions, agentOpts...)
	if err != nil {
		return nil, err
	}
	admin, err := agent.NewCompanyAdminAgent(registry, opts.SessionStore, opts.Model, agentOpts...)
	if err != nil {
		return nil, err
	}
	content, err := agent.NewContentGeneratorAgent(registry, opts.SessionStore, opts.Model, agentOpts...)
	if err != nil {
		return nil, err
	}
	performance, err := agent.NewPerformanceAnalyzerAgent(registry, opts.SessionStore, opts.Model, agentOpts...)
	if err != nil {
		return nil, err
	}
	coaching, err := agent.NewCoachingAnalyzerAgent(registry, opts.SessionStore, opts.Model, opts.Coaching, agentOpts...)
	if err != nil {
		return nil, err
	}

	agents := map[string]agent.ConversationalAgent{}
	for _, a := range []agent.ConversationalAgent{screening, admin, content, performance, coaching} {
		agents[a.Name()] = a
	}

	return &Platform{opts: opts, registry: registry, agents: agents}, nil
}

// Agent returns the named agent, or false when no such agent exists.
func (p *Platform) Agent(name string) (agent.ConversationalAgent, bool) {
	a, ok := p.agents[name]
	return a, ok
}

// AgentNames returns the registered agent names.
func (p *Platform) AgentNames() []string {
	names := make([]string, 0, len(p.agents))
	for name := range p.agents {
		names = append(names, name)
	}
	return names
}

// ProcessMessage dispatches one user message to the named agent.
func (p *Platform) ProcessMessage(ctx context.Context, agentName, sessionID, userText string, opts agent.ProcessOptions) (string, error) {
	a, ok := p.agents[agentName]
	if !ok {
		return "", fmt.Errorf("unknown agent %q", agentName)
	}
	return a.ProcessMessage(ctx, sessionID, userText, opts)
}

// Reset clears one session's history and cached context.
func (p *Platform) Reset(ctx context.Context, sessionID string) error {
	return p.opts.SessionStore.Clear(ctx, sessionID)
}

// Registry exposes the prompt registry.
func (p *Platform) Registry() *prompt.Registry { return p.registry }

// SessionStore exposes the configured session store.
func (p *Platform) SessionStore() core.SessionStore { return p.opts.SessionStore }

// Questions exposes the configured question manager.
func (p *Platform) Questions() questions.Manager { return p.opts.Questions }
