package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lokiteck/dspagent/core"
	"github.com/lokiteck/dspagent/logging"
	"github.com/lokiteck/dspagent/model"
	"github.com/lokiteck/dspagent/prompt"
)

// Default processing limits.
const (
	DefaultModelTimeout   = 60 * time.Second
	DefaultContextTimeout = 10 * time.Second

	// DefaultMaxHistoryTurns bounds the history window sent to the model.
	// The full transcript stays in the session store; only the model input
	// is windowed to the most recent turns.
	DefaultMaxHistoryTurns = 30
)

// ErrEmptySessionID is returned when a caller omits the session identifier.
var ErrEmptySessionID = errors.New("session id is empty")

// ProcessOptions carries optional per-request context for an agent call.
type ProcessOptions struct {
	// CompanyCode selects company-specific screening questions.
	CompanyCode string
	// Employee and Category select coaching history records.
	Employee string
	Category string
}

// ConversationalAgent is the message-processing contract the transport layer
// consumes. Implementations are safe for concurrent use across sessions;
// calls for the same session are serialized internally.
type ConversationalAgent interface {
	Name() string

	// ProcessMessage runs one conversational exchange: it renders the
	// agent's template with any required context, sends the prior history
	// plus the user text to the model, appends both turns atomically and
	// returns the assistant text. On any failure nothing is appended.
	ProcessMessage(ctx context.Context, sessionID, userText string, opts ProcessOptions) (string, error)

	// Reset clears the session's history and cached context.
	Reset(ctx context.Context, sessionID string) error
}

// contextBinder produces the template bindings for one exchange. Variants
// that need external per-tenant context implement fetching and caching here;
// errors abort the exchange before anything touches the history.
type contextBinder func(ctx context.Context, a *Agent, sessionID, userText string, opts ProcessOptions) (map[string]string, error)

// Options configure an Agent instance.
type Options struct {
	Logger          logging.Logger
	ModelTimeout    time.Duration
	ContextTimeout  time.Duration
	MaxHistoryTurns int

	// Locks serializes exchanges per session. Agents sharing a session store
	// must share one instance so that processing and reset on the same
	// session are mutually exclusive across all of them. Defaults to a
	// per-agent instance.
	Locks *SessionLocks
}

// Agent is the shared engine behind every conversational variant. Construct
// via the variant constructors (NewDriverScreeningAgent etc.), which supply
// the template and the context binder.
type Agent struct {
	name     string
	template prompt.Template
	store    core.SessionStore
	llm      model.Model
	bind     contextBinder

	logger          logging.Logger
	modelTimeout    time.Duration
	contextTimeout  time.Duration
	maxHistoryTurns int

	locks *SessionLocks
}

func newAgent(name string, template prompt.Template, store core.SessionStore, llm model.Model, bind contextBinder, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Logger:          logging.NoOpLogger{},
		ModelTimeout:    DefaultModelTimeout,
		ContextTimeout:  DefaultContextTimeout,
		MaxHistoryTurns: DefaultMaxHistoryTurns,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Locks == nil {
		opts.Locks = NewSessionLocks()
	}

	return &Agent{
		name:            name,
		template:        template,
		store:           store,
		llm:             llm,
		bind:            bind,
		logger:          opts.Logger,
		modelTimeout:    opts.ModelTimeout,
		contextTimeout:  opts.ContextTimeout,
		maxHistoryTurns: opts.MaxHistoryTurns,
		locks:           opts.Locks,
	}
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// ProcessMessage implements ConversationalAgent.
//
// Calls for the same session are mutually exclusive for the duration of the
// exchange; calls for distinct sessions proceed in parallel. Turns are
// appended only after the model call succeeds, as one contiguous pair, so the
// history never holds a partial exchange.
func (a *Agent) ProcessMessage(ctx context.Context, sessionID, userText string, opts ProcessOptions) (string, error) {
	if sessionID == "" {
		return "", ErrEmptySessionID
	}

	unlock := a.locks.lock(sessionID)
	defer unlock()

	history, err := a.store.History(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load session %q: %w", sessionID, err)
	}

	bindings := map[string]string{}
	if a.bind != nil {
		bindings, err = a.bind(ctx, a, sessionID, userText, opts)
		if err != nil {
			return "", err
		}
	}

	instructions, err := a.template.Render(bindings)
	if err != nil {
		return "", err
	}

	mctx, cancel := context.WithTimeout(ctx, a.modelTimeout)
	defer cancel()

	start := time.Now()
	resp, err := a.llm.Complete(mctx, model.Request{
		Instructions: instructions,
		History:      windowTurns(history, a.maxHistoryTurns),
		UserMessage:  userText,
	})
	if err != nil {
		a.logger.Error("model call failed", "agent", a.name, "session_id", sessionID, "error", err)
		return "", fmt.Errorf("%w: %v", core.ErrModelCallFailed, err)
	}
	if resp.Text == "" {
		return "", fmt.Errorf("%w: agent %q", core.ErrEmptyCompletion, a.name)
	}

	// Caller gave up while the model was in flight: discard the result
	// rather than appending turns the caller never saw.
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := a.store.Append(ctx, sessionID, core.NewUserTurn(userText), core.NewAssistantTurn(resp.Text)); err != nil {
		return "", fmt.Errorf("append to session %q: %w", sessionID, err)
	}

	a.logger.Debug("exchange completed",
		"agent", a.name,
		"session_id", sessionID,
		"model", a.llm.Info().Name,
		"duration", time.Since(start),
	)
	return resp.Text, nil
}

// Reset implements ConversationalAgent.
func (a *Agent) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	unlock := a.locks.lock(sessionID)
	defer unlock()
	return a.store.Clear(ctx, sessionID)
}

// History returns the session's full recorded transcript.
func (a *Agent) History(ctx context.Context, sessionID string) ([]core.Turn, error) {
	return a.store.History(ctx, sessionID)
}

// windowTurns returns the most recent limit turns, keeping exchange pairs
// intact by trimming from the front. History is appended in user/assistant
// pairs, so an odd limit is rounded down to the pair boundary.
func windowTurns(turns []core.Turn, limit int) []core.Turn {
	if limit <= 0 || len(turns) <= limit {
		return turns
	}
	limit -= limit % 2
	return turns[len(turns)-limit:]
}

// SessionLocks serializes processing per session identifier. Entries are
// created lazily and retained for the process lifetime, matching session
// lifetime. One instance shared by several agents extends the mutual
// exclusion across all of them.
type SessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSessionLocks constructs an empty lock set.
func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: make(map[string]*sync.Mutex)}
}

func (s *SessionLocks) lock(sessionID string) (unlock func()) {
	s.mu.Lock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
