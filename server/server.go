// Package server exposes the agent platform over HTTP.
//
// Each agent gets a JSON chat endpoint; company screening questions get a
// small CRUD surface; sessions can be reset. Routes:
//
//	POST   /api/driver-screening                       driver screening chat
//	POST   /api/company-admin                          question admin chat
//	POST   /api/chat                                   content generation chat
//	POST   /api/analyze-performance                    metrics assessment
//	POST   /api/coaching-feedback                      coaching feedback chat
//	GET    /api/companies/{dsp_code}/questions         list questions
//	POST   /api/companies/{dsp_code}/questions         create (append or replace)
//	PUT    /api/companies/{dsp_code}/questions/{index} update one question
//	DELETE /api/companies/{dsp_code}/questions/{index} delete one question
//	DELETE /api/sessions/{session_id}                  reset a session
//	GET    /health                                     liveness probe
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lokiteck/dspagent/agent"
	"github.com/lokiteck/dspagent/core"
	"github.com/lokiteck/dspagent/logging"
	"github.com/lokiteck/dspagent/questions"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "127.0.0.1:8000"

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout bounds request header reads.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout bounds reading the full request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout bounds writing the response. Model calls run inside the
	// handler, so this must exceed the agent model timeout.
	WriteTimeout = 90 * time.Second

	// IdleTimeout bounds keep-alive waits.
	IdleTimeout = 120 * time.Second
)

// Agents collects the conversational agents served over HTTP. Nil entries
// leave the matching routes unregistered.
type Agents struct {
	Screening    agent.ConversationalAgent
	CompanyAdmin agent.ConversationalAgent
	Content      agent.ConversationalAgent
	Performance  agent.ConversationalAgent
	Coaching     agent.ConversationalAgent
}

// Server is the HTTP front end of the agent platform.
type Server struct {
	mux       *http.ServeMux
	agents    Agents
	questions questions.Manager
	store     core.SessionStore
	logger    logging.Logger
}

// Options configure the Server.
type Options struct {
	// Logger receives request and error logs. Defaults to a no-op logger.
	Logger logging.Logger
}

// New creates a Server with all routes registered.
func New(agents Agents, manager questions.Manager, store core.SessionStore, optFns ...func(o *Options)) *Server {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	s := &Server{
		mux:       http.NewServeMux(),
		agents:    agents,
		questions: manager,
		store:     store,
		logger:    opts.Logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	if s.agents.Screening != nil {
		s.mux.HandleFunc("POST /api/driver-screening", s.handleDriverScreening)
	}
	if s.agents.CompanyAdmin != nil {
		s.mux.HandleFunc("POST /api/company-admin", s.handleCompanyAdmin)
	}
	if s.agents.Content != nil {
		s.mux.HandleFunc("POST /api/chat", s.handleChat)
	}
	if s.agents.Performance != nil {
		s.mux.HandleFunc("POST /api/analyze-performance", s.handleAnalyzePerformance)
	}
	if s.agents.Coaching != nil {
		s.mux.HandleFunc("POST /api/coaching-feedback", s.handleCoachingFeedback)
	}

	if s.questions != nil {
		s.mux.HandleFunc("GET /api/companies/{dsp_code}/questions", s.handleListQuestions)
		s.mux.HandleFunc("POST /api/companies/{dsp_code}/questions", s.handleCreateQuestions)
		s.mux.HandleFunc("PUT /api/companies/{dsp_code}/questions/{index}", s.handleUpdateQuestion)
		s.mux.HandleFunc("DELETE /api/companies/{dsp_code}/questions/{index}", s.handleDeleteQuestion)
	}

	s.mux.HandleFunc("DELETE /api/sessions/{session_id}", s.handleResetSession)
}

// Handler returns the full handler chain: recovery, then request logging,
// then the mux.
func (s *Server) Handler() http.Handler {
	return chain(s.mux, s.recoveryMiddleware, s.loggingMiddleware)
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails. Cancellation triggers a graceful shutdown.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("http server shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "session_id is required")
		return
	}
	if err := s.resetSession(r.Context(), sessionID); err != nil {
		s.writeAgentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"session_id": sessionID, "status": "cleared"})
}

// resetSession routes the clear through an agent's Reset so it takes the
// per-session lock and cannot interleave with an in-flight exchange. Agents
// wired through the platform share one lock set, extending the exclusion to
// every agent on the session.
func (s *Server) resetSession(ctx context.Context, sessionID string) error {
	for _, a := range []agent.ConversationalAgent{
		s.agents.Screening,
		s.agents.CompanyAdmin,
		s.agents.Content,
		s.agents.Performance,
		s.agents.Coaching,
	} {
		if a != nil {
			return a.Reset(ctx, sessionID)
		}
	}
	return s.store.Clear(ctx, sessionID)
}
