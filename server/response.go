package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lokiteck/dspagent/agent"
	"github.com/lokiteck/dspagent/core"
	"github.com/lokiteck/dspagent/questions"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding failures after WriteHeader cannot reach the client; there is
	// nothing useful to do with the error here.
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeAgentError maps the platform error taxonomy onto HTTP statuses.
// Caller mistakes are 4xx, upstream dependency failures are 502, everything
// else is 500.
func (s *Server) writeAgentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, agent.ErrEmptySessionID),
		errors.Is(err, core.ErrMissingPlaceholder),
		errors.Is(err, core.ErrUnknownPlaceholder),
		errors.Is(err, questions.ErrIndexOutOfRange):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, core.ErrCompanyNotFound):
		writeError(w, http.StatusNotFound, "company_not_found", err.Error())
	case errors.Is(err, core.ErrProviderUnavailable),
		errors.Is(err, core.ErrContextFetchFailed),
		errors.Is(err, core.ErrModelCallFailed),
		errors.Is(err, core.ErrEmptyCompletion):
		s.logger.Error("upstream dependency failed", "error", err)
		writeError(w, http.StatusBadGateway, "upstream_failure", err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
