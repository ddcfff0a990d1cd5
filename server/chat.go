package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lokiteck/dspagent/agent"
)

// DriverScreeningRequest starts or continues a screening conversation.
// An empty message synthesizes the opening trigger; an empty session id
// starts a fresh conversation under a generated id.
type DriverScreeningRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	DSPCode   string `json:"dsp_code"`
}

// DriverScreeningResponse carries the reply plus the identifiers the caller
// needs for the next turn.
type DriverScreeningResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	DSPCode   string `json:"dsp_code"`
}

func (s *Server) handleDriverScreening(w http.ResponseWriter, r *http.Request) {
	var req DriverScreeningRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
		s.logger.Info("generated screening session id", "session_id", sessionID)
	}
	dspCode := strings.TrimSpace(req.DSPCode)

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = fmt.Sprintf("Start [DSP: %s, Session: %s]", dspCode, sessionID)
	}

	reply, err := s.agents.Screening.ProcessMessage(r.Context(), sessionID, message, agent.ProcessOptions{
		CompanyCode: dspCode,
	})
	if err != nil {
		s.writeAgentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DriverScreeningResponse{
		Response:  reply,
		SessionID: sessionID,
		DSPCode:   dspCode,
	})
}

// CompanyAdminRequest continues a question-management conversation for one
// company.
type CompanyAdminRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	DSPCode   string `json:"dsp_code"`
}

func (s *Server) handleCompanyAdmin(w http.ResponseWriter, r *http.Request) {
	var req CompanyAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "session_id is required")
		return
	}
	if strings.TrimSpace(req.DSPCode) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "dsp_code is required")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}

	reply, err := s.agents.CompanyAdmin.ProcessMessage(r.Context(), req.SessionID, req.Message, agent.ProcessOptions{
		CompanyCode: req.DSPCode,
	})
	if err != nil {
		s.writeAgentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": reply, "session_id": req.SessionID})
}

// ChatRequest continues a content-generation conversation. An empty message
// is synthesized from the caller's name, company and subject.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	Subject   string `json:"subject"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.SessionID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "session_id is required")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		if req.Name == "" || req.Company == "" || req.Subject == "" {
			writeError(w, http.StatusBadRequest, "invalid_request",
				"name, company and subject are required when message is empty")
			return
		}
		message = fmt.Sprintf("I am %s from %s and I want your help with %s", req.Name, req.Company, req.Subject)
	}

	reply, err := s.agents.Content.ProcessMessage(r.Context(), req.SessionID, message, agent.ProcessOptions{})
	if err != nil {
		s.writeAgentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": reply, "session_id": req.SessionID})
}

// PerformanceRequest carries the raw metrics text to assess.
type PerformanceRequest struct {
	Messages  string `json:"messages"`
	SessionID string `json:"session_id,omitempty"`
}

func (s *Server) handleAnalyzePerformance(w http.ResponseWriter, r *http.Request) {
	var req PerformanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Messages) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "messages is required")
		return
	}

	// Assessment is a one-shot operation; without a session id each request
	// gets its own conversation.
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	analysis, err := s.agents.Performance.ProcessMessage(r.Context(), sessionID, req.Messages, agent.ProcessOptions{})
	if err != nil {
		s.writeAgentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"analysis": analysis, "session_id": sessionID})
}

// CoachingFeedbackRequest asks for structured coaching feedback for one
// driver. An empty message defaults to the opening trigger.
type CoachingFeedbackRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
}

func (s *Server) handleCoachingFeedback(w http.ResponseWriter, r *http.Request) {
	var req CoachingFeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = "Start"
	}

	reply, err := s.agents.Coaching.ProcessMessage(r.Context(), sessionID, message, agent.ProcessOptions{
		Employee: req.Name,
		Category: req.Category,
	})
	if err != nil {
		s.writeAgentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": reply, "session_id": sessionID})
}
