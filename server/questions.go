package server

import (
	"net/http"
	"strconv"

	"github.com/lokiteck/dspagent/questions"
)

// CreateQuestionsRequest saves screening questions for a company. Append
// adds to the existing list; otherwise the list is replaced.
type CreateQuestionsRequest struct {
	Questions []questions.Question `json:"questions"`
	Append    bool                 `json:"append,omitempty"`
}

// QuestionsResponse lists a company's screening questions.
type QuestionsResponse struct {
	DSPCode   string               `json:"dsp_code"`
	Questions []questions.Question `json:"questions"`
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	dspCode := r.PathValue("dsp_code")

	qs, err := s.questions.FetchQuestions(r.Context(), dspCode)
	if err != nil {
		s.writeAgentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, QuestionsResponse{DSPCode: dspCode, Questions: qs})
}

func (s *Server) handleCreateQuestions(w http.ResponseWriter, r *http.Request) {
	dspCode := r.PathValue("dsp_code")

	var req CreateQuestionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if len(req.Questions) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "questions must not be empty")
		return
	}
	for i, q := range req.Questions {
		if q.Text == "" {
			writeError(w, http.StatusBadRequest, "invalid_request",
				"question "+strconv.Itoa(i)+" has empty text")
			return
		}
	}

	if err := s.questions.CreateQuestions(r.Context(), dspCode, req.Questions, req.Append); err != nil {
		s.writeAgentError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"dsp_code": dspCode,
		"count":    len(req.Questions),
		"append":   req.Append,
	})
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	dspCode := r.PathValue("dsp_code")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "index must be a non-negative integer")
		return
	}

	var q questions.Question
	if err := decodeJSON(r, &q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if q.Text == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "question text must not be empty")
		return
	}

	if err := s.questions.UpdateQuestion(r.Context(), dspCode, index, q); err != nil {
		s.writeAgentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dsp_code": dspCode, "index": index})
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	dspCode := r.PathValue("dsp_code")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "index must be a non-negative integer")
		return
	}

	if err := s.questions.DeleteQuestion(r.Context(), dspCode, index); err != nil {
		s.writeAgentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dsp_code": dspCode, "index": index, "status": "deleted"})
}
