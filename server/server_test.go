package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokiteck/dspagent/agent"
	"github.com/lokiteck/dspagent/model"
	"github.com/lokiteck/dspagent/prompt"
	"github.com/lokiteck/dspagent/questions"
	"github.com/lokiteck/dspagent/session"
)

type fixture struct {
	server  *Server
	store   *session.InMemoryStore
	llm     *model.MockModel
	manager *questions.InMemory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	registry := prompt.NewPlatformRegistry()
	store := session.NewInMemoryStore()
	llm := model.NewMockModel("mock")
	manager := questions.NewInMemory()
	manager.Seed("DSP001", questions.Question{Text: "Do you have a valid driver's license?", Required: true})

	locks := agent.NewSessionLocks()
	shared := func(o *agent.Options) { o.Locks = locks }

	screening, err := agent.NewDriverScreeningAgent(registry, store, llm, manager, shared)
	require.NoError(t, err)
	admin, err := agent.NewCompanyAdminAgent(registry, store, llm, shared)
	require.NoError(t, err)
	content, err := agent.NewContentGeneratorAgent(registry, store, llm, shared)
	require.NoError(t, err)
	performance, err := agent.NewPerformanceAnalyzerAgent(registry, store, llm, shared)
	require.NoError(t, err)

	source := agent.NewInMemoryCoachingSource()
	coaching, err := agent.NewCoachingAnalyzerAgent(registry, store, llm, source, shared)
	require.NoError(t, err)

	srv := New(Agents{
		Screening:    screening,
		CompanyAdmin: admin,
		Content:      content,
		Performance:  performance,
		Coaching:     coaching,
	}, manager, store)

	return &fixture{server: srv, store: store, llm: llm, manager: manager}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "ok", body["status"])
}

func TestDriverScreeningChat(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/driver-screening", DriverScreeningRequest{
		Message:   "Hello, I want to apply",
		SessionID: "sess-1",
		DSPCode:   "DSP001",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[DriverScreeningResponse](t, rec)
	assert.NotEmpty(t, body.Response)
	assert.Equal(t, "sess-1", body.SessionID)
}

func TestDriverScreeningSynthesizesFirstMessage(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/driver-screening", DriverScreeningRequest{DSPCode: "DSP001"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[DriverScreeningResponse](t, rec)
	assert.NotEmpty(t, body.SessionID, "session id should be generated")
	assert.Contains(t, f.llm.LastRequest().UserMessage, "Start [DSP: DSP001")
}

func TestDriverScreeningUnknownCompany(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/driver-screening", DriverScreeningRequest{
		Message:   "Hello",
		SessionID: "sess-1",
		DSPCode:   "NOPE",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "company_not_found", body.Error)
}

func TestDriverScreeningModelFailure(t *testing.T) {
	f := newFixture(t)
	f.llm.FailWith(assert.AnError)

	rec := f.do(t, http.MethodPost, "/api/driver-screening", DriverScreeningRequest{
		Message:   "Hello",
		SessionID: "sess-1",
		DSPCode:   "DSP001",
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "upstream_failure", body.Error)
}

func TestCompanyAdminRequiresDSPCode(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/company-admin", CompanyAdminRequest{
		Message:   "Add a question",
		SessionID: "sess-1",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatSynthesizesMessage(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/chat", ChatRequest{
		SessionID: "sess-1",
		Name:      "Priya",
		Company:   "Lokiteck",
		Subject:   "driver onboarding emails",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "I am Priya from Lokiteck and I want your help with driver onboarding emails",
		f.llm.LastRequest().UserMessage)
}

func TestChatEmptyMessageWithoutIdentity(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/chat", ChatRequest{SessionID: "sess-1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzePerformance(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/analyze-performance", PerformanceRequest{
		Messages: "POD: 97.8%, Violations: 2",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.NotEmpty(t, body["analysis"])
	assert.NotEmpty(t, body["session_id"])
}

func TestAnalyzePerformanceRequiresMessages(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/analyze-performance", PerformanceRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCoachingFeedback(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/coaching-feedback", CoachingFeedbackRequest{
		Message:  "Moises was cited for a speeding violation.",
		Name:     "Moises",
		Category: "Speeding",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]string](t, rec)
	assert.NotEmpty(t, body["response"])
}

func TestCoachingFeedbackRequiresName(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/coaching-feedback", CoachingFeedbackRequest{Message: "hello"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuestionCRUD(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/companies/DSP002/questions", CreateQuestionsRequest{
		Questions: []questions.Question{
			{Text: "Can you lift 50 pounds?", Required: true},
			{Text: "Are you comfortable with night routes?"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/companies/DSP002/questions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[QuestionsResponse](t, rec)
	require.Len(t, list.Questions, 2)

	rec = f.do(t, http.MethodPut, "/api/companies/DSP002/questions/1",
		questions.Question{Text: "Are you available on weekends?", Required: true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/companies/DSP002/questions/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/companies/DSP002/questions", nil)
	list = decodeBody[QuestionsResponse](t, rec)
	require.Len(t, list.Questions, 1)
	assert.Equal(t, "Are you available on weekends?", list.Questions[0].Text)
}

func TestQuestionIndexOutOfRange(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodDelete, "/api/companies/DSP001/questions/9", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuestionsUnknownCompany(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/companies/NOPE/questions", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetSession(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/chat", ChatRequest{
		SessionID: "sess-1", Message: "hello", Name: "P", Company: "L", Subject: "x",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/sessions/sess-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	turns, err := f.store.History(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestUnknownFieldRejected(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/chat", map[string]string{
		"session_id": "sess-1", "message": "hi", "bogus": "field",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
