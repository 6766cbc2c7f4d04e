package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarovic/inflow/internal/approval"
	"github.com/dmarovic/inflow/internal/db"
	"github.com/dmarovic/inflow/internal/intake"
	"github.com/dmarovic/inflow/internal/llm"
	"github.com/dmarovic/inflow/internal/repository"
)

type cannedClient struct {
	response string
}

func (c *cannedClient) Complete(context.Context, llm.CompleteRequest) (*llm.CompleteResponse, error) {
	return &llm.CompleteResponse{Text: c.response, Model: "mock"}, nil
}

func (c *cannedClient) Available(context.Context) bool { return true }

const readyBillResponse = `{
	"status": "ready",
	"intent": "bill",
	"confidence": 0.9,
	"draft": {"title": "Electricity", "amount": 120, "due_date": "2025-03-03"}
}`

const clarifyTaskResponse = `{
	"status": "needs_clarification",
	"intent": "task",
	"confidence": 0.6,
	"draft": {"title": "Finish report"}
}`

func newTestServer(t *testing.T, modelResponse string) *Server {
	t.Helper()
	conn, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	drafts := repository.NewSQLiteDraftRepo(conn)
	appr := approval.NewService(db.NewSQLiteUnitOfWork(conn), drafts, log)

	orch := intake.NewOrchestrator(
		intake.NewInterpreter(&cannedClient{response: modelResponse}),
		intake.NewMemorySessionStore(time.Hour),
		drafts,
		intake.DefaultOrchestratorConfig(),
		log,
	)
	return NewServer(orch, appr, DefaultServerConfig(), log)
}

func doRequest(t *testing.T, s *Server, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(headerUserID, userID)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeTurn(t *testing.T, w *httptest.ResponseRecorder) intake.Turn {
	t.Helper()
	var turn intake.Turn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &turn))
	return turn
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, readyBillResponse)
	w := doRequest(t, s, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProcessInput_RequiresUserHeader(t *testing.T) {
	s := newTestServer(t, readyBillResponse)
	w := doRequest(t, s, http.MethodPost, "/v1/intake", "", map[string]string{"text": "pay rent"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessInput_EmptyInput(t *testing.T) {
	s := newTestServer(t, readyBillResponse)
	w := doRequest(t, s, http.MethodPost, "/v1/intake", "u1", map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessInput_ReadyTurn(t *testing.T) {
	s := newTestServer(t, readyBillResponse)

	w := doRequest(t, s, http.MethodPost, "/v1/intake", "u1", map[string]string{"text": "electricity bill $120"})
	require.Equal(t, http.StatusOK, w.Code)

	turn := decodeTurn(t, w)
	assert.Equal(t, intake.StatusReady, turn.Status)
	assert.NotEmpty(t, turn.DraftID)
	require.NotNil(t, turn.Draft)
	require.NotNil(t, turn.Draft.Bill)
	assert.Equal(t, 120.0, turn.Draft.Bill.Amount)
}

func TestClarificationRoundTripOverHTTP(t *testing.T) {
	s := newTestServer(t, clarifyTaskResponse)

	w := doRequest(t, s, http.MethodPost, "/v1/intake", "u1", map[string]string{"text": "finish the report"})
	require.Equal(t, http.StatusOK, w.Code)

	turn := decodeTurn(t, w)
	require.Equal(t, intake.StatusNeedsClarification, turn.Status)
	require.NotNil(t, turn.ClarificationFlow)
	require.Len(t, turn.ClarificationFlow.Questions, 1)

	answers := submitAnswersRequest{
		FlowID: turn.ClarificationFlow.FlowID,
		Answers: []intake.Answer{{
			QuestionID: turn.ClarificationFlow.Questions[0].ID,
			Value:      "career",
		}},
	}
	w = doRequest(t, s, http.MethodPost, "/v1/intake/"+turn.SessionID+"/answers", "u1", answers)
	require.Equal(t, http.StatusOK, w.Code)

	final := decodeTurn(t, w)
	assert.Equal(t, intake.StatusReady, final.Status)
	assert.NotEmpty(t, final.DraftID)

	// Session cleared: replay returns 404.
	w = doRequest(t, s, http.MethodPost, "/v1/intake/"+turn.SessionID+"/answers", "u1", answers)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The finalized draft can be applied.
	w = doRequest(t, s, http.MethodPost, "/v1/drafts/"+final.DraftID+"/apply", "u1",
		applyDraftRequest{Action: "APPROVE"})
	require.Equal(t, http.StatusOK, w.Code)

	var res approval.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.NotEmpty(t, res.CreatedEntityID)
}

func TestSubmitAnswers_UnknownSession(t *testing.T) {
	s := newTestServer(t, clarifyTaskResponse)
	w := doRequest(t, s, http.MethodPost, "/v1/intake/no-such-session/answers", "u1",
		submitAnswersRequest{FlowID: "f1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitAnswers_FlowMismatch(t *testing.T) {
	s := newTestServer(t, clarifyTaskResponse)

	w := doRequest(t, s, http.MethodPost, "/v1/intake", "u1", map[string]string{"text": "finish the report"})
	require.Equal(t, http.StatusOK, w.Code)
	turn := decodeTurn(t, w)

	w = doRequest(t, s, http.MethodPost, "/v1/intake/"+turn.SessionID+"/answers", "u1",
		submitAnswersRequest{FlowID: "stale-flow"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApplyDraft_ErrorsMapToStatus(t *testing.T) {
	s := newTestServer(t, readyBillResponse)

	// Unknown draft.
	w := doRequest(t, s, http.MethodPost, "/v1/drafts/missing/apply", "u1",
		applyDraftRequest{Action: "APPROVE"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Wrong owner.
	created := doRequest(t, s, http.MethodPost, "/v1/intake", "u1", map[string]string{"text": "electricity bill"})
	require.Equal(t, http.StatusOK, created.Code)
	turn := decodeTurn(t, created)

	w = doRequest(t, s, http.MethodPost, "/v1/drafts/"+turn.DraftID+"/apply", "intruder",
		applyDraftRequest{Action: "APPROVE"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Bad action.
	w = doRequest(t, s, http.MethodPost, "/v1/drafts/"+turn.DraftID+"/apply", "u1",
		applyDraftRequest{Action: "ARCHIVE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyDraft_WithoutApprovalService(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	orch := intake.NewOrchestrator(
		intake.NewInterpreter(&cannedClient{response: readyBillResponse}),
		intake.NewMemorySessionStore(time.Hour),
		nil,
		intake.DefaultOrchestratorConfig(),
		log,
	)
	s := NewServer(orch, nil, DefaultServerConfig(), log)

	w := doRequest(t, s, http.MethodPost, "/v1/drafts/d1/apply", "u1",
		applyDraftRequest{Action: "APPROVE"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
