package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ragops/assistant-gateway/internal/api/handlers"
	"github.com/ragops/assistant-gateway/internal/feedback"
	"github.com/ragops/assistant-gateway/internal/health"
	"github.com/ragops/assistant-gateway/internal/middleware"
	"github.com/ragops/assistant-gateway/internal/rag"
	"github.com/ragops/assistant-gateway/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct{}

func (stubEngine) Answer(ctx context.Context, question string) (*rag.Answer, error) {
	return &rag.Answer{
		ID:           "conv-e2e",
		Answer:       "42",
		Relevance:    "RELEVANT",
		ResponseTime: 0.5,
		TotalTokens:  100,
		OpenAICost:   0.001,
	}, nil
}

type stubRecorder struct {
	gotConversationID string
	gotScore          int
}

func (s *stubRecorder) Submit(ctx context.Context, conversationID string, score int) (feedback.Result, error) {
	s.gotConversationID = conversationID
	s.gotScore = score
	return feedback.Result{Status: feedback.StatusSuccess, Message: "Feedback saved"}, nil
}

func newTestRouter(recorder *stubRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	store := session.NewMemoryStore(time.Hour)
	codec := session.NewCodec("test-secret")

	gateway := handlers.NewGatewayHandler(stubEngine{}, recorder, nil, logger)

	return NewRouter(RouterOptions{
		Gateway: gateway,
		Health:  health.NewChecker(nil, store, nil, logger),
		Session: session.Middleware(store, codec, time.Hour, logger),
		Auth:    middleware.APIKeyAuth("expected-key", false, logger),
	})
}

// The canonical flow: ask without an API key, then submit feedback with the
// issued cookie.
func TestRouter_AskThenFeedback(t *testing.T) {
	recorder := &stubRecorder{}
	r := newTestRouter(recorder)

	// POST /ask with no API key
	req := httptest.NewRequest("POST", "/ask", bytes.NewBufferString(`{"question": "What is X?"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var askResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &askResp))
	assert.Equal(t, "conv-e2e", askResp["conversation_id"])

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// POST /feedback with the session cookie
	req = httptest.NewRequest("POST", "/feedback", bytes.NewBufferString(`{"feedback": -1}`))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Feedback received and saved successfully"}`, w.Body.String())
	assert.Equal(t, "conv-e2e", recorder.gotConversationID)
	assert.Equal(t, -1, recorder.gotScore)
}

func TestRouter_FeedbackWithoutCookieIsCold(t *testing.T) {
	r := newTestRouter(&stubRecorder{})

	req := httptest.NewRequest("POST", "/feedback", bytes.NewBufferString(`{"feedback": 1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail": "No active conversation found"}`, w.Body.String())
}

func TestRouter_InvalidAPIKeyBlocksBothEndpoints(t *testing.T) {
	r := newTestRouter(&stubRecorder{})

	for _, path := range []string{"/ask", "/feedback"} {
		req := httptest.NewRequest("POST", path, bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.HeaderAPIKey, "wrong-key")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.JSONEq(t, `{"detail": "Invalid API Key"}`, w.Body.String(), path)
	}
}

func TestRouter_HealthIsOpen(t *testing.T) {
	r := newTestRouter(&stubRecorder{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	// Session store is healthy, database and RAG are unconfigured
	require.Equal(t, http.StatusOK, w.Code)

	var resp health.OverallHealth
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}
