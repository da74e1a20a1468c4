// Package handlers holds the HTTP boundary of the gateway: body binding,
// session bookkeeping, and the mapping of every outcome to a fixed
// status/detail pair. All substantive work is delegated to the RAG engine
// and the feedback recorder.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ragops/assistant-gateway/internal/feedback"
	"github.com/ragops/assistant-gateway/internal/models"
	"github.com/ragops/assistant-gateway/internal/rag"
	"github.com/ragops/assistant-gateway/internal/session"
	"github.com/ragops/assistant-gateway/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Fixed client-facing strings. Unexpected failures always map to one of the
// generic details; the real cause only ever reaches the log.
const (
	detailAskFailed       = "Error processing your question"
	detailFeedbackFailed  = "Error processing your feedback"
	detailNoConversation  = "No active conversation found"
	detailInvalidFeedback = "Invalid feedback value. Must be -1 or 1"

	messageFeedbackSaved = "Feedback received and saved successfully"
)

type GatewayHandler struct {
	engine        rag.Engine
	recorder      feedback.Recorder
	conversations models.ConversationRepository
	logger        *logrus.Logger
}

// NewGatewayHandler wires the handler. conversations may be nil when the
// gateway runs without a database; answers are then served but not recorded.
func NewGatewayHandler(
	engine rag.Engine,
	recorder feedback.Recorder,
	conversations models.ConversationRepository,
	logger *logrus.Logger,
) *GatewayHandler {
	return &GatewayHandler{
		engine:        engine,
		recorder:      recorder,
		conversations: conversations,
		logger:        logger,
	}
}

// HandleAsk processes POST /ask: delegate the question to the RAG engine,
// remember the conversation ID in the caller's session, and forward the
// answer with openai_cost renamed to estimated_cost.
func (h *GatewayHandler) HandleAsk(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.logger.WithField("question", req.Question).Info("Received question")

	ctx := c.Request.Context()
	answer, err := h.engine.Answer(ctx, req.Question)
	if err != nil {
		h.logger.WithError(err).Error("Error processing question")
		utils.ErrorResponse(c, http.StatusInternalServerError, detailAskFailed)
		return
	}

	h.logger.WithField("conversation_id", answer.ID).Info("Generated answer")

	// Overwrites any conversation the session held before.
	sess := session.FromContext(c)
	if err := sess.Set(ctx, session.KeyConversationID, answer.ID); err != nil {
		h.logger.WithError(err).Error("Error storing conversation in session")
		utils.ErrorResponse(c, http.StatusInternalServerError, detailAskFailed)
		return
	}

	h.recordConversation(req.Question, answer)

	c.JSON(http.StatusOK, models.AskResponse{
		ConversationID: answer.ID,
		Answer:         answer.Answer,
		Relevance:      answer.Relevance,
		ResponseTime:   answer.ResponseTime,
		TotalTokens:    answer.TotalTokens,
		EstimatedCost:  answer.OpenAICost,
	})
}

// HandleFeedback processes POST /feedback: require a conversation from the
// session, validate the score, and hand off to the recorder. Reported
// recorder failures surface their own message; anything else is opaque.
func (h *GatewayHandler) HandleFeedback(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	sess := session.FromContext(c)

	conversationID, err := sess.Get(ctx, session.KeyConversationID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusBadRequest, detailNoConversation)
			return
		}
		h.logger.WithError(err).Error("Error reading session")
		utils.ErrorResponse(c, http.StatusInternalServerError, detailFeedbackFailed)
		return
	}
	if conversationID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, detailNoConversation)
		return
	}

	h.logger.WithField("conversation_id", conversationID).Info("Received feedback")

	score := *req.Feedback
	if score != -1 && score != 1 {
		utils.ErrorResponse(c, http.StatusBadRequest, detailInvalidFeedback)
		return
	}

	result, err := h.recorder.Submit(ctx, conversationID, score)
	if err != nil {
		h.logger.WithError(err).Error("Error processing feedback")
		utils.ErrorResponse(c, http.StatusInternalServerError, detailFeedbackFailed)
		return
	}

	if result.Status != feedback.StatusSuccess {
		utils.ErrorResponse(c, http.StatusInternalServerError, result.Message)
		return
	}

	c.JSON(http.StatusOK, models.FeedbackResponse{Message: messageFeedbackSaved})
}

// recordConversation persists the exchange so later feedback has a row to
// land on. Failures are logged and never fail the request: the caller
// already has their answer.
func (h *GatewayHandler) recordConversation(question string, answer *rag.Answer) {
	if h.conversations == nil {
		return
	}

	conversation := &models.Conversation{
		ID:           answer.ID,
		Question:     question,
		Answer:       answer.Answer,
		Relevance:    fmt.Sprint(answer.Relevance),
		ResponseTime: answer.ResponseTime,
		TotalTokens:  answer.TotalTokens,
		OpenAICost:   answer.OpenAICost,
	}
	if err := h.conversations.Create(conversation); err != nil {
		h.logger.WithError(err).WithField("conversation_id", answer.ID).Warn("Failed to record conversation")
	}
}
