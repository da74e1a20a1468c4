package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/ragops/assistant-gateway/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the recorder's verdict on one submission. A non-success Status
// carries a message the gateway surfaces to the caller verbatim; unexpected
// failures are returned as plain errors instead and never reach the caller.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Recorder persists feedback scores against conversations.
type Recorder interface {
	Submit(ctx context.Context, conversationID string, score int) (Result, error)
}

// StoreRecorder writes feedback to PostgreSQL, refusing scores for
// conversations it has no record of.
type StoreRecorder struct {
	conversations models.ConversationRepository
	feedback      models.FeedbackRepository
	logger        *logrus.Logger
}

func NewStoreRecorder(conversations models.ConversationRepository, feedback models.FeedbackRepository, logger *logrus.Logger) *StoreRecorder {
	return &StoreRecorder{
		conversations: conversations,
		feedback:      feedback,
		logger:        logger,
	}
}

func (r *StoreRecorder) Submit(ctx context.Context, conversationID string, score int) (Result, error) {
	if _, err := r.conversations.GetByID(conversationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Result{
				Status:  StatusError,
				Message: fmt.Sprintf("Conversation %s not found", conversationID),
			}, nil
		}
		return Result{}, fmt.Errorf("failed to look up conversation: %w", err)
	}

	record := &models.Feedback{
		ConversationID: conversationID,
		Score:          score,
	}
	if err := r.feedback.Create(record); err != nil {
		return Result{}, fmt.Errorf("failed to save feedback: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"conversation_id": conversationID,
		"score":           score,
	}).Info("Feedback saved")

	return Result{
		Status:  StatusSuccess,
		Message: "Feedback saved",
	}, nil
}
