package repository

import (
	"github.com/ragops/assistant-gateway/internal/models"
	"gorm.io/gorm"
)

// ConversationRepositoryImpl implements ConversationRepository
type ConversationRepositoryImpl struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) models.ConversationRepository {
	return &ConversationRepositoryImpl{db: db}
}

func (r *ConversationRepositoryImpl) Create(conversation *models.Conversation) error {
	return r.db.Create(conversation).Error
}

func (r *ConversationRepositoryImpl) GetByID(id string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.First(&conversation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepositoryImpl) GetRecent(limit int) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Find(&conversations).Error
	return conversations, err
}

// FeedbackRepositoryImpl implements FeedbackRepository
type FeedbackRepositoryImpl struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) models.FeedbackRepository {
	return &FeedbackRepositoryImpl{db: db}
}

func (r *FeedbackRepositoryImpl) Create(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *FeedbackRepositoryImpl) GetByConversationID(conversationID string) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := r.db.Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Find(&feedback).Error
	return feedback, err
}

func (r *FeedbackRepositoryImpl) CountByScore(score int) (int64, error) {
	var count int64
	err := r.db.Model(&models.Feedback{}).
		Where("score = ?", score).
		Count(&count).Error
	return count, err
}

// Manager bundles all repositories
type Manager struct {
	Conversations models.ConversationRepository
	Feedback      models.FeedbackRepository
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		Conversations: NewConversationRepository(db),
		Feedback:      NewFeedbackRepository(db),
	}
}
