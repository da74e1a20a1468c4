package models

// GORM models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Conversation is one question/answer exchange, keyed by the conversation
// ID the RAG engine assigned. Feedback rows reference it.
type Conversation struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Question     string    `json:"question" gorm:"not null"`
	Answer       string    `json:"answer"`
	Relevance    string    `json:"relevance"`
	ResponseTime float64   `json:"response_time"`
	TotalTokens  int       `json:"total_tokens"`
	OpenAICost   float64   `json:"openai_cost"`
	CreatedAt    time.Time `json:"created_at"`

	// Associations
	Feedback []Feedback `json:"feedback" gorm:"foreignKey:ConversationID"`
}

// Feedback is a thumbs up/down on one conversation. Score is always -1 or 1.
type Feedback struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"not null;index"`
	Score          int       `json:"score" gorm:"not null;check:score IN (-1,1)"`
	CreatedAt      time.Time `json:"created_at"`

	// Associations
	Conversation Conversation `json:"conversation" gorm:"foreignKey:ConversationID"`
}

// Database interfaces for repository pattern
type ConversationRepository interface {
	Create(conversation *Conversation) error
	GetByID(id string) (*Conversation, error)
	GetRecent(limit int) ([]Conversation, error)
}

type FeedbackRepository interface {
	Create(feedback *Feedback) error
	GetByConversationID(conversationID string) ([]Feedback, error)
	CountByScore(score int) (int64, error)
}

// TableName methods for custom table names
func (Conversation) TableName() string { return "conversations" }
func (Feedback) TableName() string     { return "feedback" }

// Model validation methods
func (c *Conversation) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("conversation ID is required")
	}
	if c.Question == "" {
		return fmt.Errorf("question is required")
	}
	return nil
}

func (f *Feedback) Validate() error {
	if f.ConversationID == "" {
		return fmt.Errorf("conversation ID is required")
	}
	if f.Score != -1 && f.Score != 1 {
		return fmt.Errorf("invalid feedback score: %d", f.Score)
	}
	return nil
}

// GORM hooks
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	return c.Validate()
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	return f.Validate()
}
