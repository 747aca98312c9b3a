package coach

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Title     string    `gorm:"size:200" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message carries a denormalized UserID so account deletion can sweep all of
// a user's messages in one pass without joining through conversations.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;index" json:"conversation_id"`
	UserID         uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Role           string    `gorm:"size:20" json:"role"`
	Content        string    `gorm:"type:text" json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// --- DTOs ---

type SendMessageRequest struct {
	ConversationID *uuid.UUID `json:"conversation_id"`
	Content        string     `json:"content"`
}

type SendMessageResponse struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	UserMessage    Message   `json:"user_message"`
	Reply          Message   `json:"reply"`
}

type ConversationListResponse struct {
	Conversations []Conversation `json:"conversations"`
}

type MessageListResponse struct {
	Messages []Message `json:"messages"`
}

type DailyTip struct {
	Tip string `json:"tip"`
}
