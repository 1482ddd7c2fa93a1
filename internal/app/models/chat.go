package models

import "time"

// MessageRole is the author of a chat message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Chat is one question-answering conversation owned by a user.
type Chat struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ChatMessage is a single turn in a Chat.
type ChatMessage struct {
	ID          string      `json:"id" db:"id"`
	ChatID      string      `json:"chatId" db:"chat_id"`
	Role        MessageRole `json:"role" db:"role"`
	Content     string      `json:"content" db:"content"`
	ResourceID  *string     `json:"resourceId,omitempty" db:"resource_id"`
	ImageURL    *string     `json:"imageUrl,omitempty" db:"image_url"`
	Suggestions []string    `json:"suggestions,omitempty" db:"suggestions"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}
