package dto

import "github.com/yigit/studyportal/internal/app/models"

// AskRequest is a chat question. ChatID continues an existing conversation of a
// signed-in user; without it a new one is started for them.
type AskRequest struct {
	ChatID       string `json:"chatId,omitempty" validate:"omitempty,uuid"`
	Question     string `json:"question" validate:"required,notblank,max=2000"`
	ResourceID   string `json:"resourceId,omitempty" validate:"omitempty,max=200"`
	PhotoDataURI string `json:"photoDataUri,omitempty" validate:"omitempty,datauri"`
}

// AskResponse is the assistant reply.
type AskResponse struct {
	ChatID      string   `json:"chatId,omitempty"`
	Answer      string   `json:"answer"`
	AnswerHTML  string   `json:"answerHtml"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ChatMessagesResponse is a chat with its messages.
type ChatMessagesResponse struct {
	Chat     *models.Chat         `json:"chat"`
	Messages []models.ChatMessage `json:"messages"`
}
