package services

import (
	"context"
	"unicode/utf8"

	"github.com/yigit/studyportal/internal/app/flows"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/pkg/helpers"
	"github.com/yigit/studyportal/internal/pkg/logger"
	"github.com/yigit/studyportal/internal/pkg/validation"
)

const chatTitleLength = 60

// ChatStore is the persistence of chats and their messages
type ChatStore interface {
	CreateChat(ctx context.Context, chat *models.Chat) error
	GetChat(ctx context.Context, id, userID string) (*models.Chat, error)
	ListChats(ctx context.Context, userID string) ([]models.Chat, error)
	DeleteChat(ctx context.Context, id, userID string) error
	AppendMessages(ctx context.Context, chatID string, messages ...*models.ChatMessage) error
	ListMessages(ctx context.Context, chatID string) ([]models.ChatMessage, error)
}

// QuestionAnswerer produces chat answers
type QuestionAnswerer interface {
	AnswerQuestion(ctx context.Context, in flows.QuestionInput, viewer models.ViewerRole) (*flows.Answer, error)
}

// ChatService defines the question-answering chat operations
type ChatService interface {
	// Ask answers a question. For a signed-in user the exchange is stored in the
	// given chat, or in a new one when req.ChatID is empty. Guests get the answer only.
	Ask(ctx context.Context, userID string, role models.ViewerRole, req *dto.AskRequest) (*dto.AskResponse, error)
	List(ctx context.Context, userID string) ([]models.Chat, error)
	Messages(ctx context.Context, userID, chatID string) (*dto.ChatMessagesResponse, error)
	Delete(ctx context.Context, userID, chatID string) error
}

type chatServiceImpl struct {
	store    ChatStore
	answerer QuestionAnswerer
}

// NewChatService creates a new chat service instance
func NewChatService(store ChatStore, answerer QuestionAnswerer) ChatService {
	return &chatServiceImpl{store: store, answerer: answerer}
}

func (s *chatServiceImpl) Ask(ctx context.Context, userID string, role models.ViewerRole, req *dto.AskRequest) (*dto.AskResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	var chat *models.Chat
	if userID != "" && req.ChatID != "" {
		c, err := s.store.GetChat(ctx, req.ChatID, userID)
		if err != nil {
			return nil, storeErr("failed to load chat", err)
		}
		chat = c
	}

	answer, err := s.answerer.AnswerQuestion(ctx, flows.QuestionInput{
		Question:     req.Question,
		ResourceID:   req.ResourceID,
		PhotoDataURI: req.PhotoDataURI,
	}, role)
	if err != nil {
		return nil, err
	}

	html, err := helpers.MarkdownToHTML(answer.Answer)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to render answer markdown")
	}
	resp := &dto.AskResponse{
		Answer:      answer.Answer,
		AnswerHTML:  html,
		ImageURL:    answer.ImageURL,
		Suggestions: answer.Suggestions,
	}

	if userID == "" {
		return resp, nil
	}
	// The answer is already paid for; a storage failure is logged and the reply
	// still goes out, just without a chat id.
	if chat, err = s.persist(ctx, userID, chat, req, answer); err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Failed to store chat exchange")
		return resp, nil
	}
	resp.ChatID = chat.ID
	return resp, nil
}

func (s *chatServiceImpl) persist(ctx context.Context, userID string, chat *models.Chat, req *dto.AskRequest, answer *flows.Answer) (*models.Chat, error) {
	if chat == nil {
		chat = &models.Chat{UserID: userID, Title: chatTitle(req.Question)}
		if err := s.store.CreateChat(ctx, chat); err != nil {
			return nil, err
		}
	}

	question := &models.ChatMessage{
		Role:       models.MessageRoleUser,
		Content:    req.Question,
		ResourceID: helpers.NilIfEmpty(req.ResourceID),
	}
	reply := &models.ChatMessage{
		Role:        models.MessageRoleAssistant,
		Content:     answer.Answer,
		ImageURL:    helpers.NilIfEmpty(answer.ImageURL),
		Suggestions: answer.Suggestions,
	}
	if err := s.store.AppendMessages(ctx, chat.ID, question, reply); err != nil {
		return nil, err
	}
	return chat, nil
}

// chatTitle is the question cut to chatTitleLength runes.
func chatTitle(question string) string {
	if utf8.RuneCountInString(question) <= chatTitleLength {
		return question
	}
	runes := []rune(question)
	return string(runes[:chatTitleLength-3]) + "..."
}

func (s *chatServiceImpl) List(ctx context.Context, userID string) ([]models.Chat, error) {
	chats, err := s.store.ListChats(ctx, userID)
	if err != nil {
		return nil, storeErr("failed to list chats", err)
	}
	return chats, nil
}

func (s *chatServiceImpl) Messages(ctx context.Context, userID, chatID string) (*dto.ChatMessagesResponse, error) {
	chat, err := s.store.GetChat(ctx, chatID, userID)
	if err != nil {
		return nil, storeErr("failed to load chat", err)
	}
	messages, err := s.store.ListMessages(ctx, chat.ID)
	if err != nil {
		return nil, storeErr("failed to load messages", err)
	}
	return &dto.ChatMessagesResponse{Chat: chat, Messages: messages}, nil
}

func (s *chatServiceImpl) Delete(ctx context.Context, userID, chatID string) error {
	if err := s.store.DeleteChat(ctx, chatID, userID); err != nil {
		return storeErr("failed to delete chat", err)
	}
	return nil
}
