package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/db"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/logger"
)

var chatColumns = []string{"id", "user_id", "title", "created_at", "updated_at"}

var messageColumns = []string{"id", "chat_id", "role", "content", "resource_id", "image_url", "suggestions", "created_at"}

// ChatRepository handles question-answering chats and their messages
type ChatRepository struct {
	pg *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(pg *db.PostgresDB) *ChatRepository {
	return &ChatRepository{
		pg: pg,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateChat starts a new chat for a user
func (r *ChatRepository) CreateChat(ctx context.Context, chat *models.Chat) error {
	if chat.ID == "" {
		chat.ID = uuid.NewString()
	}

	query, args, err := r.sb.Insert("chats").
		Columns("id", "user_id", "title").
		Values(chat.ID, chat.UserID, chat.Title).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create chat SQL")
		return fmt.Errorf("failed to build create chat query: %w", err)
	}

	if err := r.pg.Pool.QueryRow(ctx, query, args...).Scan(&chat.CreatedAt, &chat.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("userID", chat.UserID).Msg("Error executing create chat query")
		return fmt.Errorf("error creating chat: %w", err)
	}
	return nil
}

// GetChat returns a chat if it belongs to the user
func (r *ChatRepository) GetChat(ctx context.Context, id, userID string) (*models.Chat, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrChatNotFound
	}

	query, args, err := r.sb.Select(chatColumns...).
		From("chats").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get chat SQL")
		return nil, fmt.Errorf("failed to build get chat query: %w", err)
	}

	chat := &models.Chat{}
	err = r.pg.Pool.QueryRow(ctx, query, args...).Scan(&chat.ID, &chat.UserID, &chat.Title, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChatNotFound
		}
		logger.Error().Err(err).Str("chatID", id).Msg("Error scanning chat row")
		return nil, fmt.Errorf("error getting chat: %w", err)
	}
	return chat, nil
}

// ListChats returns a user's chats, most recently active first
func (r *ChatRepository) ListChats(ctx context.Context, userID string) ([]models.Chat, error) {
	query, args, err := r.sb.Select(chatColumns...).
		From("chats").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list chats SQL")
		return nil, fmt.Errorf("failed to build list chats query: %w", err)
	}

	rows, err := r.pg.Pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error executing list chats query")
		return nil, fmt.Errorf("error listing chats: %w", err)
	}

	chats, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Chat])
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning chat rows")
		return nil, fmt.Errorf("error scanning chat rows: %w", err)
	}
	return chats, nil
}

// DeleteChat removes a user's chat and its messages
func (r *ChatRepository) DeleteChat(ctx context.Context, id, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrChatNotFound
	}

	query, args, err := r.sb.Delete("chats").Where(squirrel.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete chat SQL")
		return fmt.Errorf("failed to build delete chat query: %w", err)
	}

	cmdTag, err := r.pg.Pool.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("chatID", id).Msg("Error executing delete chat query")
		return fmt.Errorf("error deleting chat: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrChatNotFound
	}
	return nil
}

// AppendMessages stores one exchange and bumps the chat's activity time in a single transaction.
func (r *ChatRepository) AppendMessages(ctx context.Context, chatID string, messages ...*models.ChatMessage) error {
	return r.pg.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, m := range messages {
			if m.ID == "" {
				m.ID = uuid.NewString()
			}
			m.ChatID = chatID
			suggestions := m.Suggestions
			if suggestions == nil {
				suggestions = []string{}
			}

			query, args, err := r.sb.Insert("chat_messages").
				Columns("id", "chat_id", "role", "content", "resource_id", "image_url", "suggestions").
				Values(m.ID, m.ChatID, m.Role, m.Content, m.ResourceID, m.ImageURL, suggestions).
				Suffix("RETURNING created_at").
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build insert message query: %w", err)
			}
			if err := tx.QueryRow(ctx, query, args...).Scan(&m.CreatedAt); err != nil {
				logger.Error().Err(err).Str("chatID", chatID).Msg("Error inserting chat message")
				return fmt.Errorf("error inserting chat message: %w", err)
			}
		}

		if _, err := tx.Exec(ctx, `UPDATE chats SET updated_at = NOW() WHERE id = $1`, chatID); err != nil {
			return fmt.Errorf("error touching chat: %w", err)
		}
		return nil
	})
}

// ListMessages returns a chat's messages in the order they were written
func (r *ChatRepository) ListMessages(ctx context.Context, chatID string) ([]models.ChatMessage, error) {
	query, args, err := r.sb.Select(messageColumns...).
		From("chat_messages").
		Where(squirrel.Eq{"chat_id": chatID}).
		OrderBy("created_at ASC", "role DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list messages SQL")
		return nil, fmt.Errorf("failed to build list messages query: %w", err)
	}

	rows, err := r.pg.Pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("chatID", chatID).Msg("Error executing list messages query")
		return nil, fmt.Errorf("error listing messages: %w", err)
	}

	messages, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.ChatMessage])
	if err != nil {
		logger.Error().Err(err).Msg("Error scanning message rows")
		return nil, fmt.Errorf("error scanning message rows: %w", err)
	}
	return messages, nil
}
