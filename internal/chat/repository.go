package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ayurhealth-backend/internal/database"
)

// Repository is the persistence boundary for a single user's chats.
type Repository interface {
	ListChats(ctx context.Context) ([]Chat, error)
	CreateChat(ctx context.Context, chat Chat) error
	AppendMessage(ctx context.Context, chatId uuid.UUID, msg Message) error
}

type gormRepository struct {
	db     *gorm.DB
	userId string
}

func NewRepository(db *gorm.DB, userId string) Repository {
	return &gormRepository{db: db, userId: userId}
}

func (r *gormRepository) ListChats(ctx context.Context) ([]Chat, error) {
	rows, err := database.GetChats(ctx, r.db, r.userId)
	if err != nil {
		return nil, fmt.Errorf("error listing chats for user %s: %w", r.userId, err)
	}

	chats := make([]Chat, 0, len(rows))
	for _, row := range rows {
		chat := Chat{
			ID:        row.Id,
			Title:     row.Title,
			CreatedAt: row.CreationTime,
			Messages:  make([]Message, 0, len(row.Messages)),
		}
		for _, msg := range row.Messages {
			chat.Messages = append(chat.Messages, Message{
				ID:        msg.Id,
				Role:      msg.Role,
				Content:   msg.Content,
				CreatedAt: msg.CreationTime,
			})
		}
		chats = append(chats, chat)
	}
	return chats, nil
}

func (r *gormRepository) CreateChat(ctx context.Context, chat Chat) error {
	return database.CreateChat(ctx, r.db, &database.Chat{
		Id:           chat.ID,
		UserId:       r.userId,
		Title:        chat.Title,
		CreationTime: chat.CreatedAt,
	})
}

func (r *gormRepository) AppendMessage(ctx context.Context, chatId uuid.UUID, msg Message) error {
	return database.AppendMessage(ctx, r.db, r.userId, &database.ChatMessage{
		Id:           msg.ID,
		ChatId:       chatId,
		Role:         msg.Role,
		Content:      msg.Content,
		CreationTime: msg.CreatedAt,
	})
}
