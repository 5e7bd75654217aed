package repository

import (
	"errors"
	"time"

	chatdomain "github.com/rameshbanalab/ServNest-sub001/internal/chat/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for chat message persistence
type MessageRepository interface {
	Create(msg *chatdomain.ChatMessage) error
	FindByID(chatID, messageID string) (*chatdomain.ChatMessage, error)
	ListByChat(chatID string, limit int) ([]chatdomain.ChatMessage, error)
}

// messageRepository implements MessageRepository interface
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new instance of messageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func (r *messageRepository) Create(msg *chatdomain.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now()
	return r.db.Create(msg).Error
}

func (r *messageRepository) FindByID(chatID, messageID string) (*chatdomain.ChatMessage, error) {
	var msg chatdomain.ChatMessage
	err := r.db.Where("chat_id = ? AND id = ?", chatID, messageID).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) ListByChat(chatID string, limit int) ([]chatdomain.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	var msgs []chatdomain.ChatMessage
	err := r.db.Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
