package usecase

import (
	"context"
	"log"

	chatdomain "github.com/rameshbanalab/ServNest-sub001/internal/chat/domain"
	chatdto "github.com/rameshbanalab/ServNest-sub001/internal/chat/dto"
	"github.com/rameshbanalab/ServNest-sub001/internal/chat/repository"
)

// EventPublisher announces committed chat messages. The notification
// service implements it over Pub/Sub.
type EventPublisher interface {
	PublishMessageCreated(ctx context.Context, ev chatdomain.MessageCreatedEvent) error
}

// ChatUsecase defines the interface for chat operations
type ChatUsecase interface {
	SendMessage(ctx context.Context, chatID, senderID, senderName string, req *chatdto.SendMessageRequest) (*chatdomain.ChatMessage, error)
	GetMessages(chatID string, limit int) ([]chatdomain.ChatMessage, error)
}

// chatUsecase implements ChatUsecase interface
type chatUsecase struct {
	messages  repository.MessageRepository
	publisher EventPublisher
}

// NewChatUsecase creates a new instance of chatUsecase. publisher may be
// nil when the event transport is not configured.
func NewChatUsecase(messages repository.MessageRepository, publisher EventPublisher) ChatUsecase {
	return &chatUsecase{
		messages:  messages,
		publisher: publisher,
	}
}

func (u *chatUsecase) SendMessage(ctx context.Context, chatID, senderID, senderName string, req *chatdto.SendMessageRequest) (*chatdomain.ChatMessage, error) {
	msg := &chatdomain.ChatMessage{
		ChatID:      chatID,
		Sender:      senderID,
		SenderName:  senderName,
		RecipientID: req.RecipientID,
		Type:        req.Type,
		Content:     req.Content,
	}

	if err := u.messages.Create(msg); err != nil {
		return nil, err
	}

	// The write has committed; a notification failure must never undo it.
	// Publish errors are logged and swallowed.
	if u.publisher != nil {
		ev := chatdomain.MessageCreatedEvent{ChatID: msg.ChatID, MessageID: msg.ID}
		if err := u.publisher.PublishMessageCreated(ctx, ev); err != nil {
			log.Printf("[Chat] Failed to publish message-created event for %s/%s: %v", msg.ChatID, msg.ID, err)
		}
	}

	return msg, nil
}

func (u *chatUsecase) GetMessages(chatID string, limit int) ([]chatdomain.ChatMessage, error) {
	return u.messages.ListByChat(chatID, limit)
}
