package domain

import "time"

// MessageType discriminates chat message content.
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
)

// ChatMessage is one message inside a conversation. Its creation triggers
// the chat notifier; this core never mutates an existing message.
type ChatMessage struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	ChatID      string      `json:"chat_id" gorm:"index;not null"`
	Sender      string      `json:"sender" gorm:"not null"`
	SenderName  string      `json:"sender_name"`
	RecipientID string      `json:"recipient_id"`
	Type        MessageType `json:"type"`
	Content     string      `json:"content"`
	CreatedAt   time.Time   `json:"created_at"`
}

// MessageCreatedEvent is published after a message row is committed. The
// notifier consumes it and sends a single direct push.
type MessageCreatedEvent struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`
}
