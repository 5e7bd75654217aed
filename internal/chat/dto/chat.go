package dto

import chatdomain "github.com/rameshbanalab/ServNest-sub001/internal/chat/domain"

type SendMessageRequest struct {
	RecipientID string                 `json:"recipient_id"`
	Type        chatdomain.MessageType `json:"type" binding:"required,oneof=text image"`
	Content     string                 `json:"content" binding:"required"`
}
