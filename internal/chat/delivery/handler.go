package delivery

import (
	"net/http"
	"strconv"

	authdomain "github.com/rameshbanalab/ServNest-sub001/internal/auth/domain"
	chatdto "github.com/rameshbanalab/ServNest-sub001/internal/chat/dto"
	"github.com/rameshbanalab/ServNest-sub001/internal/chat/usecase"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles chat HTTP requests
type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chatUsecase usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
	}
}

// SendMessage appends a message to a conversation
// POST /api/chats/:chatId/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req chatdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := c.MustGet("user").(*authdomain.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	msg, err := h.chatUsecase.SendMessage(c.Request.Context(), c.Param("chatId"), user.ID, user.Name, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// GetMessages lists a conversation's recent messages
// GET /api/chats/:chatId/messages?limit=50
func (h *ChatHandler) GetMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	msgs, err := h.chatUsecase.GetMessages(c.Param("chatId"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs, "total": len(msgs)})
}
