package delivery

import (
	"net/http"
	"time"

	authdomain "github.com/rameshbanalab/ServNest-sub001/internal/auth/domain"
	"github.com/rameshbanalab/ServNest-sub001/internal/notification/domain"
	"github.com/rameshbanalab/ServNest-sub001/internal/notification/usecase"
	"github.com/rameshbanalab/ServNest-sub001/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes the admin dispatch RPC
type NotificationHandler struct {
	dispatcher usecase.Dispatcher
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(dispatcher usecase.Dispatcher) *NotificationHandler {
	return &NotificationHandler{
		dispatcher: dispatcher,
	}
}

// Dispatch fans a notification out to the requested audience.
// POST /api/notifications/dispatch
func (h *NotificationHandler) Dispatch(c *gin.Context) {
	var req domain.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"error":     string(apperr.CodeInvalidArgument),
			"message":   err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	var callerID string
	if user, ok := c.Get("user"); ok {
		if u, ok := user.(*authdomain.User); ok {
			callerID = u.ID
		}
	}

	result, err := h.dispatcher.Dispatch(c.Request.Context(), &req, callerID)
	if err != nil {
		code := apperr.CodeOf(err)
		c.JSON(apperr.HTTPStatus(code), gin.H{
			"success":    false,
			"error":      string(code),
			"message":    apperr.MessageOf(err),
			"targetType": req.TargetType,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	resp := gin.H{
		"success":    true,
		"message":    "notification dispatched",
		"targetType": result.TargetType,
		"timestamp":  result.Timestamp.Format(time.RFC3339),
	}
	if result.SentTo != "" {
		resp["sentTo"] = result.SentTo
		resp["messageId"] = result.MessageID
	} else {
		resp["sentCount"] = result.SentCount
		resp["failedCount"] = result.FailedCount
		resp["totalTokens"] = result.TotalTokens
	}
	c.JSON(http.StatusOK, resp)
}
