package api

import (
	authUsecase "github.com/rameshbanalab/ServNest-sub001/internal/auth/usecase"
	chatUsecase "github.com/rameshbanalab/ServNest-sub001/internal/chat/usecase"
	notifUsecase "github.com/rameshbanalab/ServNest-sub001/internal/notification/usecase"
	"github.com/rameshbanalab/ServNest-sub001/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	chatUsecase chatUsecase.ChatUsecase
	dispatcher  notifUsecase.Dispatcher
	config      *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, chatUc chatUsecase.ChatUsecase, dispatcher notifUsecase.Dispatcher, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase: authUc,
		chatUsecase: chatUc,
		dispatcher:  dispatcher,
		config:      cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.chatUsecase, h.dispatcher)

	return r.Run(addr)
}
