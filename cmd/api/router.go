package api

import (
	"net/http"

	authDelivery "github.com/rameshbanalab/ServNest-sub001/internal/auth/delivery"
	authUsecase "github.com/rameshbanalab/ServNest-sub001/internal/auth/usecase"
	chatDelivery "github.com/rameshbanalab/ServNest-sub001/internal/chat/delivery"
	chatUsecase "github.com/rameshbanalab/ServNest-sub001/internal/chat/usecase"
	notifDelivery "github.com/rameshbanalab/ServNest-sub001/internal/notification/delivery"
	notifUsecase "github.com/rameshbanalab/ServNest-sub001/internal/notification/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, chatUc chatUsecase.ChatUsecase, dispatcher notifUsecase.Dispatcher) {
	authHandler := authDelivery.NewAuthHandler(authUc)
	chatHandler := chatDelivery.NewChatHandler(chatUc)
	notifHandler := notifDelivery.NewNotificationHandler(dispatcher)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.GET("/me", authDelivery.AuthMiddleware(authUc), authHandler.Me)
		}

		// FCM token routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(authDelivery.AuthMiddleware(authUc))
		{
			fcm.POST("/register", authHandler.RegisterFCMToken)
			fcm.DELETE("/:token", authHandler.UnregisterFCMToken)
		}

		// Chat routes (protected)
		chats := api.Group("/chats")
		chats.Use(authDelivery.AuthMiddleware(authUc))
		{
			chats.POST("/:chatId/messages", chatHandler.SendMessage)
			chats.GET("/:chatId/messages", chatHandler.GetMessages)
		}

		// Notification dispatch (protected; admin check lives in the dispatcher)
		notifications := api.Group("/notifications")
		notifications.Use(authDelivery.AuthMiddleware(authUc))
		{
			notifications.POST("/dispatch", notifHandler.Dispatch)
		}
	}
}
