package main

import (
	"context"
	"log"

	api "github.com/rameshbanalab/ServNest-sub001/cmd/api"
	authdomain "github.com/rameshbanalab/ServNest-sub001/internal/auth/domain"
	authRepo "github.com/rameshbanalab/ServNest-sub001/internal/auth/repository"
	authUsecase "github.com/rameshbanalab/ServNest-sub001/internal/auth/usecase"
	chatdomain "github.com/rameshbanalab/ServNest-sub001/internal/chat/domain"
	chatRepo "github.com/rameshbanalab/ServNest-sub001/internal/chat/repository"
	chatUsecase "github.com/rameshbanalab/ServNest-sub001/internal/chat/usecase"
	"github.com/rameshbanalab/ServNest-sub001/internal/notification"
	notifUsecase "github.com/rameshbanalab/ServNest-sub001/internal/notification/usecase"
	"github.com/rameshbanalab/ServNest-sub001/pkg/config"
	"github.com/rameshbanalab/ServNest-sub001/pkg/database"
	"github.com/rameshbanalab/ServNest-sub001/pkg/fcm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &chatdomain.ChatMessage{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	messageRepo := chatRepo.NewMessageRepository(db)

	// Initialize FCM client. Push delivery is disabled without credentials.
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		}
	} else {
		log.Printf("[WARN] No Firebase credentials configured, FCM disabled")
	}

	var sender notifUsecase.Sender
	if fcmClient != nil {
		sender = fcmClient
	}

	// Initialize the chat notifier (Pub/Sub) when the project is configured
	var chatPublisher chatUsecase.EventPublisher
	if cfg.GoogleProjectID != "" && sender != nil {
		notifService, err := notification.NewService(cfg.GoogleProjectID, cfg.ChatEventsTopic, userRepo, messageRepo, sender, cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[ERROR] Failed to initialize chat notifier: %v", err)
		} else {
			chatPublisher = notifService
			go notifService.Start(context.Background())
		}
	} else {
		log.Printf("[WARN] GoogleProjectID or FCM not configured, chat notifier disabled")
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, cfg)
	chatUsecaseInstance := chatUsecase.NewChatUsecase(messageRepo, chatPublisher)
	dispatcher := notifUsecase.NewDispatcher(userRepo, sender, cfg.MulticastBatchSize)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, chatUsecaseInstance, dispatcher, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
