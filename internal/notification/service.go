package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	authrepo "github.com/rameshbanalab/ServNest-sub001/internal/auth/repository"
	chatdomain "github.com/rameshbanalab/ServNest-sub001/internal/chat/domain"
	chatrepo "github.com/rameshbanalab/ServNest-sub001/internal/chat/repository"
	"github.com/rameshbanalab/ServNest-sub001/internal/notification/domain"
	"github.com/rameshbanalab/ServNest-sub001/internal/notification/usecase"
	"github.com/rameshbanalab/ServNest-sub001/pkg/fcm"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

const (
	// Chat previews longer than this are truncated with an ellipsis.
	previewLimit = 50
	// Fixed preview for image messages.
	imagePlaceholder = "📷 Image"
)

// Service is the event-triggered chat notifier. The chat usecase publishes
// a MessageCreated event after each committed message; this service
// consumes the event and sends one direct (non-batched) push to the
// recipient.
type Service struct {
	pubsubClient *pubsub.Client
	users        authrepo.UserRepository
	messages     chatrepo.MessageRepository
	sender       usecase.Sender
	topicName    string
	subName      string
}

// NewService creates the notifier and its Pub/Sub client.
func NewService(projectID, topicName string, users authrepo.UserRepository, messages chatrepo.MessageRepository, sender usecase.Sender, credentialsFile string) (*Service, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	return &Service{
		pubsubClient: client,
		users:        users,
		messages:     messages,
		sender:       sender,
		topicName:    topicName,
		subName:      topicName + "-sub", // Convention: topic-sub
	}, nil
}

// PublishMessageCreated implements the chat usecase's EventPublisher.
func (s *Service) PublishMessageCreated(ctx context.Context, ev chatdomain.MessageCreatedEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal message-created event: %w", err)
	}

	topic := s.pubsubClient.Topic(s.topicName)
	res := topic.Publish(ctx, &pubsub.Message{Data: data})
	if _, err := res.Get(ctx); err != nil {
		return fmt.Errorf("failed to publish message-created event: %w", err)
	}
	return nil
}

// Start ensures the subscription exists and blocks receiving events until
// ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	log.Printf("[PubSub] Starting chat notifier with topic: %s, subscription: %s", s.topicName, s.subName)

	sub := s.pubsubClient.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		log.Printf("[PubSub] Error checking subscription existence: %v", err)
		return
	}

	if !exists {
		topic := s.pubsubClient.Topic(s.topicName)
		topicExists, err := topic.Exists(ctx)
		if err != nil {
			log.Printf("[PubSub] Error checking topic existence: %v", err)
			return
		}
		if !topicExists {
			if topic, err = s.pubsubClient.CreateTopic(ctx, s.topicName); err != nil {
				log.Printf("[PubSub] Failed to create topic: %v", err)
				return
			}
			log.Printf("[PubSub] Created topic: %s", s.topicName)
		}

		sub, err = s.pubsubClient.CreateSubscription(ctx, s.subName, pubsub.SubscriptionConfig{
			Topic:       topic,
			AckDeadline: 10 * time.Second,
		})
		if err != nil {
			log.Printf("[PubSub] Failed to create subscription: %v", err)
			return
		}
		log.Printf("[PubSub] Created subscription: %s", s.subName)
	}

	log.Printf("[PubSub] Listening for messages on subscription: %s", s.subName)
	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		s.handleEvent(ctx, msg.Data)
		msg.Ack()
	})
	if err != nil {
		log.Printf("[PubSub] Error receiving messages: %v", err)
	}
}

func (s *Service) handleEvent(ctx context.Context, data []byte) {
	var ev chatdomain.MessageCreatedEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		log.Printf("[ChatNotifier] Failed to unmarshal event: %v", err)
		return
	}

	msg, err := s.messages.FindByID(ev.ChatID, ev.MessageID)
	if err != nil {
		log.Printf("[ChatNotifier] Error loading message %s/%s: %v", ev.ChatID, ev.MessageID, err)
		return
	}
	if msg == nil {
		log.Printf("[ChatNotifier] Message %s/%s not found", ev.ChatID, ev.MessageID)
		return
	}

	s.Notify(ctx, msg)
}

// Notify sends one direct push for a newly created chat message. It never
// propagates errors: a failed notification must not fail the write that
// triggered it.
func (s *Service) Notify(ctx context.Context, msg *chatdomain.ChatMessage) {
	if msg.RecipientID == "" {
		log.Printf("[ChatNotifier] Message %s has no recipient, skipping", msg.ID)
		return
	}
	if msg.Sender == msg.RecipientID {
		return
	}

	recipient, err := s.users.FindByID(msg.RecipientID)
	if err != nil {
		log.Printf("[ChatNotifier] Error loading recipient %s: %v", msg.RecipientID, err)
		return
	}
	if recipient == nil || !recipient.HasToken() {
		log.Printf("[ChatNotifier] Recipient %s has no registered device, skipping", msg.RecipientID)
		return
	}

	senderName := msg.SenderName
	if senderName == "" {
		if sender, err := s.users.FindByID(msg.Sender); err == nil && sender != nil {
			senderName = sender.Name
		}
	}

	payload := fcm.Payload{
		Title: newMessageTitle(senderName),
		Body:  preview(msg),
		Data: map[string]string{
			"type":           "chat_message",
			"navigationType": string(domain.NavChat),
			"chatId":         msg.ChatID,
			"senderId":       msg.Sender,
			"senderName":     senderName,
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
		},
	}

	if _, err := s.sender.SendToToken(ctx, recipient.FCMToken, payload); err != nil {
		log.Printf("[ChatNotifier] Failed to send chat notification for %s/%s: %v", msg.ChatID, msg.ID, err)
		return
	}
	log.Printf("[ChatNotifier] Notified %s about message %s/%s", msg.RecipientID, msg.ChatID, msg.ID)
}

func newMessageTitle(senderName string) string {
	if senderName == "" {
		return "New message"
	}
	return "New message from " + senderName
}

// preview builds the truncated notification body for a chat message.
func preview(msg *chatdomain.ChatMessage) string {
	if msg.Type == chatdomain.MessageImage {
		return imagePlaceholder
	}
	runes := []rune(msg.Content)
	if len(runes) <= previewLimit {
		return msg.Content
	}
	return string(runes[:previewLimit]) + "..."
}
