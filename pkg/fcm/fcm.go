package fcm

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// MulticastLimit is the provider's hard cap on tokens per multicast call.
// Callers must pre-batch; SendMulticast rejects larger inputs.
const MulticastLimit = 500

// Client wraps Firebase Cloud Messaging functionality
type Client struct {
	messagingClient *messaging.Client
}

// NewClient creates a new FCM client using the provided credentials file
func NewClient(credentialsFile string) (*Client, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[FCM] Client initialized successfully")
	return &Client{
		messagingClient: messagingClient,
	}, nil
}

// FailureKind classifies a per-token send failure. The classification
// happens here, at the provider boundary, so downstream code matches on
// the kind instead of probing provider error objects.
type FailureKind int

const (
	// FailureNone marks a successful delivery attempt.
	FailureNone FailureKind = iota
	// FailureUnregistered means the token is no longer registered with the
	// provider. Permanently invalid; the owning user's token must be cleared.
	FailureUnregistered
	// FailureInvalidToken means the token was rejected as malformed or
	// otherwise invalid. Permanently invalid as well.
	FailureInvalidToken
	// FailureTransient covers everything else (quota, unavailable, internal).
	// The token stays eligible for the next dispatch; no retry here.
	FailureTransient
)

// SendResult is the outcome for a single token within a multicast call.
type SendResult struct {
	Success   bool
	MessageID string
	Kind      FailureKind
	Err       error
}

// MulticastResult aggregates a multicast call. Results is positionally
// aligned with the input token slice: Results[i] corresponds to tokens[i].
type MulticastResult struct {
	SuccessCount int
	FailureCount int
	Results      []SendResult
}

// Payload contains the data to send in a push notification
type Payload struct {
	Title    string
	Body     string
	ImageURL string            // Optional notification image
	Data     map[string]string // Custom data payload; values must be strings
}

const (
	androidChannelID  = "servnest_notifications"
	androidIcon       = "ic_notification"
	androidColor      = "#1E88E5"
	notificationSound = "default"
)

func (p Payload) notification() *messaging.Notification {
	return &messaging.Notification{
		Title:    p.Title,
		Body:     p.Body,
		ImageURL: p.ImageURL,
	}
}

func (p Payload) androidConfig() *messaging.AndroidConfig {
	return &messaging.AndroidConfig{
		Priority: "high",
		Notification: &messaging.AndroidNotification{
			Icon:      androidIcon,
			Color:     androidColor,
			Sound:     notificationSound,
			ChannelID: androidChannelID,
			Priority:  messaging.PriorityHigh,
		},
	}
}

func (p Payload) apnsConfig() *messaging.APNSConfig {
	badge := 1
	return &messaging.APNSConfig{
		Payload: &messaging.APNSPayload{
			Aps: &messaging.Aps{
				Alert: &messaging.ApsAlert{
					Title: p.Title,
					Body:  p.Body,
				},
				Sound: notificationSound,
				Badge: &badge,
			},
		},
	}
}

// SendToToken sends a push notification to a single device token.
func (c *Client) SendToToken(ctx context.Context, token string, payload Payload) (string, error) {
	message := &messaging.Message{
		Token:        token,
		Notification: payload.notification(),
		Data:         payload.Data,
		Android:      payload.androidConfig(),
		APNS:         payload.apnsConfig(),
	}

	response, err := c.messagingClient.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("failed to send FCM message: %w", err)
	}

	log.Printf("[FCM] Message sent successfully: %s", response)
	return response, nil
}

// SendToTopic sends a push notification to every device subscribed to a topic.
func (c *Client) SendToTopic(ctx context.Context, topic string, payload Payload) (string, error) {
	message := &messaging.Message{
		Topic:        topic,
		Notification: payload.notification(),
		Data:         payload.Data,
		Android:      payload.androidConfig(),
		APNS:         payload.apnsConfig(),
	}

	response, err := c.messagingClient.Send(ctx, message)
	if err != nil {
		return "", fmt.Errorf("failed to send FCM topic message: %w", err)
	}

	log.Printf("[FCM] Topic message sent to %q: %s", topic, response)
	return response, nil
}

// SendMulticast sends a push notification to up to MulticastLimit device
// tokens in one provider call. A transport-level failure is returned as an
// error; per-token failures are classified in the result.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, payload Payload) (*MulticastResult, error) {
	if len(tokens) == 0 {
		return &MulticastResult{}, nil
	}
	if len(tokens) > MulticastLimit {
		return nil, fmt.Errorf("multicast batch of %d tokens exceeds provider limit of %d", len(tokens), MulticastLimit)
	}

	message := &messaging.MulticastMessage{
		Tokens:       tokens,
		Notification: payload.notification(),
		Data:         payload.Data,
		Android:      payload.androidConfig(),
		APNS:         payload.apnsConfig(),
	}

	response, err := c.messagingClient.SendEachForMulticast(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("failed to send FCM multicast message: %w", err)
	}

	log.Printf("[FCM] Multicast sent: %d success, %d failures", response.SuccessCount, response.FailureCount)

	result := &MulticastResult{
		SuccessCount: response.SuccessCount,
		FailureCount: response.FailureCount,
		Results:      make([]SendResult, len(response.Responses)),
	}
	for i, resp := range response.Responses {
		if resp.Success {
			result.Results[i] = SendResult{Success: true, MessageID: resp.MessageID}
			continue
		}
		result.Results[i] = SendResult{
			Kind: classify(resp.Error),
			Err:  resp.Error,
		}
	}
	return result, nil
}

// SubscribeToTopic subscribes device tokens to a topic.
func (c *Client) SubscribeToTopic(ctx context.Context, tokens []string, topic string) error {
	if _, err := c.messagingClient.SubscribeToTopic(ctx, tokens, topic); err != nil {
		return fmt.Errorf("failed to subscribe tokens to topic %q: %w", topic, err)
	}
	return nil
}

// UnsubscribeFromTopic removes device tokens from a topic.
func (c *Client) UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) error {
	if _, err := c.messagingClient.UnsubscribeFromTopic(ctx, tokens, topic); err != nil {
		return fmt.Errorf("failed to unsubscribe tokens from topic %q: %w", topic, err)
	}
	return nil
}

func classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case messaging.IsUnregistered(err):
		return FailureUnregistered
	case messaging.IsInvalidArgument(err):
		return FailureInvalidToken
	default:
		return FailureTransient
	}
}
