package receiver

import "context"

// RemoteMessage is a push message as delivered to the device.
type RemoteMessage struct {
	Title    string
	Body     string
	ImageURL string
	Data     map[string]string
}

// Unsubscribe detaches a listener. Handles are owned by the Receiver and
// released on cleanup or before re-registration.
type Unsubscribe func()

// MessagingProvider is the device-side push SDK boundary.
type MessagingProvider interface {
	// RequestPermission asks the OS for notification permission. A denied
	// grant is a normal outcome, not an error.
	RequestPermission(ctx context.Context) (bool, error)
	Token(ctx context.Context) (string, error)
	SubscribeToTopic(ctx context.Context, topic string) error
	UnsubscribeFromTopic(ctx context.Context, topic string) error

	// OnMessage fires for messages delivered while the app is foregrounded.
	OnMessage(fn func(RemoteMessage)) Unsubscribe
	// OnTokenRefresh fires when the provider reissues the device token.
	OnTokenRefresh(fn func(token string)) Unsubscribe
	// OnNotificationOpened fires when a background notification is tapped.
	OnNotificationOpened(fn func(RemoteMessage)) Unsubscribe

	// InitialNotification returns the notification that cold-started the
	// app, if any.
	InitialNotification(ctx context.Context) (*RemoteMessage, error)
}

// LocalNotifier displays a locally synthesized notification banner. The OS
// does not auto-display foreground pushes, so the receiver always calls
// this for foreground messages.
type LocalNotifier interface {
	Display(title, body string, data map[string]string) error
}

// TokenRegistrar persists the device token onto the current user's record.
type TokenRegistrar interface {
	SaveToken(ctx context.Context, userID, token string) error
}
