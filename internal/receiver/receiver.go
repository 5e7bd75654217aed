package receiver

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rameshbanalab/ServNest-sub001/internal/deeplink"
	"github.com/rameshbanalab/ServNest-sub001/internal/notification/domain"
)

// State of the receiver lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateRegistered
	StateListening
)

func (s State) String() string {
	switch s {
	case StateRegistered:
		return "registered"
	case StateListening:
		return "listening"
	default:
		return "uninitialized"
	}
}

const (
	// Delay before routing a tap from background, letting the navigation
	// container mount.
	openedRouteDelay = 500 * time.Millisecond
	// Cold starts need longer before navigation is possible.
	coldStartRouteDelay = 2 * time.Second
)

// Receiver is the process-wide push listener, constructed once at app
// start. It owns its listener handles explicitly so cleanup and
// re-initialization are deterministic.
type Receiver struct {
	provider  MessagingProvider
	registrar TokenRegistrar
	banners   LocalNotifier
	navigator *deeplink.Navigator

	mu     sync.Mutex
	state  State
	userID string
	token  string

	unsubMessage Unsubscribe
	unsubRefresh Unsubscribe
	unsubOpened  Unsubscribe

	// schedule defers a routing action; replaced in tests to run inline.
	schedule func(d time.Duration, fn func())
}

// New creates an uninitialized Receiver.
func New(provider MessagingProvider, registrar TokenRegistrar, banners LocalNotifier, navigator *deeplink.Navigator) *Receiver {
	return &Receiver{
		provider:  provider,
		registrar: registrar,
		banners:   banners,
		navigator: navigator,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// State returns the current lifecycle state.
func (r *Receiver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Token returns the current device token, if one has been obtained.
func (r *Receiver) Token() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token
}

// Initialize requests notification permission, registers the device token
// and installs the message listeners. A denied permission leaves the
// receiver uninitialized and returns nil: that is a normal terminal state.
// Calling Initialize again detaches old listeners before attaching new
// ones, so repeated calls never produce duplicate banners.
func (r *Receiver) Initialize(ctx context.Context, userID string) error {
	granted, err := r.provider.RequestPermission(ctx)
	if err != nil {
		return fmt.Errorf("failed to request notification permission: %w", err)
	}
	if !granted {
		log.Println("[Receiver] Notification permission denied, staying uninitialized")
		return nil
	}

	token, err := r.provider.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain device token: %w", err)
	}

	if err := r.registrar.SaveToken(ctx, userID, token); err != nil {
		return fmt.Errorf("failed to persist device token: %w", err)
	}

	r.mu.Lock()
	r.userID = userID
	r.token = token
	r.state = StateRegistered
	r.mu.Unlock()

	for _, topic := range []string{domain.BroadcastTopic, "user_" + userID} {
		if err := r.provider.SubscribeToTopic(ctx, topic); err != nil {
			log.Printf("[Receiver] Failed to subscribe to topic %q: %v", topic, err)
		}
	}

	r.attachListeners()

	// One-time check: the app may have been cold-started from a tap.
	if initial, err := r.provider.InitialNotification(ctx); err != nil {
		log.Printf("[Receiver] Failed to read initial notification: %v", err)
	} else if initial != nil {
		r.routeAfter(coldStartRouteDelay, *initial)
	}

	return nil
}

func (r *Receiver) attachListeners() {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Detach before attach keeps re-initialization idempotent.
	r.detachLocked()

	r.unsubMessage = r.provider.OnMessage(r.handleForegroundMessage)
	r.unsubRefresh = r.provider.OnTokenRefresh(r.handleTokenRefresh)
	r.unsubOpened = r.provider.OnNotificationOpened(r.handleNotificationOpened)
	r.state = StateListening
}

// handleForegroundMessage always synthesizes a local banner; the OS does
// not display foreground pushes on its own.
func (r *Receiver) handleForegroundMessage(msg RemoteMessage) {
	if err := r.banners.Display(msg.Title, msg.Body, msg.Data); err != nil {
		log.Printf("[Receiver] Failed to display foreground banner: %v", err)
	}
}

// handleTokenRefresh re-persists a reissued token. With no authenticated
// user the token is dropped silently; the next sign-in-triggered
// initialization re-sends it.
func (r *Receiver) handleTokenRefresh(token string) {
	r.mu.Lock()
	userID := r.userID
	r.token = token
	r.mu.Unlock()

	if userID == "" {
		return
	}

	if err := r.registrar.SaveToken(context.Background(), userID, token); err != nil {
		log.Printf("[Receiver] Failed to persist refreshed token: %v", err)
	}
}

func (r *Receiver) handleNotificationOpened(msg RemoteMessage) {
	r.routeAfter(openedRouteDelay, msg)
}

func (r *Receiver) routeAfter(delay time.Duration, msg RemoteMessage) {
	navigationType := domain.NavigationType(msg.Data["navigationType"])
	itemID := msg.Data["itemId"]
	r.schedule(delay, func() {
		r.navigator.Go(deeplink.Resolve(navigationType, itemID))
	})
}

// Cleanup detaches every listener. Safe to call when nothing is
// registered.
func (r *Receiver) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detachLocked()
	r.userID = ""
	r.state = StateUninitialized
}

func (r *Receiver) detachLocked() {
	if r.unsubMessage != nil {
		r.unsubMessage()
		r.unsubMessage = nil
	}
	if r.unsubRefresh != nil {
		r.unsubRefresh()
		r.unsubRefresh = nil
	}
	if r.unsubOpened != nil {
		r.unsubOpened()
		r.unsubOpened = nil
	}
}
