package deeplink

import (
	"log"
	"sync"

	"github.com/rameshbanalab/ServNest-sub001/internal/notification/domain"
)

// NavigationTarget is a concrete in-app destination: a screen name plus
// optional params.
type NavigationTarget struct {
	Screen string
	Params map[string]string
}

var screens = map[domain.NavigationType]string{
	domain.NavHome:            "Home",
	domain.NavEvents:          "Events",
	domain.NavEventDetails:    "EventDetails",
	domain.NavBusiness:        "Business",
	domain.NavBusinessDetails: "BusinessDetails",
	domain.NavDonations:       "Donations",
	domain.NavDonationDetails: "DonationDetails",
	domain.NavProfile:         "Profile",
	domain.NavJobs:            "Jobs",
	domain.NavHelp:            "Help",
	domain.NavChat:            "Chat",
}

// Resolve maps a notification's navigation metadata to a target. Unknown
// types resolve to the home target so a tap on any malformed or outdated
// payload still lands somewhere valid. An item id is merged under every
// param alias the downstream screens expect, which saves a second
// type-dispatch here.
func Resolve(navigationType domain.NavigationType, itemID string) NavigationTarget {
	screen, ok := screens[navigationType]
	if !ok {
		screen = screens[domain.NavHome]
	}

	target := NavigationTarget{Screen: screen}
	if itemID != "" {
		target.Params = map[string]string{
			"id":         itemID,
			"eventId":    itemID,
			"serviceId":  itemID,
			"donationId": itemID,
		}
	}
	return target
}

// HomeTarget is the safe fallback destination.
func HomeTarget() NavigationTarget {
	return NavigationTarget{Screen: screens[domain.NavHome]}
}

// Navigator executes navigation against the app's navigation container.
// Resolution and execution are separate: Resolve is pure, Go runs side
// effects and degrades safely when the container is not mounted yet.
type Navigator struct {
	mu       sync.Mutex
	navigate func(NavigationTarget) error
}

// NewNavigator creates a Navigator with no container attached.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// SetContainer attaches the mounted navigation container.
func (n *Navigator) SetContainer(navigate func(NavigationTarget) error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.navigate = navigate
}

// Go navigates to the target. If the container is not mounted the call is
// a warned no-op; if navigation fails the navigator falls back to home.
func (n *Navigator) Go(target NavigationTarget) {
	n.mu.Lock()
	navigate := n.navigate
	n.mu.Unlock()

	if navigate == nil {
		log.Printf("[DeepLink] Navigation container not mounted, dropping navigation to %s", target.Screen)
		return
	}

	if err := navigate(target); err != nil {
		log.Printf("[DeepLink] Navigation to %s failed, falling back to home: %v", target.Screen, err)
		if err := navigate(HomeTarget()); err != nil {
			log.Printf("[DeepLink] Fallback navigation to home failed: %v", err)
		}
	}
}
