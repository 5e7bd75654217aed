package domain

import "time"

// TargetType selects the audience of a dispatch.
type TargetType string

const (
	TargetAll            TargetType = "all"
	TargetCustomers      TargetType = "customers"
	TargetBusinessOwners TargetType = "business_owners"
	TargetIndividual     TargetType = "individual"
)

// NavigationType is the deep-link type carried in a notification's data
// block. The client router maps it to an in-app screen.
type NavigationType string

const (
	NavHome            NavigationType = "home"
	NavEvents          NavigationType = "events"
	NavEventDetails    NavigationType = "event_details"
	NavBusiness        NavigationType = "business"
	NavBusinessDetails NavigationType = "business_details"
	NavDonations       NavigationType = "donations"
	NavDonationDetails NavigationType = "donation_details"
	NavProfile         NavigationType = "profile"
	NavJobs            NavigationType = "jobs"
	NavHelp            NavigationType = "help"
	NavChat            NavigationType = "chat"
)

// BroadcastTopic is the provider topic every device subscribes to. A
// dispatch with TargetAll sends to this topic instead of enumerating tokens.
const BroadcastTopic = "all_users"

// NotificationRequest is the ephemeral input to a dispatch. It is never
// persisted; it exists for the duration of one call.
type NotificationRequest struct {
	Title          string         `json:"title"`
	Body           string         `json:"body"`
	ImageURL       string         `json:"imageUrl,omitempty"`
	TargetType     TargetType     `json:"targetType"`
	TargetUsers    []string       `json:"targetUsers,omitempty"`
	NavigationType NavigationType `json:"navigationType,omitempty"`
	ItemID         string         `json:"itemId,omitempty"`
}

// DispatchResult aggregates one dispatch call. Counts are final only after
// every batch has been processed.
type DispatchResult struct {
	SentCount   int        `json:"sentCount"`
	FailedCount int        `json:"failedCount"`
	TotalTokens int        `json:"totalTokens"`
	TargetType  TargetType `json:"targetType"`
	SentTo      string     `json:"sentTo,omitempty"`    // topic name for broadcast sends
	MessageID   string     `json:"messageId,omitempty"` // provider message id for topic sends
	Timestamp   time.Time  `json:"timestamp"`
}
