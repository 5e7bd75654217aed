package usecase

import (
	"context"

	"github.com/rameshbanalab/ServNest-sub001/internal/notification/domain"
	"github.com/rameshbanalab/ServNest-sub001/pkg/fcm"
)

// Dispatcher resolves a target audience and drives the batch → send → clean
// pipeline, aggregating a final delivery result.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *domain.NotificationRequest, callerID string) (*domain.DispatchResult, error)
}

// Sender is the push-provider boundary. pkg/fcm implements it; tests use
// fakes.
type Sender interface {
	SendMulticast(ctx context.Context, tokens []string, payload fcm.Payload) (*fcm.MulticastResult, error)
	SendToTopic(ctx context.Context, topic string, payload fcm.Payload) (string, error)
	SendToToken(ctx context.Context, token string, payload fcm.Payload) (string, error)
}
