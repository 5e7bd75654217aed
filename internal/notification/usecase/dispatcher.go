package usecase

import (
	"context"
	"log"
	"time"

	"github.com/rameshbanalab/ServNest-sub001/internal/auth/repository"
	"github.com/rameshbanalab/ServNest-sub001/internal/notification/domain"
	"github.com/rameshbanalab/ServNest-sub001/pkg/apperr"
	"github.com/rameshbanalab/ServNest-sub001/pkg/fcm"
)

// dispatcher implements Dispatcher
type dispatcher struct {
	users     repository.UserRepository
	sender    Sender
	janitor   *Janitor
	batchSize int
}

// NewDispatcher creates a new dispatcher. batchSize is clamped to the
// provider's multicast limit.
func NewDispatcher(users repository.UserRepository, sender Sender, batchSize int) Dispatcher {
	if batchSize <= 0 || batchSize > fcm.MulticastLimit {
		batchSize = fcm.MulticastLimit
	}
	return &dispatcher{
		users:     users,
		sender:    sender,
		janitor:   NewJanitor(users),
		batchSize: batchSize,
	}
}

func (d *dispatcher) Dispatch(ctx context.Context, req *domain.NotificationRequest, callerID string) (*domain.DispatchResult, error) {
	if callerID == "" {
		return nil, apperr.New(apperr.CodeUnauthenticated, "caller identity required")
	}
	caller, err := d.users.FindByID(callerID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load caller", err)
	}
	if caller == nil {
		return nil, apperr.New(apperr.CodeUnauthenticated, "caller identity could not be established")
	}
	if !caller.IsAdmin {
		return nil, apperr.New(apperr.CodePermissionDenied, "only admins can dispatch notifications")
	}
	if d.sender == nil {
		return nil, apperr.New(apperr.CodeInternal, "push provider not configured")
	}

	if req.Title == "" || req.Body == "" {
		return nil, apperr.New(apperr.CodeInvalidArgument, "title and body are required")
	}
	if req.TargetType == domain.TargetIndividual && len(req.TargetUsers) == 0 {
		return nil, apperr.New(apperr.CodeInvalidArgument, "targetUsers is required for individual targeting")
	}

	payload := buildPayload(req, callerID)

	// Broadcast targeting sends to the provider topic every device
	// subscribes to; no token resolution, no batching.
	if req.TargetType == domain.TargetAll {
		messageID, err := d.sender.SendToTopic(ctx, domain.BroadcastTopic, payload)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, "broadcast send failed", err)
		}
		return &domain.DispatchResult{
			TargetType: req.TargetType,
			SentTo:     domain.BroadcastTopic,
			MessageID:  messageID,
			Timestamp:  time.Now().UTC(),
		}, nil
	}

	tokens, err := d.resolveTokens(req)
	if err != nil {
		return nil, err
	}

	result := domain.DispatchResult{
		TotalTokens: len(tokens),
		TargetType:  req.TargetType,
	}

	// Batches are processed sequentially. A batch whose send fails at the
	// transport level is counted entirely as failures and the loop moves
	// on: the dispatcher prefers maximum delivery over all-or-nothing.
	for _, batch := range chunkTokens(tokens, d.batchSize) {
		result = d.sendBatch(ctx, result, batch, payload)
	}

	result.Timestamp = time.Now().UTC()
	log.Printf("[Dispatch] target=%s tokens=%d sent=%d failed=%d",
		req.TargetType, result.TotalTokens, result.SentCount, result.FailedCount)
	return &result, nil
}

// sendBatch is the reducer step of the batch fold: it folds one batch's
// outcome into the accumulated result and runs the janitor on failures.
func (d *dispatcher) sendBatch(ctx context.Context, acc domain.DispatchResult, batch []string, payload fcm.Payload) domain.DispatchResult {
	res, err := d.sender.SendMulticast(ctx, batch, payload)
	if err != nil {
		log.Printf("[Dispatch] Batch of %d tokens failed in transport: %v", len(batch), err)
		acc.FailedCount += len(batch)
		return acc
	}

	acc.SentCount += res.SuccessCount
	acc.FailedCount += res.FailureCount
	if res.FailureCount > 0 {
		d.janitor.Clean(res.Results, batch)
	}
	return acc
}

// resolveTokens turns a token-based target into the ordered token set to
// send to.
func (d *dispatcher) resolveTokens(req *domain.NotificationRequest) ([]string, error) {
	switch req.TargetType {
	case domain.TargetIndividual:
		var tokens []string
		for _, id := range req.TargetUsers {
			user, err := d.users.FindByID(id)
			if err != nil {
				return nil, apperr.Wrap(apperr.CodeInternal, "failed to resolve target user", err)
			}
			if user == nil || !user.HasToken() {
				continue
			}
			tokens = append(tokens, user.FCMToken)
		}
		if len(tokens) == 0 {
			return nil, apperr.New(apperr.CodeNotFound, "no registered devices for the requested users")
		}
		return tokens, nil

	default:
		var ownerFilter *bool
		switch req.TargetType {
		case domain.TargetBusinessOwners:
			v := true
			ownerFilter = &v
		case domain.TargetCustomers:
			v := false
			ownerFilter = &v
		}

		users, err := d.users.ListTokenHolders(ownerFilter)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, "failed to query token holders", err)
		}
		tokens := make([]string, 0, len(users))
		for _, user := range users {
			if user.HasToken() {
				tokens = append(tokens, user.FCMToken)
			}
		}
		if len(tokens) == 0 {
			return nil, apperr.Newf(apperr.CodeNotFound, "no registered devices for target %q", req.TargetType)
		}
		return tokens, nil
	}
}
