package usecase

import (
	"log"

	"github.com/rameshbanalab/ServNest-sub001/internal/auth/repository"
	"github.com/rameshbanalab/ServNest-sub001/pkg/fcm"
)

// Janitor removes permanently invalid tokens from the token store after a
// send attempt. Transient failures are left untouched; those tokens remain
// eligible for the next dispatch.
type Janitor struct {
	users repository.UserRepository
}

// NewJanitor creates a Janitor backed by the given token store.
func NewJanitor(users repository.UserRepository) *Janitor {
	return &Janitor{users: users}
}

// Clean inspects per-token results (positionally aligned with tokens) and
// clears the owning users' tokens for permanently invalid entries in one
// committed write. Cleaning an already-cleared token is a no-op, so the
// reported count reflects rows actually changed.
func (j *Janitor) Clean(results []fcm.SendResult, tokens []string) int {
	var stale []string
	for i, res := range results {
		if i >= len(tokens) || res.Success {
			continue
		}
		switch res.Kind {
		case fcm.FailureUnregistered, fcm.FailureInvalidToken:
			stale = append(stale, tokens[i])
		}
	}
	if len(stale) == 0 {
		return 0
	}

	cleaned, err := j.users.ClearTokens(stale)
	if err != nil {
		log.Printf("[Janitor] Failed to clear %d invalid tokens: %v", len(stale), err)
		return 0
	}
	if cleaned > 0 {
		log.Printf("[Janitor] Cleared %d invalid tokens", cleaned)
	}
	return int(cleaned)
}
