package usecase

import (
	"context"
	"errors"

	authdomain "github.com/rameshbanalab/ServNest-sub001/internal/auth/domain"
	"github.com/rameshbanalab/ServNest-sub001/pkg/fcm"
)

// fakeUserRepo is an in-memory token store preserving insertion order.
type fakeUserRepo struct {
	users []*authdomain.User
}

func (r *fakeUserRepo) add(u *authdomain.User) *authdomain.User {
	r.users = append(r.users, u)
	return u
}

func (r *fakeUserRepo) Create(user *authdomain.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) FindByID(id string) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(user *authdomain.User) error {
	return nil
}

func (r *fakeUserRepo) ListTokenHolders(isBusinessOwner *bool) ([]authdomain.User, error) {
	var out []authdomain.User
	for _, u := range r.users {
		if u.FCMToken == "" {
			continue
		}
		if isBusinessOwner != nil && u.IsBusinessOwner != *isBusinessOwner {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) SaveToken(userID, token string) error {
	for _, u := range r.users {
		if u.FCMToken == token && u.ID != userID {
			u.FCMToken = ""
		}
	}
	for _, u := range r.users {
		if u.ID == userID {
			u.FCMToken = token
			return nil
		}
	}
	return errors.New("user not found")
}

func (r *fakeUserRepo) ClearToken(userID, token string) error {
	for _, u := range r.users {
		if u.ID == userID && u.FCMToken == token {
			u.FCMToken = ""
		}
	}
	return nil
}

func (r *fakeUserRepo) ClearTokens(tokens []string) (int64, error) {
	stale := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		stale[t] = true
	}
	var cleared int64
	for _, u := range r.users {
		if u.FCMToken != "" && stale[u.FCMToken] {
			u.FCMToken = ""
			cleared++
		}
	}
	return cleared, nil
}

// fakeSender records provider calls and simulates per-token and
// transport-level failures.
type fakeSender struct {
	multicastCalls [][]string
	payloads       []fcm.Payload
	topicCalls     []string
	tokenCalls     []string

	failTokens        map[string]fcm.FailureKind
	failBatchInTransp int // 1-based multicast call index that fails wholesale
	topicErr          error
}

func (s *fakeSender) SendMulticast(ctx context.Context, tokens []string, payload fcm.Payload) (*fcm.MulticastResult, error) {
	s.multicastCalls = append(s.multicastCalls, tokens)
	s.payloads = append(s.payloads, payload)
	if s.failBatchInTransp > 0 && len(s.multicastCalls) == s.failBatchInTransp {
		return nil, errors.New("provider unreachable")
	}

	res := &fcm.MulticastResult{Results: make([]fcm.SendResult, len(tokens))}
	for i, token := range tokens {
		if kind, ok := s.failTokens[token]; ok {
			res.Results[i] = fcm.SendResult{Kind: kind, Err: errors.New("send failed")}
			res.FailureCount++
			continue
		}
		res.Results[i] = fcm.SendResult{Success: true, MessageID: "msg-" + token}
		res.SuccessCount++
	}
	return res, nil
}

func (s *fakeSender) SendToTopic(ctx context.Context, topic string, payload fcm.Payload) (string, error) {
	s.topicCalls = append(s.topicCalls, topic)
	s.payloads = append(s.payloads, payload)
	if s.topicErr != nil {
		return "", s.topicErr
	}
	return "topic-msg-id", nil
}

func (s *fakeSender) SendToToken(ctx context.Context, token string, payload fcm.Payload) (string, error) {
	s.tokenCalls = append(s.tokenCalls, token)
	s.payloads = append(s.payloads, payload)
	return "direct-msg-id", nil
}
