package usecase

import (
	"errors"
	"testing"

	authdomain "github.com/rameshbanalab/ServNest-sub001/internal/auth/domain"
	"github.com/rameshbanalab/ServNest-sub001/pkg/fcm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func janitorFixture() (*fakeUserRepo, *Janitor) {
	repo := &fakeUserRepo{}
	repo.add(&authdomain.User{ID: "u1", FCMToken: "tok-1"})
	repo.add(&authdomain.User{ID: "u2", FCMToken: "tok-2"})
	repo.add(&authdomain.User{ID: "u3", FCMToken: "tok-3"})
	return repo, NewJanitor(repo)
}

func TestJanitorClearsOnlyPermanentlyInvalidTokens(t *testing.T) {
	repo, janitor := janitorFixture()

	tokens := []string{"tok-1", "tok-2", "tok-3"}
	results := []fcm.SendResult{
		{Kind: fcm.FailureUnregistered, Err: errors.New("registration-token-not-registered")},
		{Kind: fcm.FailureTransient, Err: errors.New("unavailable")},
		{Kind: fcm.FailureInvalidToken, Err: errors.New("invalid-argument")},
	}

	cleaned := janitor.Clean(results, tokens)
	assert.Equal(t, 2, cleaned)

	u1, _ := repo.FindByID("u1")
	u2, _ := repo.FindByID("u2")
	u3, _ := repo.FindByID("u3")
	assert.False(t, u1.HasToken(), "unregistered token must be cleared")
	assert.True(t, u2.HasToken(), "transient failure must leave the token untouched")
	assert.False(t, u3.HasToken(), "invalid token must be cleared")
}

func TestJanitorSkipsSuccessfulResults(t *testing.T) {
	repo, janitor := janitorFixture()

	tokens := []string{"tok-1", "tok-2"}
	results := []fcm.SendResult{
		{Success: true, MessageID: "m1"},
		{Success: true, MessageID: "m2"},
	}

	assert.Equal(t, 0, janitor.Clean(results, tokens))
	u1, _ := repo.FindByID("u1")
	require.NotNil(t, u1)
	assert.True(t, u1.HasToken())
}

func TestJanitorIsIdempotent(t *testing.T) {
	_, janitor := janitorFixture()

	tokens := []string{"tok-1", "tok-2", "tok-3"}
	results := []fcm.SendResult{
		{Kind: fcm.FailureUnregistered},
		{Kind: fcm.FailureInvalidToken},
		{Success: true},
	}

	first := janitor.Clean(results, tokens)
	second := janitor.Clean(results, tokens)
	assert.Equal(t, 2, first)
	assert.Equal(t, 0, second, "second run on the same result set must clean nothing")
}
