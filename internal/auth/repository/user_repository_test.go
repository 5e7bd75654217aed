package repository

import (
	"testing"

	authdomain "github.com/rameshbanalab/ServNest-sub001/internal/auth/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.User{}))
	return db
}

func seedUser(t *testing.T, repo UserRepository, id, token string, businessOwner bool) *authdomain.User {
	t.Helper()
	user := &authdomain.User{
		ID:              id,
		Email:           id + "@example.com",
		Name:            id,
		IsBusinessOwner: businessOwner,
		FCMToken:        token,
	}
	require.NoError(t, repo.Create(user))
	return user
}

func TestSaveTokenStealsFromPreviousOwner(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	seedUser(t, repo, "u1", "shared-token", false)
	seedUser(t, repo, "u2", "", false)

	require.NoError(t, repo.SaveToken("u2", "shared-token"))

	u1, err := repo.FindByID("u1")
	require.NoError(t, err)
	assert.False(t, u1.HasToken(), "a token belongs to exactly one user")

	u2, err := repo.FindByID("u2")
	require.NoError(t, err)
	assert.Equal(t, "shared-token", u2.FCMToken)
}

func TestSaveTokenLastWriteWins(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	seedUser(t, repo, "u1", "old-token", false)

	require.NoError(t, repo.SaveToken("u1", "new-token"))

	u1, err := repo.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "new-token", u1.FCMToken)
}

func TestClearTokensReportsRowsChanged(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	seedUser(t, repo, "u1", "tok-1", false)
	seedUser(t, repo, "u2", "tok-2", false)
	seedUser(t, repo, "u3", "tok-3", false)

	cleared, err := repo.ClearTokens([]string{"tok-1", "tok-3", "tok-unknown"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, cleared)

	// second run is a no-op: the fields are already absent
	cleared, err = repo.ClearTokens([]string{"tok-1", "tok-3"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, cleared)
}

func TestClearTokensEmptyInput(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	cleared, err := repo.ClearTokens(nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, cleared)
}

func TestClearTokenRequiresMatchingValue(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	seedUser(t, repo, "u1", "tok-1", false)

	require.NoError(t, repo.ClearToken("u1", "some-other-token"))
	u1, err := repo.FindByID("u1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", u1.FCMToken, "a mismatched value must not clear the token")

	require.NoError(t, repo.ClearToken("u1", "tok-1"))
	u1, err = repo.FindByID("u1")
	require.NoError(t, err)
	assert.False(t, u1.HasToken())
}

func TestListTokenHoldersFiltersRoleAndToken(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	seedUser(t, repo, "cust1", "tok-c1", false)
	seedUser(t, repo, "cust2", "", false) // no token, excluded
	seedUser(t, repo, "biz1", "tok-b1", true)

	all, err := repo.ListTokenHolders(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	owners := true
	biz, err := repo.ListTokenHolders(&owners)
	require.NoError(t, err)
	require.Len(t, biz, 1)
	assert.Equal(t, "biz1", biz[0].ID)

	customers := false
	cust, err := repo.ListTokenHolders(&customers)
	require.NoError(t, err)
	require.Len(t, cust, 1)
	assert.Equal(t, "cust1", cust[0].ID)
}
