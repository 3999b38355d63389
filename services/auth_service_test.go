package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarmohsen179/advanced-habit-tracker/models"
)

func registerTestUser(t *testing.T, username string) models.User {
	t.Helper()
	user, err := RegisterUser(models.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndAuthenticate(t *testing.T) {
	setupTestDB(t)
	user := registerTestUser(t, "alice")
	assert.NotEqual(t, "secret123", user.PasswordHash)

	authed, err := Authenticate("alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = Authenticate("nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	setupTestDB(t)
	registerTestUser(t, "alice")

	_, err := RegisterUser(models.RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestTokenPairRoundtrip(t *testing.T) {
	setupTestDB(t)
	ConfigureAuth("test-secret", 15*time.Minute, time.Hour)
	user := registerTestUser(t, "alice")

	access, refresh, err := IssueTokenPair(user)
	require.NoError(t, err)

	claims, err := ParseToken(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	// an access token is not accepted where a refresh token is expected,
	// and vice versa
	_, err = ParseToken(access, TokenTypeRefresh)
	assert.Error(t, err)
	_, err = ParseToken(refresh, TokenTypeAccess)
	assert.Error(t, err)
}

func TestRefreshAccessToken(t *testing.T) {
	setupTestDB(t)
	ConfigureAuth("test-secret", 15*time.Minute, time.Hour)
	user := registerTestUser(t, "alice")

	_, refresh, err := IssueTokenPair(user)
	require.NoError(t, err)

	access, err := RefreshAccessToken(refresh)
	require.NoError(t, err)
	claims, err := ParseToken(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = RefreshAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	setupTestDB(t)
	ConfigureAuth("test-secret", 15*time.Minute, time.Hour)
	user := registerTestUser(t, "alice")

	_, refresh, err := IssueTokenPair(user)
	require.NoError(t, err)

	require.NoError(t, Logout(refresh))

	// revoked tokens can neither refresh nor log out again
	_, err = RefreshAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
	assert.ErrorIs(t, Logout(refresh), ErrInvalidRefresh)
}

func TestLogoutFailureModes(t *testing.T) {
	setupTestDB(t)
	ConfigureAuth("test-secret", 15*time.Minute, time.Hour)

	assert.ErrorIs(t, Logout(""), ErrMissingRefresh)
	assert.ErrorIs(t, Logout("garbage"), ErrInvalidRefresh)

	// an access token is not a valid logout credential
	user := registerTestUser(t, "alice")
	access, _, err := IssueTokenPair(user)
	require.NoError(t, err)
	assert.ErrorIs(t, Logout(access), ErrInvalidRefresh)
}
