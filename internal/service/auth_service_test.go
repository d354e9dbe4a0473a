package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"warga-be-svc/internal/config"
	"warga-be-svc/internal/models"
)

func newAuthFixture(t *testing.T, user *models.User) (AuthService, *fakeBlacklistRepo) {
	t.Helper()

	users := &fakeUserRepo{byID: map[uint]*models.User{}, byEmail: map[string]*models.User{}}
	if user != nil {
		users.byID[user.ID] = user
		users.byEmail[user.Email] = user
	}

	blacklist := newFakeBlacklistRepo()
	svc := NewAuthService(users, blacklist, config.JWTConfig{Secret: "test-secret", TTLHours: 1}, testLogger())
	return svc, blacklist
}

func hashedPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginIssuesValidToken(t *testing.T) {
	user := &models.User{ID: 5, Email: "warga@example.com", Password: hashedPassword(t, "rahasia1"), Role: models.RoleResident}
	svc, _ := newAuthFixture(t, user)

	token, loggedIn, err := svc.Login("warga@example.com", "rahasia1")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uint(5), loggedIn.ID)

	// The issued token round-trips through validation
	validated, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(5), validated.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	user := &models.User{ID: 5, Email: "warga@example.com", Password: hashedPassword(t, "rahasia1")}
	svc, _ := newAuthFixture(t, user)

	_, _, err := svc.Login("warga@example.com", "salah")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)

	_, _, err := svc.Login("nobody@example.com", "whatever1")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDeactivatedAccountRefused(t *testing.T) {
	inactive := false
	user := &models.User{ID: 5, Email: "warga@example.com", Password: hashedPassword(t, "rahasia1"), Active: &inactive}
	svc, _ := newAuthFixture(t, user)

	_, _, err := svc.Login("warga@example.com", "rahasia1")

	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestLogoutRevokesToken(t *testing.T) {
	user := &models.User{ID: 5, Email: "warga@example.com", Password: hashedPassword(t, "rahasia1")}
	svc, _ := newAuthFixture(t, user)

	token, _, err := svc.Login("warga@example.com", "rahasia1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token))

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestValidateTokenForcesSignOutOfDeactivatedAccount(t *testing.T) {
	user := &models.User{ID: 5, Email: "warga@example.com", Password: hashedPassword(t, "rahasia1")}
	svc, blacklist := newAuthFixture(t, user)

	token, _, err := svc.Login("warga@example.com", "rahasia1")
	require.NoError(t, err)

	// Account gets deactivated while the session is live
	inactive := false
	user.Active = &inactive

	_, err = svc.ValidateToken(token)
	require.ErrorIs(t, err, ErrAccountDeactivated)

	// The token was blacklisted on sight; subsequent use is a plain revocation
	assert.NotEmpty(t, blacklist.hashes)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestPurgeExpiredTokensPrunesOnlyExpiredEntries(t *testing.T) {
	svc, blacklist := newAuthFixture(t, nil)

	now := time.Now()
	require.NoError(t, blacklist.Add("stale-hash", now.Add(-time.Hour)))
	require.NoError(t, blacklist.Add("live-hash", now.Add(time.Hour)))

	require.NoError(t, svc.PurgeExpiredTokens(now))

	_, staleKept := blacklist.hashes["stale-hash"]
	_, liveKept := blacklist.hashes["live-hash"]
	assert.False(t, staleKept)
	assert.True(t, liveKept)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t, nil)

	_, err := svc.ValidateToken("not-a-token")

	assert.Error(t, err)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	user := &models.User{ID: 5, Email: "warga@example.com", Password: hashedPassword(t, "rahasia1")}
	svc, _ := newAuthFixture(t, user)
	otherSvc, _ := newAuthFixture(t, user)

	token, _, err := svc.Login("warga@example.com", "rahasia1")
	require.NoError(t, err)

	// Same claims, different secret
	other := otherSvc.(*authService)
	other.jwtConfig.Secret = "another-secret"

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
