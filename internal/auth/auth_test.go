package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func TestSessionRoundTrip(t *testing.T) {
	InitializeSessions("test-secret")

	token, err := IssueSession(SessionData{UserID: 42, Email: "a@b.com", IsAdmin: true}, issuedAt)
	require.NoError(t, err)

	session, err := ParseSession(token, issuedAt.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, &SessionData{UserID: 42, Email: "a@b.com", IsAdmin: true}, session)
}

func TestParseSession_Expired(t *testing.T) {
	InitializeSessions("test-secret")

	token, err := IssueSession(SessionData{UserID: 1, Email: "a@b.com"}, issuedAt)
	require.NoError(t, err)

	_, err = ParseSession(token, issuedAt.Add(SessionTTL-time.Minute))
	require.NoError(t, err)

	_, err = ParseSession(token, issuedAt.Add(SessionTTL+time.Minute))
	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestParseSession_WrongSecret(t *testing.T) {
	InitializeSessions("one")
	token, err := IssueSession(SessionData{UserID: 1, Email: "a@b.com"}, issuedAt)
	require.NoError(t, err)

	InitializeSessions("two")
	_, err = ParseSession(token, issuedAt)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestParseSession_RejectsForeignTokens(t *testing.T) {
	InitializeSessions("test-secret")

	// signed with the right key but not issued as a session
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     issuedAt.Add(time.Hour).Unix(),
	})
	token, err := foreign.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseSession(token, issuedAt)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = ParseSession("not-a-token", issuedAt)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestIssueSession_RequiresSecret(t *testing.T) {
	InitializeSessions("")
	t.Cleanup(func() { InitializeSessions("test-secret") })

	_, err := IssueSession(SessionData{UserID: 1}, issuedAt)
	assert.ErrorIs(t, err, ErrSessionsNotInitialized)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword("admin123", hash))
	assert.Error(t, VerifyPassword("admin124", hash))
}
