package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionCookie is the HttpOnly cookie carrying the signed session
	SessionCookie = "session"

	// SessionTTL bounds how long a session token is accepted after login
	SessionTTL = 7 * 24 * time.Hour

	sessionIssuer = "rentacar"
)

var (
	ErrSessionsNotInitialized = errors.New("session secret not initialized")
	ErrInvalidSession         = errors.New("invalid session")
)

var sessionSecret []byte

// sessionClaims is the payload of the session cookie
type sessionClaims struct {
	SessionData
	jwt.RegisteredClaims
}

// InitializeSessions sets the key session tokens are signed with
func InitializeSessions(secret string) {
	sessionSecret = []byte(secret)
}

// IssueSession signs a session token for the user, valid for SessionTTL from now
func IssueSession(data SessionData, now time.Time) (string, error) {
	if len(sessionSecret) == 0 {
		return "", ErrSessionsNotInitialized
	}

	claims := sessionClaims{
		SessionData: data,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatInt(data.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionSecret)
}

// ParseSession verifies a session cookie value as of now and returns the
// session it carries
func ParseSession(token string, now time.Time) (*SessionData, error) {
	if len(sessionSecret) == 0 {
		return nil, ErrSessionsNotInitialized
	}

	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return sessionSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidSession
	}
	return &claims.SessionData, nil
}
