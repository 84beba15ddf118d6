package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rentacar-dev/rentacar/internal/auth"
)

var (
	ErrNoSession = errors.New("no session")
	ErrNotAdmin  = errors.New("not admin")
)

func setSession(c *gin.Context, sessionData *auth.SessionData) {
	c.Set("session", sessionData)
}

func GetSessionData(c *gin.Context) (*auth.SessionData, bool) {
	session, exists := c.Get("session")
	if !exists {
		return nil, false
	}

	sessionData, ok := session.(*auth.SessionData)
	return sessionData, ok
}

func respondWithError(c *gin.Context, log zerolog.Logger, statusCode int, err error, message string) {
	log.Debug().Err(err).Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
	c.Abort()
}

// SessionMiddleware attaches the session of a valid session cookie. Requests
// without one pass through anonymously.
func SessionMiddleware(log zerolog.Logger, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sessionData, err := auth.ParseSession(token, now())
		if err != nil {
			log.Debug().Err(err).Msg("Ignoring invalid session cookie")
			c.Next()
			return
		}

		setSession(c, sessionData)
		c.Next()
	}
}

// LoginRequiredMiddleware rejects anonymous requests
func LoginRequiredMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetSessionData(c); !ok {
			respondWithError(c, log, http.StatusUnauthorized, ErrNoSession, "Authentication required")
			return
		}
		c.Next()
	}
}

// AdminOnlyMiddleware ensures the authenticated user is an admin
func AdminOnlyMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionData, exists := GetSessionData(c)
		if !exists {
			respondWithError(c, log, http.StatusUnauthorized, ErrNoSession, "Authentication required")
			return
		}

		if !sessionData.IsAdmin {
			respondWithError(c, log, http.StatusForbidden, ErrNotAdmin, "Admin privileges required")
			return
		}

		c.Next()
	}
}
