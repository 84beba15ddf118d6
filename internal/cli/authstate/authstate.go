// Package authstate resolves who is logged in when a command starts and
// owns the logout flow.
package authstate

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rentacar-dev/rentacar/internal/cli/session"
	"github.com/rentacar-dev/rentacar/internal/cli/view"
)

// API is the part of the API client the resolver needs
type API interface {
	CurrentUser(ctx context.Context) (*session.Profile, error)
	Logout(ctx context.Context) error
	ClearSession() error
}

// Resolver keeps the Session Store in line with the backend session
type Resolver struct {
	api   API
	store *session.Store
	log   zerolog.Logger
}

// NewResolver creates a Resolver
func NewResolver(api API, store *session.Store, log zerolog.Logger) *Resolver {
	return &Resolver{api: api, store: store, log: log}
}

// CheckAuthStatus asks the backend for the current session. On success the
// profile is cached and returned; on any failure the cache is cleared and
// nil is returned. Being anonymous is not an error.
func (r *Resolver) CheckAuthStatus(ctx context.Context) *session.Profile {
	user, err := r.api.CurrentUser(ctx)
	if err != nil {
		r.log.Debug().Err(err).Msg("No active session")
		if err := r.store.SetCurrentUser(nil); err != nil {
			r.log.Warn().Err(err).Msg("Failed to clear current user")
		}
		return nil
	}

	if err := r.store.SetCurrentUser(user); err != nil {
		r.log.Warn().Err(err).Msg("Failed to cache current user")
	}
	return user
}

// Logout ends the backend session, then clears the cached profile and the
// saved session cookies. It reports whether the user is now logged out;
// failures are logged and leave local state untouched.
func (r *Resolver) Logout(ctx context.Context) bool {
	if err := r.api.Logout(ctx); err != nil {
		r.log.Error().Err(err).Msg("Logout failed")
		return false
	}

	if err := r.store.SetCurrentUser(nil); err != nil {
		r.log.Warn().Err(err).Msg("Failed to clear current user")
	}
	if err := r.api.ClearSession(); err != nil {
		r.log.Warn().Err(err).Msg("Failed to clear session cookies")
	}
	return true
}

// Navigation builds the header menu from the cached profile
func Navigation(store *session.Store) view.Navigation {
	user := store.CurrentUser()
	if user == nil {
		return view.Navigation{
			Links: []view.Link{
				{Label: "Browse Cars", Target: "cars"},
				{Label: "Login", Target: "login"},
				{Label: "Sign Up", Target: "register", Primary: true},
			},
		}
	}

	links := []view.Link{
		{Label: "Browse Cars", Target: "cars"},
		{Label: "Dashboard", Target: "bookings"},
	}
	if user.IsAdmin {
		links = append(links, view.Link{Label: "Admin", Target: "admin"})
	}
	links = append(links, view.Link{Label: "Logout", Action: "logout"})

	return view.Navigation{
		Authenticated: true,
		UserName:      user.FullName,
		Links:         links,
	}
}
