package authstate

import (
	"context"

	"github.com/rentacar-dev/rentacar/internal/cli/session"
)

// Session is the session context handed to page functions. It is
// initialized once per command run and torn down on logout.
type Session struct {
	resolver    *Resolver
	store       *session.Store
	initialized bool
}

// NewSession creates an uninitialized session context
func NewSession(resolver *Resolver, store *session.Store) *Session {
	return &Session{resolver: resolver, store: store}
}

// Init resolves the auth state against the backend. Calling it again is a no-op.
func (s *Session) Init(ctx context.Context) *session.Profile {
	if s.initialized {
		return s.store.CurrentUser()
	}
	s.initialized = true
	return s.resolver.CheckAuthStatus(ctx)
}

// Teardown logs out and reports whether it succeeded
func (s *Session) Teardown(ctx context.Context) bool {
	return s.resolver.Logout(ctx)
}

// Store exposes the Session Store
func (s *Session) Store() *session.Store {
	return s.store
}

// User returns the cached profile, nil when anonymous
func (s *Session) User() *session.Profile {
	return s.store.CurrentUser()
}

// LoggedIn reports whether a profile is cached
func (s *Session) LoggedIn() bool {
	return s.store.IsLoggedIn()
}
