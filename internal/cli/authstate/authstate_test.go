package authstate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentacar-dev/rentacar/internal/cli/client"
	"github.com/rentacar-dev/rentacar/internal/cli/credentials"
	"github.com/rentacar-dev/rentacar/internal/cli/session"
	"github.com/rentacar-dev/rentacar/internal/cli/storage"
	"github.com/rentacar-dev/rentacar/internal/cli/view"
)

func newStore() *session.Store {
	return session.NewStore(storage.NewMemory(), zerolog.Nop())
}

func newAPI(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(server.URL+"/api", client.WithCookieStore(credentials.NewMemory()))
	require.NoError(t, err)
	return c
}

func TestCheckAuthStatus_Unauthenticated(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Not authenticated"}`))
	})
	store := newStore()
	require.NoError(t, store.SetCurrentUser(&session.Profile{ID: 5, FullName: "Stale"}))

	user := NewResolver(api, store, zerolog.Nop()).CheckAuthStatus(context.Background())

	assert.Nil(t, user)
	assert.Nil(t, store.CurrentUser(), "stale profile is cleared")
}

func TestCheckAuthStatus_Authenticated(t *testing.T) {
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 1, "email": "a@b.com", "full_name": "A", "phone": "555", "is_admin": true}`))
	})
	store := newStore()

	user := NewResolver(api, store, zerolog.Nop()).CheckAuthStatus(context.Background())

	require.NotNil(t, user)
	assert.Equal(t, "A", user.FullName)
	assert.Equal(t, user, store.CurrentUser())
	assert.True(t, store.IsAdmin())
}

func TestCheckAuthStatus_AcceptsAnyProfileShape(t *testing.T) {
	bodies := map[string]string{
		"string id":     `{"id": "6f1c2b", "full_name": "A", "is_admin": false}`,
		"numeric phone": `{"id": 1, "full_name": "A", "phone": 5551234567}`,
		"float id":      `{"id": 1.0, "full_name": "A"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			store := newStore()

			user := NewResolver(api, store, zerolog.Nop()).CheckAuthStatus(context.Background())

			require.NotNil(t, user)
			assert.Equal(t, "A", user.FullName)
			assert.True(t, store.IsLoggedIn())
			assert.Equal(t, user, store.CurrentUser())
		})
	}
}

func TestCheckAuthStatus_NetworkFailureIsSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	api, err := client.New(url+"/api", client.WithCookieStore(credentials.NewMemory()))
	require.NoError(t, err)
	store := newStore()
	require.NoError(t, store.SetCurrentUser(&session.Profile{ID: 5}))

	assert.Nil(t, NewResolver(api, store, zerolog.Nop()).CheckAuthStatus(context.Background()))
	assert.False(t, store.IsLoggedIn())
}

type fakeAPI struct {
	logoutErr error
	cleared   bool
}

func (f *fakeAPI) CurrentUser(ctx context.Context) (*session.Profile, error) {
	return nil, errors.New("Not authenticated")
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	return f.logoutErr
}

func (f *fakeAPI) ClearSession() error {
	f.cleared = true
	return nil
}

func TestLogout_Success(t *testing.T) {
	api := &fakeAPI{}
	store := newStore()
	require.NoError(t, store.SetCurrentUser(&session.Profile{ID: 1}))

	ok := NewResolver(api, store, zerolog.Nop()).Logout(context.Background())

	assert.True(t, ok)
	assert.False(t, store.IsLoggedIn())
	assert.True(t, api.cleared)
}

func TestLogout_FailureKeepsState(t *testing.T) {
	api := &fakeAPI{logoutErr: errors.New("failed to send request: connection refused")}
	store := newStore()
	require.NoError(t, store.SetCurrentUser(&session.Profile{ID: 1}))

	ok := NewResolver(api, store, zerolog.Nop()).Logout(context.Background())

	assert.False(t, ok)
	assert.True(t, store.IsLoggedIn())
	assert.False(t, api.cleared)
}

func TestNavigation(t *testing.T) {
	store := newStore()

	anon := Navigation(store)
	assert.False(t, anon.Authenticated)
	assert.Equal(t, []string{"Browse Cars", "Login", "Sign Up"}, labels(anon))

	require.NoError(t, store.SetCurrentUser(&session.Profile{ID: 1, FullName: "A"}))
	user := Navigation(store)
	assert.True(t, user.Authenticated)
	assert.Equal(t, "A", user.UserName)
	assert.Equal(t, []string{"Browse Cars", "Dashboard", "Logout"}, labels(user))
	assert.Equal(t, "logout", user.Links[2].Action)

	require.NoError(t, store.SetCurrentUser(&session.Profile{ID: 1, FullName: "A", IsAdmin: true}))
	assert.Equal(t, []string{"Browse Cars", "Dashboard", "Admin", "Logout"}, labels(Navigation(store)))
}

func TestSession_InitOnce(t *testing.T) {
	calls := 0
	api := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"id": 1, "full_name": "A"}`))
	})
	store := newStore()
	s := NewSession(NewResolver(api, store, zerolog.Nop()), store)

	assert.Equal(t, "A", s.Init(context.Background()).FullName)
	assert.Equal(t, "A", s.Init(context.Background()).FullName)
	assert.Equal(t, 1, calls)
	assert.True(t, s.LoggedIn())
}

func labels(n view.Navigation) []string {
	out := make([]string, 0, len(n.Links))
	for _, link := range n.Links {
		out = append(out, link.Label)
	}
	return out
}
