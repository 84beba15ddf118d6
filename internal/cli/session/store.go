// Package session owns the cached profile of the logged-in user. Presence of
// a cached profile is the only signal the CLI uses for "logged in".
package session

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rentacar-dev/rentacar/internal/cli/storage"
)

// StorageKey is the storage key holding the serialized current user
const StorageKey = "currentUser"

// Store reads and writes the current user profile
type Store struct {
	storage storage.Storage
	log     zerolog.Logger
}

// NewStore creates a Store on top of the given storage
func NewStore(s storage.Storage, log zerolog.Logger) *Store {
	return &Store{storage: s, log: log}
}

// CurrentUser returns the cached profile, or nil when none is stored or the
// stored value cannot be read. It never fails.
func (s *Store) CurrentUser() *Profile {
	raw, ok, err := s.storage.GetItem(StorageKey)
	if err != nil {
		s.log.Debug().Err(err).Msg("Failed to read current user")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Debug().Err(err).Msg("Discarding unparsable current user")
		return nil
	}
	return &p
}

// SetCurrentUser replaces the cached profile. A nil profile clears it.
func (s *Store) SetCurrentUser(p *Profile) error {
	if p == nil {
		if err := s.storage.RemoveItem(StorageKey); err != nil {
			return fmt.Errorf("failed to clear current user: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal current user: %w", err)
	}
	if err := s.storage.SetItem(StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to save current user: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether a profile is cached
func (s *Store) IsLoggedIn() bool {
	return s.CurrentUser() != nil
}

// IsAdmin reports whether the cached profile carries the admin flag
func (s *Store) IsAdmin() bool {
	p := s.CurrentUser()
	return p != nil && p.IsAdmin
}
