// Package credentials persists the backend's session cookies between CLI
// invocations in the OS keychain, playing the role of a browser cookie jar.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/zalando/go-keyring"
)

const (
	service = "rentacar-cli"
)

// Cookie is the persisted subset of an http.Cookie
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CookieStore defines the interface for cookie persistence.
// This allows us to swap the keyring out in tests.
type CookieStore interface {
	SaveCookies(apiURL string, cookies []*http.Cookie) error
	LoadCookies(apiURL string) ([]*http.Cookie, error)
	DeleteCookies(apiURL string) error
}

// getKeyringKey returns a unique key for storing cookies per API base URL
func getKeyringKey(apiURL string) string {
	return fmt.Sprintf("cookies-%s", apiURL)
}

// Keyring stores cookies in the OS keychain/credential manager
type Keyring struct{}

// Default is the production cookie store
var Default CookieStore = Keyring{}

// SaveCookies persists cookies for apiURL. An empty set removes the entry.
func (Keyring) SaveCookies(apiURL string, cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		return Keyring{}.DeleteCookies(apiURL)
	}

	stored := make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, Cookie{Name: c.Name, Value: c.Value})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal cookies: %w", err)
	}

	if err := keyring.Set(service, getKeyringKey(apiURL), string(data)); err != nil {
		return fmt.Errorf("failed to save session cookies: %w", err)
	}
	return nil
}

// LoadCookies returns the cookies saved for apiURL, or none
func (Keyring) LoadCookies(apiURL string) ([]*http.Cookie, error) {
	data, err := keyring.Get(service, getKeyringKey(apiURL))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session cookies: %w", err)
	}

	var stored []Cookie
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, fmt.Errorf("failed to parse session cookies: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	return cookies, nil
}

// DeleteCookies removes the cookies saved for apiURL
func (Keyring) DeleteCookies(apiURL string) error {
	if err := keyring.Delete(service, getKeyringKey(apiURL)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete session cookies: %w", err)
	}
	return nil
}

// Memory keeps cookies in process only
type Memory struct {
	cookies map[string][]*http.Cookie
}

func NewMemory() *Memory {
	return &Memory{cookies: make(map[string][]*http.Cookie)}
}

func (m *Memory) SaveCookies(apiURL string, cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		delete(m.cookies, apiURL)
		return nil
	}
	m.cookies[apiURL] = cookies
	return nil
}

func (m *Memory) LoadCookies(apiURL string) ([]*http.Cookie, error) {
	return m.cookies[apiURL], nil
}

func (m *Memory) DeleteCookies(apiURL string) error {
	delete(m.cookies, apiURL)
	return nil
}
