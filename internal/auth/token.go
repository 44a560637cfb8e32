package auth

import (
	"context"
	"sync"
	"time"
)

// expiryBuffer is subtracted from a token's lifetime so a token about to
// expire is refreshed before the API rejects it mid-flight.
const expiryBuffer = 30 * time.Second

// Token represents an OAuth2 token response from the Sophos identity service.
type Token struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresIn    int64     `json:"expires_in,omitempty"`
	ExpiresAt    time.Time `json:"-"`
}

// Valid reports whether the token exists and is not expired or about to
// expire. A zero ExpiresAt means the token does not expire.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(expiryBuffer).Before(t.ExpiresAt)
}

// TokenStore holds the current token behind a read/write lock.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token, or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}

// TokenManager supplies bearer tokens to the HTTP layer.
type TokenManager interface {
	// GetToken returns a valid access token, fetching one if necessary.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces a new token fetch.
	RefreshToken(ctx context.Context) error
	// SetToken manually installs an access token.
	SetToken(token string, expiresAt time.Time)
}
