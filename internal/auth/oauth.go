package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/sophos-partner-client/internal/constants"
	"github.com/fivetwenty-io/sophos-partner-client/pkg/sophos"
)

// OAuth2Config configures the client_credentials grant against the Sophos
// identity service.
type OAuth2Config struct {
	// TokenURL is the full token endpoint URL.
	TokenURL string
	// ClientID and ClientSecret are the Sophos Central API credentials.
	ClientID     string
	ClientSecret string
	// Scopes requested with the grant. Defaults to {"token"}, which is what
	// the Sophos identity service expects.
	Scopes []string
	// HTTPClient overrides the HTTP client used for the token request.
	HTTPClient *http.Client
}

// OAuth2TokenManager obtains and caches tokens via the client_credentials
// grant. Sophos expects the credentials form-encoded in the request body, not
// as HTTP basic auth.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	store      *TokenStore
	httpClient *http.Client
	mu         sync.Mutex
}

// NewOAuth2TokenManager creates a token manager for the given config.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	}

	return &OAuth2TokenManager{
		config:     config,
		store:      NewTokenStore(),
		httpClient: httpClient,
	}
}

// GetToken returns a valid access token, requesting one when the cached token
// is absent or expired.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	token, err := m.requestToken(ctx)
	if err != nil {
		return "", err
	}

	m.store.Set(token)

	return token.AccessToken, nil
}

// RefreshToken forces a fresh client_credentials exchange.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.requestToken(ctx)
	if err != nil {
		return err
	}

	m.store.Set(token)

	return nil
}

// SetToken manually installs an access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

func (m *OAuth2TokenManager) requestToken(ctx context.Context) (*Token, error) {
	// Credential presence is checked before any network I/O.
	if m.config.ClientID == "" || m.config.ClientSecret == "" {
		return nil, sophos.ErrMissingCredentials
	}

	scopes := m.config.Scopes
	if len(scopes) == 0 {
		scopes = []string{constants.TokenScope}
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.config.ClientID)
	form.Set("client_secret", m.config.ClientSecret)
	form.Set("scope", strings.Join(scopes, " "))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, tokenError(resp.StatusCode, body)
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.AccessToken == "" {
		return nil, sophos.ErrMalformedTokenBody
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return &token, nil
}

// tokenError surfaces the identity service's error and error_description
// fields when present.
func tokenError(status int, body []byte) error {
	var oauthErr struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Message          string `json:"message"`
	}

	if json.Unmarshal(body, &oauthErr) == nil && oauthErr.Error != "" {
		detail := oauthErr.ErrorDescription
		if detail == "" {
			detail = oauthErr.Message
		}

		return fmt.Errorf("%w: HTTP %d: %s: %s", sophos.ErrTokenRequestFailed, status, oauthErr.Error, detail)
	}

	snippet := string(body)
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}

	return fmt.Errorf("%w: HTTP %d: %s", sophos.ErrTokenRequestFailed, status, snippet)
}
