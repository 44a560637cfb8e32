package client

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sophos-partner-client/pkg/sophos"
)

// testTokenManager satisfies auth.TokenManager without hitting the identity
// service.
type testTokenManager struct{}

func (m *testTokenManager) GetToken(ctx context.Context) (string, error) {
	return "test-token", nil
}

func (m *testTokenManager) RefreshToken(ctx context.Context) error {
	return nil
}

func (m *testTokenManager) SetToken(token string, expiresAt time.Time) {}

// recordingLogger captures warnings for assertions.
type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) {}
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  {}
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) Warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.warnings...)
}

func newTestClient(t *testing.T, server *httptest.Server, logger sophos.Logger) *Client {
	t.Helper()

	client, err := NewWithTokenManager(&sophos.Config{
		ClientID:           "test-client",
		ClientSecret:       "test-secret",
		PartnerAPIEndpoint: server.URL,
		Logger:             logger,
	}, &testTokenManager{})
	require.NoError(t, err)

	return client
}

func TestNew(t *testing.T) {
	t.Run("nil config fails", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, sophos.ErrConfigRequired)
	})

	t.Run("missing credentials fail", func(t *testing.T) {
		_, err := New(&sophos.Config{ClientID: "only-id"})
		assert.ErrorIs(t, err, sophos.ErrMissingCredentials)
	})

	t.Run("nil token manager fails", func(t *testing.T) {
		_, err := NewWithTokenManager(&sophos.Config{}, nil)
		assert.ErrorIs(t, err, sophos.ErrNoTokenManager)
	})

	t.Run("valid config creates a client", func(t *testing.T) {
		client, err := New(&sophos.Config{
			ClientID:     "test-client",
			ClientSecret: "test-secret",
		})
		require.NoError(t, err)
		assert.NotNil(t, client.Tenants())
		assert.NotNil(t, client.Endpoints())
		assert.NotNil(t, client.Health())
	})
}

func TestClientWhoAmI(t *testing.T) {
	requests := 0

	server := newPartnerServer(t, partnerFixture{
		whoami: `{"id": "partner-1", "idType": "partner", "apiHosts": {"global": "https://api.central.sophos.com"}}`,
		onWhoAmI: func() {
			requests++
		},
	})
	defer server.Close()

	client := newTestClient(t, server, nil)

	whoami, err := client.WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "partner-1", whoami.ID)
	assert.Equal(t, sophos.IDTypePartner, whoami.IDType)

	// Cached after the first call.
	_, err = client.WhoAmI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
}

func TestClientPartnerID(t *testing.T) {
	t.Run("returns the partner ID", func(t *testing.T) {
		server := newPartnerServer(t, partnerFixture{
			whoami: `{"id": "partner-1", "idType": "partner"}`,
		})
		defer server.Close()

		client := newTestClient(t, server, nil)

		partnerID, err := client.PartnerID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "partner-1", partnerID)
	})

	t.Run("non-partner credentials fail", func(t *testing.T) {
		server := newPartnerServer(t, partnerFixture{
			whoami: `{"id": "tenant-1", "idType": "tenant"}`,
		})
		defer server.Close()

		client := newTestClient(t, server, nil)

		_, err := client.PartnerID(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, sophos.ErrNotPartner)
		assert.Contains(t, err.Error(), "tenant")
	})
}
