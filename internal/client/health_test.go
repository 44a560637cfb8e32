package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sophos-partner-client/pkg/sophos"
)

const healthyCheckJSON = `{
	"endpoint": {
		"protection": {
			"computer": {"score": 80, "total": 10},
			"server": {"score": 90, "total": 5}
		},
		"policy": {
			"computer": {"threat-protection": {"score": 100, "total": 10}},
			"server": {}
		},
		"exclusions": {
			"policy": {"computer": {"score": 100, "total": 10}},
			"global": {"score": 100}
		},
		"tamperProtection": {
			"computer": {"score": 100, "total": 10},
			"server": {"score": 100, "total": 5},
			"globalDetail": {"score": 100}
		}
	},
	"networkDevice": {
		"firewall": {"firmware": {"score": 95, "total": 2}}
	}
}`

func TestHealthClientGet(t *testing.T) {
	t.Run("fetches and parses the health check", func(t *testing.T) {
		server := newPartnerServer(t, partnerFixture{
			health: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "tenant-1", r.Header.Get("X-Tenant-ID"))

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(healthyCheckJSON))
			},
		})
		defer server.Close()

		client := newTestClient(t, server, nil)

		health, err := client.Health().Get(context.Background(), sophos.Tenant{
			ID:      "tenant-1",
			APIHost: server.URL,
		})
		require.NoError(t, err)

		require.NotNil(t, health.Endpoint.Protection.Computer.Score)
		assert.Equal(t, 80.0, *health.Endpoint.Protection.Computer.Score)
		assert.Equal(t, 10, health.Endpoint.Protection.Computer.Total)

		summary := health.Summarize()
		require.NotNil(t, summary.Protection)
		assert.InDelta(t, 85.0, *summary.Protection, 0.001)
	})

	t.Run("tenant without an API host fails", func(t *testing.T) {
		server := newPartnerServer(t, partnerFixture{})
		defer server.Close()

		client := newTestClient(t, server, nil)

		_, err := client.Health().Get(context.Background(), sophos.Tenant{ID: "tenant-1"})
		assert.ErrorIs(t, err, sophos.ErrTenantMissingAPIHost)
	})
}

func TestHealthClientListAll(t *testing.T) {
	t.Run("maps summaries to report rows", func(t *testing.T) {
		server := newPartnerServer(t, partnerFixture{
			tenants: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tenantsPage(tenantJSON("t1", "Acme Corp", "http://"+r.Host), 1, 1)))
			},
			health: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(healthyCheckJSON))
			},
		})
		defer server.Close()

		client := newTestClient(t, server, nil)

		rows, err := client.Health().ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)

		assert.Equal(t, sophos.HealthRow{
			TenantName:       "Acme Corp",
			TenantID:         "t1",
			Overall:          "96.0",
			Protection:       "85.0",
			Policy:           "100.0",
			Exclusions:       "100.0",
			TamperProtection: "100.0",
			Firewall:         "95.0",
		}, rows[0])
	})

	t.Run("a failing tenant is skipped with a warning", func(t *testing.T) {
		server := newPartnerServer(t, partnerFixture{
			tenants: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tenantsPage(
					tenantJSON("t1", "Acme Corp", "http://"+r.Host)+","+
						tenantJSON("t2", "Beta LLC", "http://"+r.Host), 1, 1)))
			},
			health: func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("X-Tenant-ID") == "t2" {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{}`))
			},
		})
		defer server.Close()

		logger := &recordingLogger{}
		client := newTestClient(t, server, logger)

		rows, err := client.Health().ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Acme Corp", rows[0].TenantName)

		// An empty health document has nothing to score.
		assert.Equal(t, "N/A", rows[0].Overall)
		assert.Equal(t, "N/A", rows[0].Firewall)

		require.Len(t, logger.Warnings(), 1)
		assert.Contains(t, logger.Warnings()[0], "failed to get health check")
	})
}
