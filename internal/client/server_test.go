package client

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

// partnerFixture configures the fake partner API server. The same server
// stands in for the regional API hosts, so tenant fixtures should use the
// server's URL as their apiHost.
type partnerFixture struct {
	whoami    string
	onWhoAmI  func()
	tenants   http.HandlerFunc
	endpoints http.HandlerFunc
	health    http.HandlerFunc
}

func newPartnerServer(t *testing.T, fixture partnerFixture) *httptest.Server {
	t.Helper()

	if fixture.whoami == "" {
		fixture.whoami = `{"id": "partner-1", "idType": "partner"}`
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/whoami/v1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		if fixture.onWhoAmI != nil {
			fixture.onWhoAmI()
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture.whoami))
	})

	if fixture.tenants != nil {
		mux.HandleFunc("/partner/v1/tenants", fixture.tenants)
	}

	if fixture.endpoints != nil {
		mux.HandleFunc("/endpoint/v1/endpoints", fixture.endpoints)
	}

	if fixture.health != nil {
		mux.HandleFunc("/account-health-check/v1/health-check", fixture.health)
	}

	return httptest.NewServer(mux)
}

// tenantsPage renders one page of the partner tenant listing.
func tenantsPage(items string, current, total int) string {
	return `{"items": [` + items + `], "pages": {"current": ` + strconv.Itoa(current) + `, "total": ` + strconv.Itoa(total) + `, "size": 100}}`
}

// tenantJSON renders one tenant object with the given apiHost.
func tenantJSON(id, name, apiHost string) string {
	return `{"id": "` + id + `", "name": "` + name + `", "dataRegion": "us-west", "status": "active", "apiHost": "` + apiHost + `"}`
}
