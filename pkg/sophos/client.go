package sophos

import (
	"context"
	"time"
)

// Default Sophos Central endpoints. TokenURL and PartnerAPIEndpoint in Config
// override these, which the tests rely on.
const (
	DefaultTokenURL           = "https://id.sophos.com/api/v2/oauth2/token"
	DefaultPartnerAPIEndpoint = "https://api.central.sophos.com"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a sophos.Client.
//
// ClientID and ClientSecret are required; they drive the OAuth2
// client_credentials grant against the Sophos identity service. The token is
// obtained lazily on the first API call and refreshed only if the process
// outlives its expiry.
type Config struct {
	// ClientID is the Sophos Central API credential client ID.
	ClientID string
	// ClientSecret is the secret paired with ClientID.
	ClientSecret string

	// TokenURL overrides the identity service token endpoint.
	TokenURL string
	// PartnerAPIEndpoint overrides the partner-scoped API base URL.
	PartnerAPIEndpoint string

	// PageSize is the page size requested from paginated listings.
	PageSize int
	// MaxPages caps pagination per listing; see PaginationOptions.
	MaxPages int

	// HTTPTimeout bounds individual HTTP requests. Zero means the transport
	// default.
	HTTPTimeout time.Duration
	// RetryMax is the maximum number of transport-level retries for transient
	// failures (>=500, 429, connection errors).
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is set.
	Debug bool
	// Logger is the optional structured logger used by the HTTP layer and the
	// cross-tenant listings (per-tenant skip warnings).
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}

// TenantsClient lists tenant accounts under the partner.
type TenantsClient interface {
	// List returns every tenant, sorted case-insensitively by name.
	List(ctx context.Context) ([]Tenant, error)
}

// EndpointsClient lists managed devices.
type EndpointsClient interface {
	// ListForTenant returns every endpoint of one tenant in arrival order.
	ListForTenant(ctx context.Context, tenant Tenant) ([]Endpoint, error)
	// ListAll returns flattened endpoint rows across all tenants, sorted by
	// tenant name then hostname. A tenant whose fetch fails is skipped with a
	// warning rather than failing the whole listing.
	ListAll(ctx context.Context) ([]EndpointRow, error)
}

// HealthClient fetches account health checks.
type HealthClient interface {
	// Get returns the health-check document of one tenant.
	Get(ctx context.Context, tenant Tenant) (*HealthCheck, error)
	// ListAll returns summarized health rows across all tenants, sorted by
	// tenant name, with the same skip-and-warn policy as endpoint listing.
	ListAll(ctx context.Context) ([]HealthRow, error)
}

// Client is the top-level Sophos Central partner API client.
type Client interface {
	// WhoAmI describes the authenticated principal.
	WhoAmI(ctx context.Context) (*WhoAmI, error)
	// PartnerID returns the partner identifier, failing with ErrNotPartner
	// when the credentials do not belong to a partner account.
	PartnerID(ctx context.Context) (string, error)

	Tenants() TenantsClient
	Endpoints() EndpointsClient
	Health() HealthClient
}
