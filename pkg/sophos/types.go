package sophos

// WhoAmI represents the /whoami/v1 response describing the authenticated
// principal.
type WhoAmI struct {
	ID       string   `json:"id"       yaml:"id"`
	IDType   string   `json:"idType"   yaml:"idType"`
	APIHosts APIHosts `json:"apiHosts" yaml:"apiHosts"`
}

// APIHosts lists the API hosts available to the principal.
type APIHosts struct {
	Global     string `json:"global"               yaml:"global"`
	DataRegion string `json:"dataRegion,omitempty" yaml:"dataRegion,omitempty"`
}

// IDTypePartner is the idType reported for partner principals.
const IDTypePartner = "partner"

// Tenant represents a customer account managed under the partner account.
type Tenant struct {
	ID            string `json:"id"                      yaml:"id"`
	Name          string `json:"name"                    yaml:"name"`
	DataRegion    string `json:"dataRegion"              yaml:"dataRegion"`
	DataGeography string `json:"dataGeography,omitempty" yaml:"dataGeography,omitempty"`
	BillingType   string `json:"billingType,omitempty"   yaml:"billingType,omitempty"`
	Status        string `json:"status"                  yaml:"status"`
	APIHost       string `json:"apiHost"                 yaml:"apiHost"`
}

// EndpointOS describes the operating system of a managed device.
type EndpointOS struct {
	IsServer     bool   `json:"isServer"               yaml:"isServer"`
	Platform     string `json:"platform"               yaml:"platform"`
	Name         string `json:"name"                   yaml:"name"`
	MajorVersion int    `json:"majorVersion,omitempty" yaml:"majorVersion,omitempty"`
	MinorVersion int    `json:"minorVersion,omitempty" yaml:"minorVersion,omitempty"`
	Build        int    `json:"build,omitempty"        yaml:"build,omitempty"`
}

// Endpoint represents a managed device registered under a tenant.
type Endpoint struct {
	ID         string     `json:"id"                   yaml:"id"`
	Type       string     `json:"type"                 yaml:"type"`
	Hostname   string     `json:"hostname"             yaml:"hostname"`
	Health     *Health    `json:"health,omitempty"     yaml:"health,omitempty"`
	OS         EndpointOS `json:"os"                   yaml:"os"`
	LastSeenAt string     `json:"lastSeenAt,omitempty" yaml:"lastSeenAt,omitempty"`
}

// Health is the per-endpoint health summary embedded in endpoint records.
type Health struct {
	Overall string `json:"overall" yaml:"overall"`
}

// PagesByOffset describes page-number pagination as used by the partner API.
type PagesByOffset struct {
	Current int `json:"current"           yaml:"current"`
	Size    int `json:"size"              yaml:"size"`
	Total   int `json:"total"             yaml:"total"`
	Items   int `json:"items,omitempty"   yaml:"items,omitempty"`
	MaxSize int `json:"maxSize,omitempty" yaml:"maxSize,omitempty"`
}

// PagesByKey describes cursor pagination as used by the regional APIs. An
// absent NextKey means the current page is the last one.
type PagesByKey struct {
	FromKey string `json:"fromKey,omitempty" yaml:"fromKey,omitempty"`
	NextKey string `json:"nextKey,omitempty" yaml:"nextKey,omitempty"`
	Size    int    `json:"size"              yaml:"size"`
	MaxSize int    `json:"maxSize,omitempty" yaml:"maxSize,omitempty"`
}

// ListByOffset represents one page of a page-numbered list response.
type ListByOffset[T any] struct {
	Items []T           `json:"items" yaml:"items"`
	Pages PagesByOffset `json:"pages" yaml:"pages"`
}

// ListByKey represents one page of a cursor-paginated list response.
type ListByKey[T any] struct {
	Items []T        `json:"items" yaml:"items"`
	Pages PagesByKey `json:"pages" yaml:"pages"`
}

// EndpointRow is the flattened per-endpoint record produced by the
// cross-tenant endpoint listing. LastActive is the date part of lastSeenAt.
type EndpointRow struct {
	TenantID   string `json:"tenant_id"           yaml:"tenant_id"`
	TenantName string `json:"tenant_name"         yaml:"tenant_name"`
	Hostname   string `json:"endpoint_hostname"   yaml:"endpoint_hostname"`
	OS         string `json:"endpoint_os"         yaml:"endpoint_os"`
	OSVersion  string `json:"endpoint_os_version" yaml:"endpoint_os_version"`
	LastActive string `json:"last_active"         yaml:"last_active"`
}

// HealthRow is the flattened per-tenant record produced by the cross-tenant
// health listing. Score fields hold one-decimal renderings or "N/A".
type HealthRow struct {
	TenantName       string `json:"tenant_name"             yaml:"tenant_name"`
	TenantID         string `json:"tenant_id"               yaml:"tenant_id"`
	Overall          string `json:"overall_score"           yaml:"overall_score"`
	Protection       string `json:"protection_score"        yaml:"protection_score"`
	Policy           string `json:"policy_score"            yaml:"policy_score"`
	Exclusions       string `json:"exclusions_score"        yaml:"exclusions_score"`
	TamperProtection string `json:"tamper_protection_score" yaml:"tamper_protection_score"`
	Firewall         string `json:"firewall_score"          yaml:"firewall_score"`
}
