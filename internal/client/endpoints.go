package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/sophos-partner-client/internal/http"
	"github.com/fivetwenty-io/sophos-partner-client/pkg/sophos"
)

// EndpointsClient implements sophos.EndpointsClient.
type EndpointsClient struct {
	httpClient *http.Client
	tenants    *TenantsClient
	logger     sophos.Logger
	pagination *sophos.PaginationOptions
}

// NewEndpointsClient creates a new endpoints client.
func NewEndpointsClient(httpClient *http.Client, tenants *TenantsClient, logger sophos.Logger, pagination *sophos.PaginationOptions) *EndpointsClient {
	return &EndpointsClient{
		httpClient: httpClient,
		tenants:    tenants,
		logger:     logger,
		pagination: pagination,
	}
}

// ListForTenant implements sophos.EndpointsClient.ListForTenant. Endpoint
// listings are served by the tenant's regional API host and paginate with an
// opaque pageFromKey cursor.
func (c *EndpointsClient) ListForTenant(ctx context.Context, tenant sophos.Tenant) ([]sophos.Endpoint, error) {
	if tenant.APIHost == "" {
		return nil, fmt.Errorf("%w: tenant %q", sophos.ErrTenantMissingAPIHost, tenant.ID)
	}

	headers := map[string]string{"X-Tenant-ID": tenant.ID}
	path := tenant.APIHost + "/endpoint/v1/endpoints"

	return sophos.FetchAllByKey(ctx, func(ctx context.Context, fromKey string) ([]sophos.Endpoint, string, error) {
		query := url.Values{}
		query.Set("pageSize", strconv.Itoa(c.pagination.PageSize))

		if fromKey != "" {
			query.Set("pageFromKey", fromKey)
		}

		resp, err := c.httpClient.GetWithHeaders(ctx, path, query, headers)
		if err != nil {
			return nil, "", fmt.Errorf("listing endpoints for tenant %q: %w", tenant.ID, err)
		}

		var list sophos.ListByKey[sophos.Endpoint]

		err = json.Unmarshal(resp.Body, &list)
		if err != nil {
			return nil, "", fmt.Errorf("parsing endpoints list: %w", err)
		}

		return list.Items, list.Pages.NextKey, nil
	}, c.pagination)
}

// ListAll implements sophos.EndpointsClient.ListAll. Tenants are fetched
// sequentially; one tenant's failure is logged and skipped so a single bad
// region cannot sink the whole listing.
func (c *EndpointsClient) ListAll(ctx context.Context) ([]sophos.EndpointRow, error) {
	tenants, err := c.tenants.List(ctx)
	if err != nil {
		return nil, err
	}

	var rows []sophos.EndpointRow

	for _, tenant := range tenants {
		if tenant.ID == "" || tenant.APIHost == "" {
			continue
		}

		endpoints, err := c.ListForTenant(ctx, tenant)
		if err != nil {
			c.warn("failed to list endpoints for tenant", tenant, err)

			continue
		}

		for _, endpoint := range endpoints {
			rows = append(rows, endpointRow(tenant, endpoint))
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := strings.ToLower(rows[i].TenantName), strings.ToLower(rows[j].TenantName)
		if ti != tj {
			return ti < tj
		}

		return strings.ToLower(rows[i].Hostname) < strings.ToLower(rows[j].Hostname)
	})

	return rows, nil
}

func (c *EndpointsClient) warn(msg string, tenant sophos.Tenant, err error) {
	if c.logger == nil {
		return
	}

	c.logger.Warn(msg, map[string]interface{}{
		"tenant": tenant.Name,
		"error":  err.Error(),
	})
}

func endpointRow(tenant sophos.Tenant, endpoint sophos.Endpoint) sophos.EndpointRow {
	row := sophos.EndpointRow{
		TenantID:   tenant.ID,
		TenantName: tenant.Name,
		Hostname:   orNA(endpoint.Hostname),
		OS:         orNA(endpoint.OS.Name),
		OSVersion:  "N/A",
		LastActive: "N/A",
	}

	if endpoint.OS.Build > 0 {
		row.OSVersion = strconv.Itoa(endpoint.OS.Build)
	}

	if endpoint.LastSeenAt != "" {
		// Date part only; lastSeenAt is RFC 3339.
		row.LastActive, _, _ = strings.Cut(endpoint.LastSeenAt, "T")
	}

	return row
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}

	return value
}
