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

// PartnerIDFunc resolves the partner identifier for partner-scoped calls.
type PartnerIDFunc func(ctx context.Context) (string, error)

// TenantsClient implements sophos.TenantsClient.
type TenantsClient struct {
	httpClient *http.Client
	partnerID  PartnerIDFunc
	pagination *sophos.PaginationOptions
}

// NewTenantsClient creates a new tenants client.
func NewTenantsClient(httpClient *http.Client, partnerID PartnerIDFunc, pagination *sophos.PaginationOptions) *TenantsClient {
	return &TenantsClient{
		httpClient: httpClient,
		partnerID:  partnerID,
		pagination: pagination,
	}
}

// List implements sophos.TenantsClient.List. The partner tenant listing uses
// page-number pagination; results are sorted case-insensitively by name.
func (c *TenantsClient) List(ctx context.Context) ([]sophos.Tenant, error) {
	partnerID, err := c.partnerID(ctx)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{"X-Partner-ID": partnerID}

	tenants, err := sophos.FetchAllByOffset(ctx, func(ctx context.Context, page int) ([]sophos.Tenant, int, error) {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("pageSize", strconv.Itoa(c.pagination.PageSize))

		resp, err := c.httpClient.GetWithHeaders(ctx, "/partner/v1/tenants", query, headers)
		if err != nil {
			return nil, 0, fmt.Errorf("listing tenants: %w", err)
		}

		var list sophos.ListByOffset[sophos.Tenant]

		err = json.Unmarshal(resp.Body, &list)
		if err != nil {
			return nil, 0, fmt.Errorf("parsing tenants list: %w", err)
		}

		return list.Items, list.Pages.Total, nil
	}, c.pagination)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tenants, func(i, j int) bool {
		return strings.ToLower(tenants[i].Name) < strings.ToLower(tenants[j].Name)
	})

	return tenants, nil
}
