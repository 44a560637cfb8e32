package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/fivetwenty-io/sophos-partner-client/internal/http"
	"github.com/fivetwenty-io/sophos-partner-client/pkg/sophos"
)

// HealthClient implements sophos.HealthClient.
type HealthClient struct {
	httpClient *http.Client
	tenants    *TenantsClient
	logger     sophos.Logger
}

// NewHealthClient creates a new health client.
func NewHealthClient(httpClient *http.Client, tenants *TenantsClient, logger sophos.Logger) *HealthClient {
	return &HealthClient{
		httpClient: httpClient,
		tenants:    tenants,
		logger:     logger,
	}
}

// Get implements sophos.HealthClient.Get. The health check is a single
// document per tenant, served by the tenant's regional API host.
func (c *HealthClient) Get(ctx context.Context, tenant sophos.Tenant) (*sophos.HealthCheck, error) {
	if tenant.APIHost == "" {
		return nil, fmt.Errorf("%w: tenant %q", sophos.ErrTenantMissingAPIHost, tenant.ID)
	}

	headers := map[string]string{"X-Tenant-ID": tenant.ID}
	path := tenant.APIHost + "/account-health-check/v1/health-check"

	resp, err := c.httpClient.GetWithHeaders(ctx, path, nil, headers)
	if err != nil {
		return nil, fmt.Errorf("getting health check for tenant %q: %w", tenant.ID, err)
	}

	var health sophos.HealthCheck

	err = json.Unmarshal(resp.Body, &health)
	if err != nil {
		return nil, fmt.Errorf("parsing health check: %w", err)
	}

	return &health, nil
}

// ListAll implements sophos.HealthClient.ListAll with the same skip-and-warn
// policy as the endpoint listing.
func (c *HealthClient) ListAll(ctx context.Context) ([]sophos.HealthRow, error) {
	tenants, err := c.tenants.List(ctx)
	if err != nil {
		return nil, err
	}

	var rows []sophos.HealthRow

	for _, tenant := range tenants {
		if tenant.ID == "" || tenant.APIHost == "" {
			continue
		}

		health, err := c.Get(ctx, tenant)
		if err != nil {
			c.warn("failed to get health check for tenant", tenant, err)

			continue
		}

		rows = append(rows, healthRow(tenant, health.Summarize()))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].TenantName) < strings.ToLower(rows[j].TenantName)
	})

	return rows, nil
}

func (c *HealthClient) warn(msg string, tenant sophos.Tenant, err error) {
	if c.logger == nil {
		return
	}

	c.logger.Warn(msg, map[string]interface{}{
		"tenant": tenant.Name,
		"error":  err.Error(),
	})
}

func healthRow(tenant sophos.Tenant, summary sophos.HealthSummary) sophos.HealthRow {
	return sophos.HealthRow{
		TenantName:       tenant.Name,
		TenantID:         tenant.ID,
		Overall:          sophos.FormatScore(summary.Overall),
		Protection:       sophos.FormatScore(summary.Protection),
		Policy:           sophos.FormatScore(summary.Policy),
		Exclusions:       sophos.FormatScore(summary.Exclusions),
		TamperProtection: sophos.FormatScore(summary.TamperProtection),
		Firewall:         sophos.FormatScore(summary.Firewall),
	}
}
