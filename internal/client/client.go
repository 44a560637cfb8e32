// Package client implements the sophos.Client interface over the internal
// HTTP transport.
package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/sophos-partner-client/internal/auth"
	"github.com/fivetwenty-io/sophos-partner-client/internal/http"
	"github.com/fivetwenty-io/sophos-partner-client/pkg/sophos"
)

// Client implements sophos.Client.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	config       *sophos.Config
	logger       sophos.Logger

	whoami    *sophos.WhoAmI
	tenants   *TenantsClient
	endpoints *EndpointsClient
	health    *HealthClient
}

// New creates a new Sophos partner API client. Credential presence is
// validated here so that a misconfigured process fails before any network
// call is attempted.
func New(config *sophos.Config) (*Client, error) {
	if config == nil {
		return nil, sophos.ErrConfigRequired
	}

	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, sophos.ErrMissingCredentials
	}

	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = sophos.DefaultTokenURL
	}

	tokenManager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
		TokenURL:     tokenURL,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
	})

	return NewWithTokenManager(config, tokenManager)
}

// NewWithTokenManager creates a client with a custom token manager. Used by
// tests to bypass the identity service.
func NewWithTokenManager(config *sophos.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, sophos.ErrConfigRequired
	}

	if tokenManager == nil {
		return nil, sophos.ErrNoTokenManager
	}

	apiEndpoint := config.PartnerAPIEndpoint
	if apiEndpoint == "" {
		apiEndpoint = sophos.DefaultPartnerAPIEndpoint
	}

	httpClient := http.NewClient(apiEndpoint, tokenManager, httpOptions(config)...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		config:       config,
		logger:       config.Logger,
	}

	pagination := paginationOptions(config)
	client.tenants = NewTenantsClient(httpClient, client.PartnerID, pagination)
	client.endpoints = NewEndpointsClient(httpClient, client.tenants, config.Logger, pagination)
	client.health = NewHealthClient(httpClient, client.tenants, config.Logger)

	return client, nil
}

func httpOptions(config *sophos.Config) []http.Option {
	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		opts = append(opts, http.WithRetryConfig(config.RetryMax, config.RetryWaitMin, config.RetryWaitMax))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	return opts
}

func paginationOptions(config *sophos.Config) *sophos.PaginationOptions {
	opts := sophos.DefaultPaginationOptions()

	if config.PageSize > 0 {
		opts.PageSize = config.PageSize
	}

	if config.MaxPages > 0 {
		opts.MaxPages = config.MaxPages
	}

	return opts
}

// WhoAmI implements sophos.Client.WhoAmI. The response is cached for the
// lifetime of the client; the principal cannot change mid-process.
func (c *Client) WhoAmI(ctx context.Context) (*sophos.WhoAmI, error) {
	if c.whoami != nil {
		return c.whoami, nil
	}

	resp, err := c.httpClient.Get(ctx, "/whoami/v1", nil)
	if err != nil {
		return nil, fmt.Errorf("getting whoami: %w", err)
	}

	var whoami sophos.WhoAmI

	err = json.Unmarshal(resp.Body, &whoami)
	if err != nil {
		return nil, fmt.Errorf("parsing whoami response: %w", err)
	}

	c.whoami = &whoami

	return c.whoami, nil
}

// PartnerID implements sophos.Client.PartnerID.
func (c *Client) PartnerID(ctx context.Context) (string, error) {
	whoami, err := c.WhoAmI(ctx)
	if err != nil {
		return "", err
	}

	if whoami.IDType != sophos.IDTypePartner {
		return "", fmt.Errorf("%w: idType is %q", sophos.ErrNotPartner, whoami.IDType)
	}

	return whoami.ID, nil
}

// Tenants implements sophos.Client.Tenants.
func (c *Client) Tenants() sophos.TenantsClient {
	return c.tenants
}

// Endpoints implements sophos.Client.Endpoints.
func (c *Client) Endpoints() sophos.EndpointsClient {
	return c.endpoints
}

// Health implements sophos.Client.Health.
func (c *Client) Health() sophos.HealthClient {
	return c.health
}

// loggerAdapter adapts sophos.Logger to http.Logger.
type loggerAdapter struct {
	logger sophos.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
