// Package sophosclient provides the main entry point for creating Sophos
// Central partner API clients.
package sophosclient

import (
	"strings"

	"github.com/fivetwenty-io/sophos-partner-client/internal/client"
	"github.com/fivetwenty-io/sophos-partner-client/pkg/sophos"
)

// New creates a new Sophos Central partner API client.
//
// ClientID and ClientSecret are required; everything else falls back to the
// production Sophos Central endpoints. The OAuth2 token is fetched lazily on
// the first API call.
func New(config *sophos.Config) (sophos.Client, error) {
	if config == nil {
		return nil, sophos.ErrConfigRequired
	}

	config.PartnerAPIEndpoint = normalizeEndpoint(config.PartnerAPIEndpoint)

	cli, err := client.New(config)
	if err != nil {
		return nil, err
	}

	return cli, nil
}

// normalizeEndpoint trims a trailing slash and defaults the scheme to https.
func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
