// Package constants holds shared defaults for the Sophos Central clients.
package constants

import "time"

// HTTP transport defaults.
const (
	// DefaultHTTPTimeout bounds individual API requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultUserAgent identifies this client to the Sophos Central APIs.
	DefaultUserAgent = "sophos-partner-client/1.0"
)

// Retry defaults for transient API failures (429, 5xx).
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 2

	// DefaultRetryWaitMin is the minimum wait between retries.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax is the maximum wait between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// OAuth2 defaults.
const (
	// TokenScope is the scope requested for partner access tokens.
	TokenScope = "token"
)
