package sophos

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an error body returned by the Sophos Central APIs.
type APIError struct {
	ErrorCode     string `json:"error"                   yaml:"error"`
	Message       string `json:"message"                 yaml:"message"`
	CorrelationID string `json:"correlationId,omitempty" yaml:"correlationId,omitempty"`
	RequestID     string `json:"requestId,omitempty"     yaml:"requestId,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
	}

	return e.ErrorCode
}

// ResponseError represents a non-2xx response from the API. It always carries
// the HTTP status code and a snippet of the response body; API is set when the
// body parsed as a Sophos error document.
type ResponseError struct {
	StatusCode int
	Snippet    string
	API        *APIError
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if e.API != nil {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.API.Error())
	}

	if e.Snippet != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Snippet)
	}

	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Unwrap exposes the parsed API error, if any.
func (e *ResponseError) Unwrap() error {
	if e.API != nil {
		return e.API
	}

	return nil
}

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrMissingCredentials   = errors.New("missing API credentials: set SOPHOS_CLIENT_ID and SOPHOS_CLIENT_SECRET")
	ErrTokenRequestFailed   = errors.New("token request failed")
	ErrMalformedTokenBody   = errors.New("token response has no access_token")
	ErrNotPartner           = errors.New("authenticated principal is not a partner account")
	ErrTooManyPages         = errors.New("pagination exceeded maximum page count")
	ErrRepeatedPageKey      = errors.New("pagination cursor repeated a previous value")
	ErrTenantMissingAPIHost = errors.New("tenant has no API host")
	ErrNoTokenManager       = errors.New("no token manager configured")
	ErrUnknownMenuSelection = errors.New("unknown menu selection")
)

// IsUnauthorized checks whether the error is an authentication failure.
func IsUnauthorized(err error) bool {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsNotFound checks whether the error is a not found response.
func IsNotFound(err error) bool {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode == http.StatusNotFound
	}

	return false
}

// ParseAPIError parses an error response body. Returns nil when the body does
// not look like a Sophos error document.
func ParseAPIError(data []byte) *APIError {
	var apiErr APIError

	err := json.Unmarshal(data, &apiErr)
	if err != nil || apiErr.ErrorCode == "" {
		return nil
	}

	return &apiErr
}
