package sophos

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseErrorError(t *testing.T) {
	t.Run("with parsed API error", func(t *testing.T) {
		err := &ResponseError{
			StatusCode: http.StatusNotFound,
			API:        &APIError{ErrorCode: "resourceNotFound", Message: "no such tenant"},
		}

		assert.Equal(t, "HTTP 404: resourceNotFound: no such tenant", err.Error())
	})

	t.Run("with body snippet only", func(t *testing.T) {
		err := &ResponseError{StatusCode: http.StatusBadGateway, Snippet: "upstream timeout"}

		assert.Equal(t, "HTTP 502: upstream timeout", err.Error())
	})

	t.Run("with nothing but a status", func(t *testing.T) {
		err := &ResponseError{StatusCode: http.StatusServiceUnavailable}

		assert.Equal(t, "HTTP 503", err.Error())
	})

	t.Run("unwraps to the API error", func(t *testing.T) {
		apiErr := &APIError{ErrorCode: "badRequest"}
		err := fmt.Errorf("listing tenants: %w", &ResponseError{StatusCode: http.StatusBadRequest, API: apiErr})

		var unwrapped *APIError
		require.ErrorAs(t, err, &unwrapped)
		assert.Equal(t, "badRequest", unwrapped.ErrorCode)
	})
}

func TestIsUnauthorized(t *testing.T) {
	unauthorized := fmt.Errorf("wrapped: %w", &ResponseError{StatusCode: http.StatusUnauthorized})

	assert.True(t, IsUnauthorized(unauthorized))
	assert.False(t, IsUnauthorized(&ResponseError{StatusCode: http.StatusForbidden}))
	assert.False(t, IsUnauthorized(errors.New("plain")))
	assert.False(t, IsUnauthorized(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&ResponseError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsNotFound(&ResponseError{StatusCode: http.StatusGone}))
	assert.False(t, IsNotFound(nil))
}

func TestParseAPIError(t *testing.T) {
	t.Run("parses a Sophos error document", func(t *testing.T) {
		apiErr := ParseAPIError([]byte(`{"error": "unauthorized", "message": "token expired", "correlationId": "corr-1", "requestId": "req-1"}`))

		require.NotNil(t, apiErr)
		assert.Equal(t, "unauthorized", apiErr.ErrorCode)
		assert.Equal(t, "token expired", apiErr.Message)
		assert.Equal(t, "corr-1", apiErr.CorrelationID)
		assert.Equal(t, "req-1", apiErr.RequestID)
	})

	t.Run("non-error documents parse to nil", func(t *testing.T) {
		assert.Nil(t, ParseAPIError([]byte(`{"items": []}`)))
		assert.Nil(t, ParseAPIError([]byte(`not json`)))
		assert.Nil(t, ParseAPIError(nil))
	})
}
