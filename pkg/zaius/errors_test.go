package zaius

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticationError_Error(t *testing.T) {
	t.Parallel()

	missing := &AuthenticationError{Reason: ErrMissingAPIKey}
	assert.Contains(t, missing.Error(), "No API key provided")
	assert.ErrorIs(t, missing, ErrMissingAPIKey)

	whitespace := &AuthenticationError{Reason: ErrAPIKeyWhitespace}
	assert.Equal(t, "Your API key is invalid, as it contains whitespace.", whitespace.Error())
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name:     "title only",
			err:      &APIError{Title: "Bad Request", HTTPStatus: 400},
			expected: "(Status 400) Bad Request",
		},
		{
			name:     "with detail",
			err:      &APIError{Title: "Not Found", HTTPStatus: 404, Detail: json.RawMessage(`{"reason":"no such id"}`)},
			expected: `(Status 404) Not Found: {"reason":"no such id"}`,
		},
		{
			name:     "null detail",
			err:      &APIError{Title: "Conflict", HTTPStatus: 409, Detail: json.RawMessage(`null`)},
			expected: "(Status 409) Conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAPIError_DecodeDetail(t *testing.T) {
	t.Parallel()

	err := &APIError{Title: "Not Found", Detail: json.RawMessage(`{"reason":"no such id"}`)}

	var detail struct {
		Reason string `json:"reason"`
	}

	require.NoError(t, err.DecodeDetail(&detail))
	assert.Equal(t, "no such id", detail.Reason)

	empty := &APIError{Title: "Not Found"}
	require.NoError(t, empty.DecodeDetail(&detail))
}

func TestIndeterminateError_Error(t *testing.T) {
	t.Parallel()

	err := &IndeterminateError{HTTPStatus: 500, HTTPBody: "internal error"}
	assert.Equal(t, `(Status 500) Invalid response object from API: "internal error" (HTTP response code was 500)`, err.Error())
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"nil", nil, KindUnclassified},
		{"configuration", &AuthenticationError{Reason: ErrMissingAPIKey}, KindConfiguration},
		{"api", fmt.Errorf("getting customer: %w", &APIError{Title: "x"}), KindAPI},
		{"indeterminate", &IndeterminateError{HTTPStatus: 502}, KindIndeterminate},
		{"network", &NetworkError{Err: io.EOF, Attempts: 1}, KindNetwork},
		{"cancelled", fmt.Errorf("GET /profiles: %w", context.Canceled), KindUnclassified},
		{"other", errors.New("boom"), KindUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unclassified", KindUnclassified.String())
	assert.Equal(t, "configuration", KindConfiguration.String())
	assert.Equal(t, "api", KindAPI.String())
	assert.Equal(t, "indeterminate", KindIndeterminate.String())
	assert.Equal(t, "network", KindNetwork.String())
}

func TestStatusHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFound(&APIError{HTTPStatus: 404}))
	assert.True(t, IsUnauthorized(&APIError{HTTPStatus: 401}))
	assert.True(t, IsForbidden(fmt.Errorf("wrapped: %w", &APIError{HTTPStatus: 403})))
	assert.True(t, IsRateLimited(&IndeterminateError{HTTPStatus: 429}))
	assert.False(t, IsNotFound(&NetworkError{Err: io.EOF}))
	assert.Equal(t, 0, HTTPStatus(errors.New("boom")))
}

func TestNetworkError_Unwrap(t *testing.T) {
	t.Parallel()

	err := &NetworkError{Method: "GET", Path: "/profiles", Attempts: 3, Err: io.ErrUnexpectedEOF}
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "after 3 attempt(s)")
}
