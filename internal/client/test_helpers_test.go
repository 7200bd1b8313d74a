package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

const testAPIKey = "test-key-1234"

// NewTestClient creates a new test client with the given base URL.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(&zaius.Config{APIKey: testAPIKey, APIBase: baseURL})
	require.NoError(t, err)

	return client
}

// TestOperation represents a facade call against a stub server.
type TestOperation struct {
	Name          string
	Call          func(context.Context, *Client) (*zaius.Object, error)
	ExpectedVerb  string
	ExpectedPath  string
	ExpectedQuery string
	// ExpectedBody is compared as JSON when set.
	ExpectedBody string
	StatusCode   int
	Response     string
	WantErr      bool
	ErrMessage   string
	// Check inspects the returned object.
	Check func(*testing.T, *zaius.Object)
}

// RunOperationTests runs a series of facade operation tests.
func RunOperationTests(t *testing.T, tests []TestOperation) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedVerb, request.Method)
				assert.Equal(t, testCase.ExpectedPath, request.URL.EscapedPath())
				assert.Equal(t, testCase.ExpectedQuery, request.URL.RawQuery)
				assert.Equal(t, testAPIKey, request.Header.Get("x-api-key"))

				body, _ := io.ReadAll(request.Body)
				if testCase.ExpectedBody != "" {
					assert.JSONEq(t, testCase.ExpectedBody, string(body))
				}

				status := testCase.StatusCode
				if status == 0 {
					status = http.StatusOK
				}

				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(status)
				_, _ = io.WriteString(writer, testCase.Response)
			}))
			defer server.Close()

			client := NewTestClient(t, server.URL)

			result, err := testCase.Call(context.Background(), client)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, testAPIKey, result.Options().APIKey)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}

// countingServer counts the requests it receives and answers every one
// with body.
func countingServer(t *testing.T, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)
		writer.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(writer, body)
	}))
	t.Cleanup(server.Close)

	return server, &hits
}
