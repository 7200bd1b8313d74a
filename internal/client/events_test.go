package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

func TestEventsClient(t *testing.T) {
	t.Parallel()

	RunOperationTests(t, []TestOperation{
		{
			Name: "create single event",
			Call: func(ctx context.Context, c *Client) (*zaius.Object, error) {
				return c.Events().Create(ctx, zaius.Params{
					"type":        "pageview",
					"identifiers": zaius.Params{"email": "a@example.com"},
				}, nil)
			},
			ExpectedVerb: "POST",
			ExpectedPath: "/events",
			ExpectedBody: `{"type":"pageview","identifiers":{"email":"a@example.com"}}`,
			Response:     `{"title":"Accepted","status":202}`,
			StatusCode:   202,
		},
		{
			Name: "create batch",
			Call: func(ctx context.Context, c *Client) (*zaius.Object, error) {
				return c.Events().Create(ctx, []zaius.Params{
					{"type": "pageview", "identifiers": zaius.Params{"email": "a@example.com"}},
					{"type": "order", "identifiers": zaius.Params{"email": "b@example.com"}},
				}, nil)
			},
			ExpectedVerb: "POST",
			ExpectedPath: "/events",
			ExpectedBody: `[{"type":"pageview","identifiers":{"email":"a@example.com"}},{"type":"order","identifiers":{"email":"b@example.com"}}]`,
			Response:     `{"title":"Accepted"}`,
			StatusCode:   202,
		},
	})
}

func TestEventsClient_Subscribe(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/events", request.URL.Path)

		body, _ := io.ReadAll(request.Body)
		assert.Equal(t,
			`{"type":"list","action":"subscribe","identifiers":{"email":"a@example.com"},"data":{"list_id":"newsletter","campaign":"spring","source":"web"}}`,
			string(body))

		writer.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(writer, `{"title":"Accepted","status":202}`)
	}))
	defer server.Close()

	client := NewTestClient(t, server.URL)

	result, err := client.Events().Subscribe(context.Background(), &zaius.SubscribeRequest{
		ListID: "newsletter",
		Email:  "a@example.com",
		Fields: zaius.Params{"source": "web", "campaign": "spring"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Accepted", result.String("title"))
}

func TestEventsClient_SubscribeValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		request *zaius.SubscribeRequest
		wantErr error
	}{
		{"nil request", nil, zaius.ErrListIDRequired},
		{"missing list", &zaius.SubscribeRequest{Email: "a@example.com"}, zaius.ErrListIDRequired},
		{"missing email", &zaius.SubscribeRequest{ListID: "newsletter"}, zaius.ErrEmailRequired},
		{"invalid email", &zaius.SubscribeRequest{ListID: "newsletter", Email: "nope"}, zaius.ErrInvalidParams},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server, hits := countingServer(t, `{}`)
			client := NewTestClient(t, server.URL)

			_, err := client.Events().Subscribe(context.Background(), testCase.request, nil)
			require.ErrorIs(t, err, testCase.wantErr)
			assert.Equal(t, int32(0), hits.Load())
		})
	}
}
