package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// EventsClient implements zaius.EventsClient.
type EventsClient struct {
	requester zaius.Requester
}

// NewEventsClient creates a new events client.
func NewEventsClient(requester zaius.Requester) *EventsClient {
	return &EventsClient{
		requester: requester,
	}
}

// Create implements zaius.EventsClient.Create. events is a single event
// object or a slice of them.
func (c *EventsClient) Create(ctx context.Context, events interface{}, opts *zaius.RequestOptions) (*zaius.Object, error) {
	resp, apiKey, err := c.requester.Execute(ctx, http.MethodPost, constants.APIPathEvents, events, opts)
	if err != nil {
		return nil, fmt.Errorf("creating events: %w", err)
	}

	result, err := objectResult(resp, opts, apiKey)
	if err != nil {
		return nil, fmt.Errorf("parsing events response: %w", err)
	}

	return result, nil
}

// subscribeEvent builds the list subscribe event body. Fields are merged
// into the event data after list_id.
func subscribeEvent(request *zaius.SubscribeRequest) *zaius.Object {
	data := zaius.NewObject()
	data.Set("list_id", request.ListID)

	for _, key := range sortedKeys(request.Fields) {
		data.Set(key, request.Fields[key])
	}

	identifiers := zaius.NewObject()
	identifiers.Set("email", request.Email)

	body := zaius.NewObject()
	body.Set("type", "list")
	body.Set("action", "subscribe")
	body.Set("identifiers", identifiers)
	body.Set("data", data)

	return body
}

// Subscribe implements zaius.EventsClient.Subscribe.
func (c *EventsClient) Subscribe(ctx context.Context, request *zaius.SubscribeRequest, opts *zaius.RequestOptions) (*zaius.Object, error) {
	err := request.Validate()
	if err != nil {
		return nil, fmt.Errorf("subscribing to list: %w", err)
	}

	resp, apiKey, err := c.requester.Execute(ctx, http.MethodPost, constants.APIPathEvents, subscribeEvent(request), opts)
	if err != nil {
		return nil, fmt.Errorf("subscribing %s to list %s: %w", request.Email, request.ListID, err)
	}

	result, err := objectResult(resp, opts, apiKey)
	if err != nil {
		return nil, fmt.Errorf("parsing subscribe response: %w", err)
	}

	return result, nil
}
