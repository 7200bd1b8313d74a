package client

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// SubscriptionsClient implements zaius.SubscriptionsClient.
type SubscriptionsClient struct {
	requester zaius.Requester
}

// NewSubscriptionsClient creates a new subscriptions client.
func NewSubscriptionsClient(requester zaius.Requester) *SubscriptionsClient {
	return &SubscriptionsClient{
		requester: requester,
	}
}

func sortedKeys(params zaius.Params) []string {
	return slices.Sorted(maps.Keys(params))
}

func (c *SubscriptionsClient) post(ctx context.Context, body interface{}, opts *zaius.RequestOptions, action string) (*zaius.Object, error) {
	resp, apiKey, err := c.requester.Execute(ctx, http.MethodPost, constants.APIPathSubscriptions, body, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	result, err := objectResult(resp, opts, apiKey)
	if err != nil {
		return nil, fmt.Errorf("parsing subscriptions response: %w", err)
	}

	return result, nil
}

// List implements zaius.SubscriptionsClient.List. params usually carry the
// email whose subscriptions are returned.
func (c *SubscriptionsClient) List(ctx context.Context, params zaius.Params, opts *zaius.RequestOptions) (*zaius.Object, error) {
	resp, apiKey, err := c.requester.Execute(ctx, http.MethodGet, constants.APIPathSubscriptions, params, opts)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}

	result, err := objectResult(resp, opts, apiKey)
	if err != nil {
		return nil, fmt.Errorf("parsing subscriptions: %w", err)
	}

	return result, nil
}

// UpdateOptIn implements zaius.SubscriptionsClient.UpdateOptIn.
func (c *SubscriptionsClient) UpdateOptIn(ctx context.Context, params zaius.Params, opts *zaius.RequestOptions) (*zaius.Object, error) {
	return c.post(ctx, params, opts, "updating opt-in")
}

// Update implements zaius.SubscriptionsClient.Update.
func (c *SubscriptionsClient) Update(ctx context.Context, request *zaius.SubscriptionUpdate, opts *zaius.RequestOptions) (*zaius.Object, error) {
	if request == nil || strings.TrimSpace(request.Email) == "" {
		return nil, zaius.ErrEmailRequired
	}

	if strings.TrimSpace(request.ListID) == "" {
		return nil, zaius.ErrListIDRequired
	}

	return c.post(ctx, request, opts, "updating subscription")
}

// updateListBody expands a multi-list update into the flat array the
// endpoint expects: for every list an opt-in record followed by a
// subscription record.
func updateListBody(request *zaius.UpdateListRequest) []interface{} {
	body := make([]interface{}, 0, 2*len(request.Lists))

	for _, list := range request.Lists {
		optIn := zaius.NewObject()
		optIn.Set("opted_in", request.OptedIn)
		optIn.Set("email", request.Email)

		subscription := zaius.NewObject()
		subscription.Set("list_id", list.ID)
		subscription.Set("email", request.Email)
		subscription.Set("subscribed", list.Subscribed)

		body = append(body, optIn, subscription)
	}

	return body
}

// UpdateList implements zaius.SubscriptionsClient.UpdateList.
func (c *SubscriptionsClient) UpdateList(ctx context.Context, request *zaius.UpdateListRequest, opts *zaius.RequestOptions) (*zaius.Object, error) {
	if request == nil || strings.TrimSpace(request.Email) == "" {
		return nil, zaius.ErrEmailRequired
	}

	return c.post(ctx, updateListBody(request), opts, "updating list subscriptions")
}

// OptOut implements zaius.SubscriptionsClient.OptOut. The caller's params
// are not modified.
func (c *SubscriptionsClient) OptOut(ctx context.Context, params zaius.Params, opts *zaius.RequestOptions) (*zaius.Object, error) {
	body := params.Merge(zaius.Params{"opted_in": false})

	return c.post(ctx, body, opts, "opting out")
}

// OptIn implements zaius.SubscriptionsClient.OptIn. The caller's params are
// not modified.
func (c *SubscriptionsClient) OptIn(ctx context.Context, params zaius.Params, opts *zaius.RequestOptions) (*zaius.Object, error) {
	body := params.Merge(zaius.Params{"opted_in": true})

	return c.post(ctx, body, opts, "opting in")
}
