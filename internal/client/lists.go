package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// ListsClient implements zaius.ListsClient.
type ListsClient struct {
	requester zaius.Requester
}

// NewListsClient creates a new lists client.
func NewListsClient(requester zaius.Requester) *ListsClient {
	return &ListsClient{
		requester: requester,
	}
}

// List implements zaius.ListsClient.List. The returned page remembers the
// filters so that NextPage can replay them.
func (c *ListsClient) List(ctx context.Context, filters zaius.Params, opts *zaius.RequestOptions) (*zaius.ListObject, error) {
	resp, apiKey, err := c.requester.Execute(ctx, http.MethodGet, constants.APIPathLists, filters, opts)
	if err != nil {
		return nil, fmt.Errorf("listing lists: %w", err)
	}

	list, err := zaius.NewListObject(resp.Data, constants.APIPathLists, filters, opts.WithAPIKey(apiKey), c.requester)
	if err != nil {
		return nil, fmt.Errorf("parsing lists: %w", err)
	}

	return list, nil
}

// Create implements zaius.ListsClient.Create.
func (c *ListsClient) Create(ctx context.Context, params zaius.Params, opts *zaius.RequestOptions) (*zaius.Object, error) {
	resp, apiKey, err := c.requester.Execute(ctx, http.MethodPost, constants.APIPathLists, params, opts)
	if err != nil {
		return nil, fmt.Errorf("creating list: %w", err)
	}

	list, err := objectResult(resp, opts, apiKey)
	if err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}

	return list, nil
}

// Retrieve implements zaius.ListsClient.Retrieve.
func (c *ListsClient) Retrieve(ctx context.Context, id string, opts *zaius.RequestOptions) (*zaius.Object, error) {
	if strings.TrimSpace(id) == "" {
		return nil, zaius.ErrIDRequired
	}

	resp, apiKey, err := c.requester.Execute(ctx, http.MethodGet, constants.APIPathLists+"/"+url.PathEscape(id), nil, opts)
	if err != nil {
		return nil, fmt.Errorf("retrieving list: %w", err)
	}

	list, err := objectResult(resp, opts, apiKey)
	if err != nil {
		return nil, fmt.Errorf("parsing list: %w", err)
	}

	return list, nil
}
