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

// CustomersClient implements zaius.CustomersClient.
type CustomersClient struct {
	requester zaius.Requester
}

// NewCustomersClient creates a new customers client.
func NewCustomersClient(requester zaius.Requester) *CustomersClient {
	return &CustomersClient{
		requester: requester,
	}
}

// Get implements zaius.CustomersClient.Get. params identify the profile,
// e.g. {"email": "a@example.com"}.
func (c *CustomersClient) Get(ctx context.Context, params zaius.Params, opts *zaius.RequestOptions) (*zaius.Object, error) {
	resp, apiKey, err := c.requester.Execute(ctx, http.MethodGet, constants.APIPathProfiles, params, opts)
	if err != nil {
		return nil, fmt.Errorf("getting customer: %w", err)
	}

	customer, err := objectResult(resp, opts, apiKey)
	if err != nil {
		return nil, fmt.Errorf("parsing customer: %w", err)
	}

	return customer, nil
}

// Create implements zaius.CustomersClient.Create.
func (c *CustomersClient) Create(ctx context.Context, params zaius.Params, opts *zaius.RequestOptions) (*zaius.Object, error) {
	resp, apiKey, err := c.requester.Execute(ctx, http.MethodPost, constants.APIPathProfiles, params, opts)
	if err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}

	customer, err := objectResult(resp, opts, apiKey)
	if err != nil {
		return nil, fmt.Errorf("parsing customer response: %w", err)
	}

	return customer, nil
}

// Update implements zaius.CustomersClient.Update. Profiles are upserted, so
// this posts to the collection like Create.
func (c *CustomersClient) Update(ctx context.Context, params zaius.Params, opts *zaius.RequestOptions) (*zaius.Object, error) {
	resp, apiKey, err := c.requester.Execute(ctx, http.MethodPost, constants.APIPathProfiles, params, opts)
	if err != nil {
		return nil, fmt.Errorf("updating customer: %w", err)
	}

	customer, err := objectResult(resp, opts, apiKey)
	if err != nil {
		return nil, fmt.Errorf("parsing customer response: %w", err)
	}

	return customer, nil
}

// Retrieve implements zaius.CustomersClient.Retrieve.
func (c *CustomersClient) Retrieve(ctx context.Context, id string, opts *zaius.RequestOptions) (*zaius.Object, error) {
	if strings.TrimSpace(id) == "" {
		return nil, zaius.ErrIDRequired
	}

	path := constants.APIPathProfiles + "/" + url.PathEscape(id)

	resp, apiKey, err := c.requester.Execute(ctx, http.MethodGet, path, nil, opts)
	if err != nil {
		return nil, fmt.Errorf("retrieving customer: %w", err)
	}

	customer, err := objectResult(resp, opts, apiKey)
	if err != nil {
		return nil, fmt.Errorf("parsing customer: %w", err)
	}

	return customer, nil
}
