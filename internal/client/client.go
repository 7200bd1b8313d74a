package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/internal/http"
	"github.com/fivetwenty-io/zaius-go/internal/logging"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired = errors.New("config is required")
)

// Client implements the zaius.Client interface.
type Client struct {
	httpClient *http.Client

	// Resource clients
	customers     zaius.CustomersClient
	events        zaius.EventsClient
	subscriptions zaius.SubscriptionsClient
	lists         zaius.ListsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *zaius.Config, logger zaius.Logger) []http.Option {
	var httpOpts []http.Option

	if logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(logger))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	retryWaitMin := constants.DefaultRetryWaitMin
	retryWaitMax := constants.DefaultRetryWaitMax

	if config.RetryWaitMin > 0 {
		retryWaitMin = config.RetryWaitMin
	}

	if config.RetryWaitMax > 0 {
		retryWaitMax = config.RetryWaitMax
	}

	httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))

	connection := config.HTTPClient
	if connection == nil {
		connection = cleanhttp.DefaultPooledClient()

		connection.Timeout = constants.DefaultHTTPTimeout
		if config.HTTPTimeout > 0 {
			connection.Timeout = config.HTTPTimeout
		}
	}

	httpOpts = append(httpOpts, http.WithHTTPClient(connection))

	return httpOpts
}

// selectLogger returns the external sink when configured and the console
// sink gated by the log level otherwise.
func selectLogger(config *zaius.Config) zaius.Logger {
	if config.Logger != nil {
		return config.Logger
	}

	return logging.Default(config.LogLevel)
}

// New creates a new Zaius API client. The config is expected to be
// validated and normalised by the caller.
func New(config *zaius.Config) (*Client, error) {
	if config == nil {
		return nil, ErrConfigRequired
	}

	apiBase := config.APIBase
	if apiBase == "" {
		apiBase = constants.DefaultAPIBase
	}

	logger := selectLogger(config)
	httpClient := http.NewClient(apiBase, config.APIKey, createHTTPClientOptions(config, logger)...)

	client := &Client{
		httpClient: httpClient,
	}

	client.initializeResourceClients()

	return client, nil
}

// Execute implements zaius.Requester.
func (c *Client) Execute(ctx context.Context, method, path string, params interface{}, opts *zaius.RequestOptions) (*zaius.Response, string, error) {
	return c.httpClient.Execute(ctx, method, path, params, opts)
}

// Request implements zaius.Client.Request.
func (c *Client) Request(ctx context.Context, method, path string, params interface{}, opts *zaius.RequestOptions) (*zaius.Object, error) {
	resp, apiKey, err := c.Execute(ctx, method, path, params, opts)
	if err != nil {
		return nil, fmt.Errorf("requesting %s %s: %w", method, path, err)
	}

	obj, err := objectResult(resp, opts, apiKey)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %s response: %w", method, path, err)
	}

	return obj, nil
}

// Customers implements zaius.Client.Customers.
func (c *Client) Customers() zaius.CustomersClient {
	return c.customers
}

// Events implements zaius.Client.Events.
func (c *Client) Events() zaius.EventsClient {
	return c.events
}

// Subscriptions implements zaius.Client.Subscriptions.
func (c *Client) Subscriptions() zaius.SubscriptionsClient {
	return c.subscriptions
}

// Lists implements zaius.Client.Lists.
func (c *Client) Lists() zaius.ListsClient {
	return c.lists
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.customers = NewCustomersClient(c)
	c.events = NewEventsClient(c)
	c.subscriptions = NewSubscriptionsClient(c)
	c.lists = NewListsClient(c)
}

// objectResult converts the envelope of a call into an Object bound to the
// call options and the key the call was made with. An empty body yields an
// empty object. Array and scalar payloads are exposed under "data".
func objectResult(resp *zaius.Response, opts *zaius.RequestOptions, apiKey string) (*zaius.Object, error) {
	callOpts := opts.WithAPIKey(apiKey)

	payload := resp.Data

	switch data := resp.Data.(type) {
	case nil:
		payload = zaius.NewObject()
	case *zaius.Object:
	default:
		wrapped := zaius.NewObject()
		wrapped.Set("data", data)
		payload = wrapped
	}

	obj, err := zaius.ObjectFrom(payload, callOpts)
	if err != nil {
		return nil, fmt.Errorf("building object: %w", err)
	}

	return obj, nil
}
