package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// Client executes logical API operations: it resolves credentials, encodes
// the request, dispatches it with network-failure retries and classifies
// the response. A Client holds only configuration and may be shared.
type Client struct {
	apiBase      string
	apiKey       string
	httpClient   *http.Client
	logger       zaius.Logger
	userAgent    string
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// Request is a logical operation.
type Request struct {
	Method  string
	Path    string
	Params  interface{}
	Options *zaius.RequestOptions
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the event sink.
func WithLogger(logger zaius.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig sets the number of additional attempts after a network
// failure and the backoff bounds.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithHTTPClient sets the connection used when a call does not supply one.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a new HTTP client. apiKey may be empty when every call
// supplies its own key.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	client := &Client{
		apiBase:      strings.TrimSuffix(baseURL, "/"),
		apiKey:       apiKey,
		userAgent:    DefaultUserAgent(),
		retryMax:     constants.DefaultRetryMax,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = cleanhttp.DefaultPooledClient()
		client.httpClient.Timeout = constants.DefaultHTTPTimeout
	}

	return client
}

// Execute performs one logical call and returns the success envelope with
// the API key the call was made with.
func (c *Client) Execute(ctx context.Context, method, path string, params interface{}, opts *zaius.RequestOptions) (*zaius.Response, string, error) {
	creds, err := ResolveCredentials(opts, c.apiKey, c.apiBase)
	if err != nil {
		return nil, "", err
	}

	httpClient := c.httpClient

	var extra map[string]string

	if opts != nil {
		extra = opts.Headers

		if opts.HTTPClient != nil {
			httpClient = opts.HTTPClient
		}
	}

	desc, err := Encode(method, resolveURL(creds.APIBase, path), params, creds.APIKey, c.userAgent, extra)
	if err != nil {
		return nil, "", err
	}

	lc := newLogContext(desc, path, creds, uuid.NewString(), c.retryMax)

	resp, err := c.dispatch(ctx, httpClient, desc, lc)
	if err != nil {
		return nil, "", err
	}

	return resp, creds.APIKey, nil
}

// resolveURL appends path to base verbatim. Absolute URLs are used as given.
func resolveURL(base, path string) string {
	if strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "http://") {
		return path
	}

	return strings.TrimSuffix(base, "/") + path
}

// dispatch sends the descriptor through a retryablehttp driver built for
// this call only. Only failures without a response are retried.
//
//nolint:funlen // The retry hooks share per-call state.
func (c *Client) dispatch(ctx context.Context, httpClient *http.Client, desc *Descriptor, lc LogContext) (*zaius.Response, error) {
	var body interface{}
	if desc.Body != nil {
		body = desc.Body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, desc.Method, desc.FullURL(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header = desc.Header.Clone()

	var (
		emit     = events{logger: c.logger}
		attempts int
		started  time.Time
	)

	driver := &retryablehttp.Client{
		HTTPClient:   httpClient,
		RetryMax:     c.retryMax,
		RetryWaitMin: c.retryWaitMin,
		RetryWaitMax: c.retryWaitMax,
		RequestLogHook: func(_ retryablehttp.Logger, _ *http.Request, attempt int) {
			attempts = attempt + 1
			started = time.Now()

			emit.request(lc.forAttempt(attempts))
		},
		CheckRetry: func(ctx context.Context, _ *http.Response, err error) (bool, error) {
			if err == nil {
				return false, nil
			}

			failure := lc.forAttempt(attempts)
			failure.Elapsed = time.Since(started)
			emit.requestError(failure, err)

			if ctx.Err() != nil {
				return false, nil
			}

			return isNetworkError(err), nil
		},
		Backoff: func(waitMin, waitMax time.Duration, attemptNum int, resp *http.Response) time.Duration {
			wait := retryablehttp.DefaultBackoff(waitMin, waitMax, attemptNum, resp)
			emit.retrying(lc.forAttempt(attempts), wait)

			return wait
		},
		ErrorHandler: func(resp *http.Response, err error, numTries int) (*http.Response, error) {
			attempts = numTries

			return resp, err
		},
	}

	httpResp, err := driver.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, desc, lc, attempts, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &zaius.NetworkError{Method: desc.Method, Path: lc.Path, Attempts: attempts, Err: fmt.Errorf("reading response body: %w", err)}
	}

	done := lc.forAttempt(attempts)
	done.Elapsed = time.Since(started)
	done.Status = httpResp.StatusCode
	done.RequestID = httpResp.Header.Get(constants.RequestIDHeader)
	emit.response(done, respBody)

	return Classify(httpResp.StatusCode, httpResp.Header, respBody)
}

func (c *Client) transportError(ctx context.Context, desc *Descriptor, lc LogContext, attempts int, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%s %s: %w: %w", desc.Method, lc.Path, ctxErr, err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w", desc.Method, lc.Path, err)
	}

	if isNetworkError(err) {
		return &zaius.NetworkError{Method: desc.Method, Path: lc.Path, Attempts: attempts, Err: err}
	}

	return fmt.Errorf("%s %s: %w", desc.Method, lc.Path, err)
}

// Do executes req with the client defaults and req.Options.
func (c *Client) Do(ctx context.Context, req *Request) (*zaius.Response, error) {
	resp, _, err := c.Execute(ctx, req.Method, req.Path, req.Params, req.Options)

	return resp, err
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, params interface{}) (*zaius.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Params: params})
}

// Head performs a HEAD request.
func (c *Client) Head(ctx context.Context, path string, params interface{}) (*zaius.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodHead, Path: path, Params: params})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*zaius.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Params: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*zaius.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Params: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*zaius.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Params: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, params interface{}) (*zaius.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Params: params})
}

// APIBase returns the default API root.
func (c *Client) APIBase() string {
	return c.apiBase
}
