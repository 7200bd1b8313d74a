package zaius

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures returned by the request pipeline.
type ErrorKind int

const (
	// KindUnclassified is reported for errors the pipeline does not recognise.
	// They are returned to the caller unchanged.
	KindUnclassified ErrorKind = iota
	// KindConfiguration is a missing or malformed API key. Raised before any network I/O.
	KindConfiguration
	// KindAPI is a structured error payload returned by the API.
	KindAPI
	// KindIndeterminate is an error status whose payload is not in the expected shape.
	KindIndeterminate
	// KindNetwork is a failure where no response was received at all.
	KindNetwork
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAPI:
		return "api"
	case KindIndeterminate:
		return "indeterminate"
	case KindNetwork:
		return "network"
	default:
		return "unclassified"
	}
}

// Static errors for err113 compliance.
var (
	ErrMissingAPIKey     = errors.New("no API key provided")
	ErrAPIKeyWhitespace  = errors.New("API key contains whitespace")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInvalidLogLevel   = errors.New("log level should only be set to \"\", \"debug\", \"info\" or \"error\"")
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")
	ErrInvalidParams     = errors.New("invalid request parameters")
	ErrNoResourceURL     = errors.New("list object does not contain a resource URL")
	ErrNoRequester       = errors.New("object is not bound to a client")
	ErrIDRequired        = errors.New("an ID is required")
	ErrEmailRequired     = errors.New("an email is required")
	ErrListIDRequired    = errors.New("a list ID is required")
	ErrInvalidListData   = errors.New("list data must be an array of objects")
)

// AuthenticationError reports a missing or malformed API key. It is a
// configuration mistake and is never retried.
type AuthenticationError struct {
	Reason error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrMissingAPIKey):
		return "No API key provided. Set your API key using zaius.Config.APIKey or RequestOptions.APIKey."
	case errors.Is(e.Reason, ErrAPIKeyWhitespace):
		return "Your API key is invalid, as it contains whitespace."
	case e.Reason != nil:
		return "authentication error: " + e.Reason.Error()
	default:
		return "authentication error"
	}
}

// Unwrap returns the underlying reason.
func (e *AuthenticationError) Unwrap() error {
	return e.Reason
}

// APIError is a structured error returned by the API: the server was
// reachable and rejected the request with a payload carrying a title.
type APIError struct {
	Title       string          `json:"title"            yaml:"title"`
	HTTPStatus  int             `json:"status"           yaml:"status"`
	Detail      json.RawMessage `json:"detail,omitempty" yaml:"-"`
	HTTPBody    string          `json:"-"                yaml:"-"`
	HTTPHeaders http.Header     `json:"-"                yaml:"-"`

	// Response is the envelope the error was decoded from.
	Response *Response `json:"-" yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	status := ""
	if e.HTTPStatus != 0 {
		status = fmt.Sprintf("(Status %d) ", e.HTTPStatus)
	}

	if len(e.Detail) == 0 || string(e.Detail) == "null" {
		return status + e.Title
	}

	return fmt.Sprintf("%s%s: %s", status, e.Title, e.Detail)
}

// DecodeDetail unmarshals the detail payload into v.
func (e *APIError) DecodeDetail(v interface{}) error {
	if len(e.Detail) == 0 {
		return nil
	}

	err := json.Unmarshal(e.Detail, v)
	if err != nil {
		return fmt.Errorf("decoding error detail: %w", err)
	}

	return nil
}

// IndeterminateError is an error response whose body could not be
// interpreted: not JSON, or JSON without a title. The raw body is kept
// because it is the only debugging signal available.
type IndeterminateError struct {
	HTTPStatus  int
	HTTPBody    string
	HTTPHeaders http.Header

	// Err is the decode failure, if any.
	Err error
}

// Error implements the error interface.
func (e *IndeterminateError) Error() string {
	return fmt.Sprintf("(Status %d) Invalid response object from API: %q (HTTP response code was %d)",
		e.HTTPStatus, e.HTTPBody, e.HTTPStatus)
}

// Unwrap returns the decode failure.
func (e *IndeterminateError) Unwrap() error {
	return e.Err
}

// NetworkError is a failure where no response was received: timeouts,
// connection resets, DNS failures.
type NetworkError struct {
	Method   string
	Path     string
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error on %s %s after %d attempt(s): %v", e.Method, e.Path, e.Attempts, e.Err)
}

// Unwrap returns the transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err. Errors the pipeline did not classify
// report KindUnclassified.
func KindOf(err error) ErrorKind {
	var (
		authErr  *AuthenticationError
		apiErr   *APIError
		indetErr *IndeterminateError
		netErr   *NetworkError
	)

	switch {
	case err == nil:
		return KindUnclassified
	case errors.As(err, &authErr):
		return KindConfiguration
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &indetErr):
		return KindIndeterminate
	case errors.As(err, &netErr):
		return KindNetwork
	default:
		return KindUnclassified
	}
}

// HTTPStatus returns the status code carried by an API or indeterminate
// error, or 0.
func HTTPStatus(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatus
	}

	indetErr := &IndeterminateError{}
	if errors.As(err, &indetErr) {
		return indetErr.HTTPStatus
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return HTTPStatus(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return HTTPStatus(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return HTTPStatus(err) == http.StatusForbidden
}

// IsRateLimited checks if the error is a rate limiting error.
func IsRateLimited(err error) bool {
	return HTTPStatus(err) == http.StatusTooManyRequests
}
