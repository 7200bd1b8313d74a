package zaius

import (
	"context"
	"net/http"
)

// Response is the envelope of a successful call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte

	// Data is the decoded payload: *Object, []interface{}, a scalar, or nil
	// for an empty body. It is decoded once and shared by the objects built
	// from it.
	Data interface{}
}

// RequestID returns the request id reported by the server, if any.
func (r *Response) RequestID() string {
	if r == nil || r.Headers == nil {
		return ""
	}

	return r.Headers.Get("X-Request-Id")
}

// Requester executes a logical API operation. It returns the envelope and
// the API key the call was authenticated with, so that objects built from
// the result reuse it.
type Requester interface {
	Execute(ctx context.Context, method, path string, params interface{}, opts *RequestOptions) (*Response, string, error)
}
