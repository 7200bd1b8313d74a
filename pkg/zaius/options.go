package zaius

import (
	"maps"
	"net/http"
)

// Params are request parameters: a query string for GET, HEAD and DELETE,
// a JSON body otherwise.
type Params map[string]interface{}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}

	return maps.Clone(p)
}

// Merge returns a copy of p overlaid with other.
func (p Params) Merge(other Params) Params {
	out := make(Params, len(p)+len(other))
	maps.Copy(out, p)
	maps.Copy(out, other)

	return out
}

// RequestOptions are per-call overrides. Empty fields fall back to the
// client configuration. Values are never mutated by the pipeline; the
// helpers below return copies.
type RequestOptions struct {
	// APIKey overrides Config.APIKey.
	APIKey string
	// APIBase overrides Config.APIBase.
	APIBase string
	// Headers are applied after the standard headers and override them key by key.
	Headers map[string]string
	// HTTPClient overrides the connection used for this call.
	HTTPClient *http.Client
}

// Clone returns a deep copy of o. A nil receiver yields an empty value.
func (o *RequestOptions) Clone() *RequestOptions {
	if o == nil {
		return &RequestOptions{}
	}

	return &RequestOptions{
		APIKey:     o.APIKey,
		APIBase:    o.APIBase,
		Headers:    maps.Clone(o.Headers),
		HTTPClient: o.HTTPClient,
	}
}

// Merge returns a new value where explicit fields of override win over o.
// Headers are merged key by key.
func (o *RequestOptions) Merge(override *RequestOptions) *RequestOptions {
	out := o.Clone()
	if override == nil {
		return out
	}

	if override.APIKey != "" {
		out.APIKey = override.APIKey
	}

	if override.APIBase != "" {
		out.APIBase = override.APIBase
	}

	if override.HTTPClient != nil {
		out.HTTPClient = override.HTTPClient
	}

	if len(override.Headers) > 0 {
		if out.Headers == nil {
			out.Headers = make(map[string]string, len(override.Headers))
		}

		maps.Copy(out.Headers, override.Headers)
	}

	return out
}

// WithAPIKey returns a copy of o using key.
func (o *RequestOptions) WithAPIKey(key string) *RequestOptions {
	out := o.Clone()
	out.APIKey = key

	return out
}
