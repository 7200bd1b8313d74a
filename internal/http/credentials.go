package http

import (
	"strings"
	"unicode"

	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// Credentials are the effective API key and base URL of one call.
type Credentials struct {
	APIKey  string
	APIBase string
}

// ResolveCredentials picks the per-call key and base URL when given and
// falls back to the client defaults otherwise. It fails with an
// AuthenticationError when no key is resolvable or the key contains
// whitespace.
func ResolveCredentials(opts *zaius.RequestOptions, defaultKey, defaultBase string) (Credentials, error) {
	creds := Credentials{APIKey: defaultKey, APIBase: defaultBase}

	if opts != nil {
		if opts.APIKey != "" {
			creds.APIKey = opts.APIKey
		}

		if opts.APIBase != "" {
			creds.APIBase = opts.APIBase
		}
	}

	if creds.APIKey == "" {
		return Credentials{}, &zaius.AuthenticationError{Reason: zaius.ErrMissingAPIKey}
	}

	if strings.ContainsFunc(creds.APIKey, unicode.IsSpace) {
		return Credentials{}, &zaius.AuthenticationError{Reason: zaius.ErrAPIKeyWhitespace}
	}

	return creds, nil
}
