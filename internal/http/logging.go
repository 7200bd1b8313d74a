package http

import (
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// LogContext carries the fields attached to the events of one attempt.
// It is a value type: every attempt works on its own copy.
type LogContext struct {
	Account    string
	APIVersion string
	Method     string
	Path       string
	URL        string
	Query      url.Values
	Body       []byte
	RequestID  string
	CallID     string
	Attempt    int
	NumRetries int
	Elapsed    time.Duration
	Status     int
}

func newLogContext(desc *Descriptor, path string, creds Credentials, callID string, numRetries int) LogContext {
	return LogContext{
		Account:    RedactKey(creds.APIKey),
		APIVersion: APIVersion(creds.APIBase),
		Method:     desc.Method,
		Path:       path,
		URL:        desc.URL,
		Query:      desc.Query,
		Body:       desc.Body,
		CallID:     callID,
		NumRetries: numRetries,
	}
}

func (lc LogContext) forAttempt(attempt int) LogContext {
	lc.Attempt = attempt

	return lc
}

// RedactKey keeps the last characters of an API key so that log lines can
// be attributed to an account without leaking the key.
func RedactKey(key string) string {
	if len(key) <= constants.KeySuffixLength {
		return constants.MaskedSecret
	}

	return constants.MaskedSecret + key[len(key)-constants.KeySuffixLength:]
}

// APIVersion returns the last path segment of an API base URL, e.g. "v3".
func APIVersion(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	return segments[len(segments)-1]
}

// events emits pipeline events to an optional sink.
type events struct {
	logger zaius.Logger
}

func (e events) request(lc LogContext) {
	if e.logger == nil {
		return
	}

	e.logger.Info("Request to Zaius", map[string]interface{}{
		"account":     lc.Account,
		"api_version": lc.APIVersion,
		"method":      lc.Method,
		"num_retries": lc.NumRetries,
		"path":        lc.Path,
		"attempt":     lc.Attempt,
		"call_id":     lc.CallID,
	})

	e.logger.Debug("Request details", map[string]interface{}{
		"body":         string(lc.Body),
		"query_params": lc.Query.Encode(),
		"call_id":      lc.CallID,
	})
}

func (e events) response(lc LogContext, body []byte) {
	if e.logger == nil {
		return
	}

	e.logger.Info("Response from Zaius", map[string]interface{}{
		"account":     lc.Account,
		"api_version": lc.APIVersion,
		"elapsed":     lc.Elapsed.Seconds(),
		"method":      lc.Method,
		"path":        lc.Path,
		"request_id":  lc.RequestID,
		"url":         lc.URL,
		"status":      lc.Status,
		"attempt":     lc.Attempt,
		"call_id":     lc.CallID,
	})

	e.logger.Debug("Response details", map[string]interface{}{
		"body":       string(body),
		"request_id": lc.RequestID,
		"call_id":    lc.CallID,
	})
}

func (e events) requestError(lc LogContext, err error) {
	if e.logger == nil {
		return
	}

	e.logger.Error("Request error", map[string]interface{}{
		"elapsed":       lc.Elapsed.Seconds(),
		"error_message": err.Error(),
		"method":        lc.Method,
		"path":          lc.Path,
		"attempt":       lc.Attempt,
		"call_id":       lc.CallID,
	})
}

func (e events) retrying(lc LogContext, wait time.Duration) {
	if e.logger == nil {
		return
	}

	e.logger.Warn("Retrying request", map[string]interface{}{
		"method":  lc.Method,
		"path":    lc.Path,
		"attempt": lc.Attempt,
		"wait":    wait.String(),
		"call_id": lc.CallID,
	})
}
