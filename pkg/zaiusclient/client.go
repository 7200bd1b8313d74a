package zaiusclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/zaius-go/internal/client"
	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// New creates a new Zaius API client. The config is copied; the caller's
// value is never modified.
func New(config *zaius.Config) (zaius.Client, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is required", zaius.ErrInvalidConfig)
	}

	normalized, err := normalize(*config)
	if err != nil {
		return nil, err
	}

	err = normalized.Validate()
	if err != nil {
		return nil, err
	}

	cli, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// normalize fills defaults and canonicalises the API base and log level.
func normalize(config zaius.Config) (zaius.Config, error) {
	apiBase := strings.TrimSpace(config.APIBase)
	if apiBase == "" {
		apiBase = constants.DefaultAPIBase
	}

	apiBase = strings.TrimSuffix(apiBase, "/")
	if !strings.HasPrefix(apiBase, "http://") && !strings.HasPrefix(apiBase, "https://") {
		apiBase = "https://" + apiBase
	}

	config.APIBase = apiBase

	level, err := zaius.ParseLogLevel(string(config.LogLevel))
	if err != nil {
		return config, fmt.Errorf("%w: %w", zaius.ErrInvalidConfig, err)
	}

	config.LogLevel = level

	if config.HTTPTimeout == 0 {
		config.HTTPTimeout = constants.DefaultHTTPTimeout
	}

	if config.RetryWaitMin == 0 {
		config.RetryWaitMin = constants.DefaultRetryWaitMin
	}

	if config.RetryWaitMax == 0 {
		config.RetryWaitMax = constants.DefaultRetryWaitMax
	}

	return config, nil
}

// NewWithAPIKey creates a client for the default API base.
func NewWithAPIKey(apiKey string) (zaius.Client, error) {
	return New(&zaius.Config{APIKey: apiKey})
}

// NewWithEndpoint creates a client for apiBase.
func NewWithEndpoint(apiBase, apiKey string) (zaius.Client, error) {
	return New(&zaius.Config{APIBase: apiBase, APIKey: apiKey})
}
