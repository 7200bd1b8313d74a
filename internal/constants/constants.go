package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API endpoint and wire protocol.
const (
	// DefaultAPIBase is the API root used when none is configured.
	DefaultAPIBase = "https://api.zaius.com/v3"

	// APIKeyHeader carries the API key on every request.
	APIKeyHeader = "x-api-key"

	// RequestIDHeader is the response header carrying the server request id.
	RequestIDHeader = "X-Request-Id"

	// ContentTypeJSON is sent with every request.
	ContentTypeJSON = "application/json"

	// UserAgentPrefix identifies the API generation in the User-Agent header.
	UserAgentPrefix = "Zaius/v1"

	// UserAgentBinding identifies the language binding in the User-Agent header.
	UserAgentBinding = "GoBindings"
)

// API path constants.
const (
	// APIPathProfiles is the customer profiles collection.
	APIPathProfiles = "/profiles"

	// APIPathEvents is the events collection.
	APIPathEvents = "/events"

	// APIPathLists is the marketing lists collection.
	APIPathLists = "/lists"

	// APIPathSubscriptions is the list subscriptions collection.
	APIPathSubscriptions = "/lists/subscriptions"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default number of additional attempts after a
	// network failure.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Concurrency limits.
const (
	// DefaultConcurrencyLimit limits concurrent lookups in the CLI.
	DefaultConcurrencyLimit = 3
)

// Format constants.
const (
	// FormatJSON represents JSON output format.
	FormatJSON = "json"

	// FormatYAML represents YAML output format.
	FormatYAML = "yaml"

	// FormatTable represents table output format.
	FormatTable = "table"
)

// Display constants.
const (
	// NotAvailable is displayed for missing values.
	NotAvailable = "N/A"

	// MaskedSecret replaces secrets in output.
	MaskedSecret = "***"

	// KeySuffixLength is the number of API key characters kept when redacting.
	KeySuffixLength = 4
)

// NATS log sink defaults.
const (
	// DefaultNATSSubject is the subject pipeline events are published on.
	DefaultNATSSubject = "zaius.requests"
)
