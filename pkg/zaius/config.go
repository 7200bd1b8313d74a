package zaius

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Version is the library version reported in the User-Agent header.
const Version = "1.2.0"

// LogLevel selects which pipeline events the default console sink prints.
// It has no effect when Config.Logger is set.
type LogLevel string

const (
	// LogLevelNone disables the default console sink.
	LogLevelNone LogLevel = ""
	// LogLevelError prints request failures only.
	LogLevelError LogLevel = "error"
	// LogLevelInfo prints request and response summaries.
	LogLevelInfo LogLevel = "info"
	// LogLevelDebug additionally prints request and response bodies.
	LogLevelDebug LogLevel = "debug"
)

// ParseLogLevel converts a configuration string into a LogLevel.
func ParseLogLevel(s string) (LogLevel, error) {
	switch LogLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LogLevelNone:
		return LogLevelNone, nil
	case LogLevelError:
		return LogLevelError, nil
	case LogLevelInfo:
		return LogLevelInfo, nil
	case LogLevelDebug:
		return LogLevelDebug, nil
	default:
		return LogLevelNone, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}

// Logger receives pipeline events. Implementations must be safe for
// concurrent use when one client is shared across goroutines.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config is the immutable client configuration. It replaces process-wide
// settings: build one per client and pass it to zaiusclient.New.
//
// # Credentials
//
// APIKey is the default key sent in the x-api-key header. It may be left
// empty when every call supplies RequestOptions.APIKey; calls that resolve no
// key fail with an AuthenticationError before any network I/O.
//
// # Retries
//
// Only failures where no response was received are retried. RetryMax is the
// number of additional attempts and defaults to 0, so a call performs exactly
// one attempt unless retries are enabled explicitly. Backoff is exponential
// between RetryWaitMin and RetryWaitMax.
//
// # Logging
//
// When Logger is set it receives every event and LogLevel is ignored.
// Otherwise LogLevel gates a console sink on stderr.
type Config struct {
	// APIKey: default API key.
	APIKey string `json:"api_key" yaml:"api_key" mapstructure:"api_key" validate:"-"`
	// APIBase: API root, e.g. "https://api.zaius.com/v3". Paths are appended verbatim.
	APIBase string `json:"api_base" yaml:"api_base" mapstructure:"api_base" validate:"omitempty,url"`
	// LogLevel: minimum severity printed by the console sink.
	LogLevel LogLevel `json:"log_level" yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info error"`
	// Logger: optional external sink.
	Logger Logger `json:"-" yaml:"-" mapstructure:"-" validate:"-"`
	// UserAgent: overrides the default User-Agent header.
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" mapstructure:"user_agent"`
	// HTTPClient: connection used for every call unless overridden per call.
	// When nil a pooled client is created.
	HTTPClient *http.Client `json:"-" yaml:"-" mapstructure:"-" validate:"-"`
	// HTTPTimeout: timeout of the default pooled client.
	HTTPTimeout time.Duration `json:"http_timeout" yaml:"http_timeout" mapstructure:"http_timeout" validate:"gte=0"`
	// RetryMax: additional attempts after a network failure.
	RetryMax int `json:"retry_max" yaml:"retry_max" mapstructure:"retry_max" validate:"gte=0,lte=10"`
	// RetryWaitMin: minimum backoff between attempts.
	RetryWaitMin time.Duration `json:"retry_wait_min" yaml:"retry_wait_min" mapstructure:"retry_wait_min" validate:"gte=0"`
	// RetryWaitMax: maximum backoff between attempts.
	RetryWaitMax time.Duration `json:"retry_wait_max" yaml:"retry_wait_max" mapstructure:"retry_wait_max" validate:"gte=0"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}

			return name
		})
	})

	return validate
}

// Validate checks field constraints. Missing API keys are not reported here
// since they may be supplied per call.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	err := getValidator().Struct(c)
	if err == nil {
		if c.RetryWaitMax > 0 && c.RetryWaitMin > c.RetryWaitMax {
			return fmt.Errorf("%w: retry_wait_min must not exceed retry_wait_max", ErrInvalidConfig)
		}

		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}

	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
}
