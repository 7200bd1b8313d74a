// Package natslog provides a zaius.Logger that publishes pipeline events
// as JSON messages on a NATS subject, so request logs from many processes
// can be collected in one place.
package natslog

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/zaius-go/internal/constants"
	"github.com/fivetwenty-io/zaius-go/pkg/zaius"
)

// Static errors for err113 compliance.
var (
	ErrPublisherRequired = errors.New("publisher is required")
	ErrURLRequired       = errors.New("NATS URL is required")
)

// Publisher is the subset of *nats.Conn used by Logger.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Event is the JSON document published for each log call.
type Event struct {
	Time   time.Time              `json:"time"`
	Level  string                 `json:"level"`
	Msg    string                 `json:"msg"`
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// Logger publishes events to a subject. It is safe for concurrent use.
// Publish failures are counted and otherwise dropped: logging never fails
// a request.
type Logger struct {
	publisher Publisher
	subject   string
	now       func() time.Time

	mu       sync.Mutex
	failures int
	lastErr  error
}

var _ zaius.Logger = (*Logger)(nil)

// New returns a Logger publishing on subject. An empty subject uses
// the default.
func New(publisher Publisher, subject string) (*Logger, error) {
	if publisher == nil {
		return nil, ErrPublisherRequired
	}

	if subject == "" {
		subject = constants.DefaultNATSSubject
	}

	return &Logger{publisher: publisher, subject: subject, now: time.Now}, nil
}

// Connect dials url and returns a Logger publishing on subject plus a
// function that flushes pending messages and closes the connection.
func Connect(url, subject string, opts ...nats.Option) (*Logger, func(), error) {
	if url == "" {
		return nil, nil, ErrURLRequired
	}

	opts = append([]nats.Option{nats.Name("zaius-go")}, opts...)

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	logger, err := New(conn, subject)
	if err != nil {
		conn.Close()

		return nil, nil, err
	}

	closer := func() {
		drainErr := conn.Drain()
		if drainErr != nil {
			conn.Close()
		}
	}

	return logger, closer, nil
}

// Subject returns the subject events are published on.
func (l *Logger) Subject() string {
	return l.subject
}

// Failures returns the number of events that could not be published and
// the last publish error.
func (l *Logger) Failures() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.failures, l.lastErr
}

// Debug implements zaius.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.publish("debug", msg, fields)
}

// Info implements zaius.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.publish("info", msg, fields)
}

// Warn implements zaius.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.publish("warn", msg, fields)
}

// Error implements zaius.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.publish("error", msg, fields)
}

func (l *Logger) publish(level, msg string, fields map[string]interface{}) {
	data, err := json.Marshal(Event{Time: l.now().UTC(), Level: level, Msg: msg, Fields: fields})
	if err == nil {
		err = l.publisher.Publish(l.subject, data)
	}

	if err != nil {
		l.mu.Lock()
		l.failures++
		l.lastErr = err
		l.mu.Unlock()
	}
}
