package wire

import (
	"errors"
	"time"

	"github.com/bristlemouth/bm-messages-go/pkg/log"
)

// Option configures an Encoder or Decoder.
type Option func(*config)

type config struct {
	logger     log.Logger
	schema     string
	session    string
	allocLimit int
}

// WithLogger sends codec events to l.
func WithLogger(l log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithSchema labels events with the message name.
func WithSchema(name string) Option {
	return func(c *config) { c.schema = name }
}

// WithSession labels events with a session ID.
func WithSession(id string) Option {
	return func(c *config) { c.session = id }
}

// WithAllocLimit caps the bytes a Decoder may allocate for text and byte
// string values. Text is charged one extra byte per value for the
// terminator a device-side consumer stores. Zero means no limit.
func WithAllocLimit(n int) Option {
	return func(c *config) { c.allocLimit = n }
}

func newConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}

func (c *config) emit(ev log.Event) {
	if c.logger == nil {
		return
	}
	ev.Timestamp = time.Now()
	ev.SessionID = c.session
	ev.Schema = c.schema
	c.logger.Log(ev)
}

func (c *config) emitError(op log.Operation, err error) {
	if c.logger == nil {
		return
	}
	ev := log.Event{
		Operation: op,
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Message: err.Error()},
	}
	var e *Error
	if errors.As(err, &e) {
		ev.Key = e.Key
		ev.Error.Kind = e.Code.String()
		ev.Error.Context = e.Op
	}
	c.emit(ev)
}
