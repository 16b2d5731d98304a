// Package commands implements the bmmsg CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"github.com/bristlemouth/bm-messages-go/pkg/inspect"
	"github.com/bristlemouth/bm-messages-go/pkg/log"
	"github.com/bristlemouth/bm-messages-go/pkg/log/logruslog"
	"github.com/bristlemouth/bm-messages-go/pkg/log/zaplog"
	"github.com/bristlemouth/bm-messages-go/pkg/messages"
	"github.com/bristlemouth/bm-messages-go/pkg/schema"
	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// Config holds the options shared by every command.
type Config struct {
	// LogPath captures codec events to a file; ".zst" compresses it.
	LogPath string

	// Events echoes codec events to stderr: "slog", "zap" or "logrus".
	Events string

	// Session labels the captured events. Empty means a new UUID.
	Session string

	// SchemaFiles hold dynamic message definitions.
	SchemaFiles []string

	// AllocLimit bounds the bytes one decode may allocate. Zero is no limit.
	AllocLimit int
}

// Env is the state a command runs with.
type Env struct {
	Out       io.Writer
	Session   string
	Formatter *inspect.Formatter

	opts    []wire.Option
	schemas map[string]*schema.Schema
	closers []func() error
}

// NewEnv builds the environment described by cfg. Close releases it.
func NewEnv(cfg Config, out io.Writer) (*Env, error) {
	env := &Env{
		Out:       out,
		Session:   cfg.Session,
		Formatter: inspect.NewFormatter(),
		schemas:   make(map[string]*schema.Schema),
	}
	if env.Session == "" {
		env.Session = uuid.NewString()
	}

	var loggers []log.Logger
	if cfg.LogPath != "" {
		fl, err := log.NewFileLogger(cfg.LogPath)
		if err != nil {
			return nil, fmt.Errorf("opening event log: %w", err)
		}
		loggers = append(loggers, fl)
		env.closers = append(env.closers, fl.Close)
	}
	if cfg.Events != "" {
		l, err := env.eventEcho(cfg.Events)
		if err != nil {
			env.Close()
			return nil, err
		}
		loggers = append(loggers, l)
	}
	if len(loggers) > 0 {
		env.opts = append(env.opts, wire.WithLogger(log.NewMultiLogger(loggers...)))
	}
	env.opts = append(env.opts, wire.WithSession(env.Session))
	if cfg.AllocLimit > 0 {
		env.opts = append(env.opts, wire.WithAllocLimit(cfg.AllocLimit))
	}

	for _, path := range cfg.SchemaFiles {
		if err := env.LoadSchemas(path); err != nil {
			env.Close()
			return nil, err
		}
	}
	return env, nil
}

func (e *Env) eventEcho(backend string) (log.Logger, error) {
	switch backend {
	case "slog":
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		return log.NewSlogAdapter(slog.New(h)), nil
	case "zap":
		zl, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, func() error {
			// Sync on a terminal stderr fails harmlessly.
			_ = zl.Sync()
			return nil
		})
		return zaplog.New(zl), nil
	case "logrus":
		ll := logrus.New()
		ll.SetOutput(os.Stderr)
		ll.SetLevel(logrus.DebugLevel)
		return logruslog.New(ll), nil
	default:
		return nil, fmt.Errorf("unknown event backend %q (slog, zap, logrus)", backend)
	}
}

// Options returns the codec options every encode and decode uses.
func (e *Env) Options() []wire.Option { return e.opts }

// LoadSchemas adds the dynamic messages defined in path. A dynamic message
// may not reuse a registered name.
func (e *Env) LoadSchemas(path string) error {
	list, err := schema.LoadFile(path)
	if err != nil {
		return err
	}
	for _, s := range list {
		if messages.Lookup(s.Name()) {
			return fmt.Errorf("%s: %s is a built-in message", path, s.Name())
		}
		e.schemas[s.Name()] = s
	}
	return nil
}

// Schemas returns the loaded dynamic schemas sorted by name.
func (e *Env) Schemas() []*schema.Schema {
	out := make([]*schema.Schema, 0, len(e.schemas))
	for _, s := range e.schemas {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ErrUnknownMessage is returned for names that are neither registered nor
// loaded from a schema file.
var ErrUnknownMessage = errors.New("unknown message")

// New returns a zero message by name: a registered message (matched
// case-insensitively) or a dynamic schema record.
func (e *Env) New(name string) (messages.Message, error) {
	if resolved, ok := inspect.ResolveMessageName(name); ok {
		return messages.New(resolved), nil
	}
	if s, ok := e.schemas[name]; ok {
		return s.New(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, name)
}

// Close flushes and closes the event log.
func (e *Env) Close() error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c())
	}
	e.closers = nil
	return errors.Join(errs...)
}
