package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes codec events to an slog.Logger.
// Useful for development when you want to see codec events in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Errors are logged at Warn level,
// everything else at Debug.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("op", event.Operation.String()),
		slog.String("category", event.Category.String()),
	}

	if event.SessionID != "" {
		attrs = append(attrs, slog.String("session_id", event.SessionID))
	}
	if event.Schema != "" {
		attrs = append(attrs, slog.String("schema", event.Schema))
	}
	if event.Key != "" {
		attrs = append(attrs, slog.String("key", event.Key))
	}

	level := slog.LevelDebug
	switch event.Category {
	case CategoryMessage:
		attrs = append(attrs, slog.Int("size", event.Size))
	case CategoryOverflow:
		attrs = append(attrs,
			slog.Int("size", event.Size),
			slog.Int("extra_bytes", event.ExtraBytes),
		)
	case CategoryError:
		level = slog.LevelWarn
	}

	if event.Error != nil {
		attrs = append(attrs,
			slog.String("error_kind", event.Error.Kind),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "codec", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
