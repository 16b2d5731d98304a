// Package zaplog adapts a zap logger to the codec's log.Logger.
package zaplog

import (
	bmlog "github.com/bristlemouth/bm-messages-go/pkg/log"
	"go.uber.org/zap"
)

// Logger writes codec events to L. Errors go to Warn, everything else to Debug.
type Logger struct{ L *zap.Logger }

// New wraps l.
func New(l *zap.Logger) Logger { return Logger{L: l} }

func (z Logger) Log(e bmlog.Event) {
	if e.Category == bmlog.CategoryError {
		z.L.Warn("codec", zf(e.Fields())...)
		return
	}
	z.L.Debug("codec", zf(e.Fields())...)
}

func zf(f bmlog.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}

var _ bmlog.Logger = Logger{}
