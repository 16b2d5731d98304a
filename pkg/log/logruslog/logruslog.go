// Package logruslog adapts a logrus entry to the codec's log.Logger.
package logruslog

import (
	bmlog "github.com/bristlemouth/bm-messages-go/pkg/log"
	"github.com/sirupsen/logrus"
)

// Logger writes codec events to E. Errors go to Warn, everything else to Debug.
type Logger struct{ E *logrus.Entry }

// New wraps l.
func New(l *logrus.Logger) Logger { return Logger{E: logrus.NewEntry(l)} }

func (l Logger) Log(e bmlog.Event) {
	entry := l.E.WithFields(logrus.Fields(e.Fields()))
	if e.Category == bmlog.CategoryError {
		entry.Warn("codec")
		return
	}
	entry.Debug("codec")
}

var _ bmlog.Logger = Logger{}
