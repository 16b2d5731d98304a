package zaplog

import (
	"testing"

	bmlog "github.com/bristlemouth/bm-messages-go/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(zap.New(core))

	l.Log(bmlog.Event{Operation: bmlog.OperationEncode, Category: bmlog.CategoryMessage, Size: 117})
	l.Log(bmlog.Event{
		Operation: bmlog.OperationDecode,
		Category:  bmlog.CategoryError,
		Error:     &bmlog.ErrorEventData{Kind: "TRAILING_DATA", Message: "1 byte after map"},
	})

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "codec", entries[0].Message)
	assert.Equal(t, int64(117), entries[0].ContextMap()["size"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "TRAILING_DATA", entries[1].ContextMap()["error_kind"])
}
