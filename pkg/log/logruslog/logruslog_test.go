package logruslog

import (
	"testing"

	bmlog "github.com/bristlemouth/bm-messages-go/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	l := New(base)

	l.Log(bmlog.Event{Operation: bmlog.OperationDecode, Category: bmlog.CategoryUnknownKey, Key: "depth_m"})
	l.Log(bmlog.Event{
		Operation: bmlog.OperationEncode,
		Category:  bmlog.CategoryError,
		Error:     &bmlog.ErrorEventData{Kind: "UNSUPPORTED_FIELD_TYPE", Message: "invalid kind"},
	})

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, logrus.DebugLevel, entries[0].Level)
	assert.Equal(t, "depth_m", entries[0].Data["key"])
	assert.Equal(t, "UNKNOWN_KEY", entries[0].Data["category"])

	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, "UNSUPPORTED_FIELD_TYPE", entries[1].Data["error_kind"])
}
