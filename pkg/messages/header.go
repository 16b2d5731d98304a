package messages

import "github.com/bristlemouth/bm-messages-go/pkg/wire"

// Version is the current version of every sensor message.
const Version = 1

// SensorHeader is the common prefix of sensor messages. It is not nested on
// the wire: its four pairs are inlined in the message map.
type SensorHeader struct {
	Version             uint32
	ReadingTimeUTCMs    uint64
	ReadingUptimeMillis uint64
	SensorReadingTimeMs uint64
}

// headerFieldCount is the number of pairs the header contributes.
const headerFieldCount = 4

// Fields returns the header's fields bound to h.
func (h *SensorHeader) Fields() []wire.Field {
	return []wire.Field{
		wire.Uint32("version", &h.Version),
		wire.Uint64("reading_time_utc_ms", &h.ReadingTimeUTCMs),
		wire.Uint64("reading_uptime_millis", &h.ReadingUptimeMillis),
		wire.Uint64("sensor_reading_time_ms", &h.SensorReadingTimeMs),
	}
}

// withHeader returns a strict table of h's fields followed by fields.
func withHeader(h *SensorHeader, fields ...wire.Field) wire.Table {
	all := make([]wire.Field, 0, headerFieldCount+len(fields))
	all = append(all, h.Fields()...)
	return wire.Table{StrictOrder: true, Fields: append(all, fields...)}
}

func strict(fields ...wire.Field) wire.Table {
	return wire.Table{StrictOrder: true, Fields: fields}
}
