package messages

import (
	"fmt"
	"strings"

	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// PowerReadingType says where a power reading was taken.
type PowerReadingType uint8

const (
	PowerSource PowerReadingType = iota
	PowerLoad
	PowerMonitor
)

func (t PowerReadingType) String() string {
	switch t {
	case PowerSource:
		return "SOURCE"
	case PowerLoad:
		return "LOAD"
	case PowerMonitor:
		return "MONITOR"
	default:
		return fmt.Sprintf("PowerReadingType(%d)", uint8(t))
	}
}

// PowerStatus is a set of power fault flags. The zero value is OKAY.
type PowerStatus uint64

const (
	StatusOkay         PowerStatus = 0
	StatusUndervoltage PowerStatus = 1 << 0
	StatusOvervoltage  PowerStatus = 1 << 1
	StatusUndercurrent PowerStatus = 1 << 2
	StatusOvercurrent  PowerStatus = 1 << 3
)

var statusNames = []struct {
	flag PowerStatus
	name string
}{
	{StatusUndervoltage, "UNDERVOLTAGE"},
	{StatusOvervoltage, "OVERVOLTAGE"},
	{StatusUndercurrent, "UNDERCURRENT"},
	{StatusOvercurrent, "OVERCURRENT"},
}

func (s PowerStatus) String() string {
	if s == StatusOkay {
		return "OKAY"
	}
	var parts []string
	rest := s
	for _, n := range statusNames {
		if s&n.flag != 0 {
			parts = append(parts, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint64(rest)))
	}
	return strings.Join(parts, "|")
}

// PowerReading is a single voltage and current sample.
type PowerReading struct {
	Header           SensorHeader
	PowerReadingType PowerReadingType
	VoltageV         float64
	CurrentMA        float64
	Status           PowerStatus
}

func (*PowerReading) Name() string { return "PowerReading" }

func (m *PowerReading) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Unsigned("power_reading_type", &m.PowerReadingType),
		wire.Float64("voltage_v", &m.VoltageV),
		wire.Float64("current_ma", &m.CurrentMA),
		wire.Unsigned("status", &m.Status),
	)
}

// PowerReadingAverages summarizes the power readings of one averaging
// window.
type PowerReadingAverages struct {
	Header                 SensorHeader
	PowerReadingType       PowerReadingType
	Status                 uint8
	NumSamples             uint32
	AveragingWindowLengthS float64
	VoltageVAvg            float64
	VoltageVMin            float64
	VoltageVMax            float64
	VoltageVStdev          float64
	CurrentAAvg            float64
	CurrentAMin            float64
	CurrentAMax            float64
	CurrentAStdev          float64
}

func (*PowerReadingAverages) Name() string { return "PowerReadingAverages" }

// Table checks num_samples: a count too large for 32 bits is an error, not
// a truncated count. The status flags narrow silently.
func (m *PowerReadingAverages) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Unsigned("power_reading_type", &m.PowerReadingType),
		wire.Uint8("status", &m.Status),
		wire.Uint32("num_samples", &m.NumSamples).Checked(),
		wire.Float64("averaging_window_length_s", &m.AveragingWindowLengthS),
		wire.Float64("voltage_v_avg", &m.VoltageVAvg),
		wire.Float64("voltage_v_min", &m.VoltageVMin),
		wire.Float64("voltage_v_max", &m.VoltageVMax),
		wire.Float64("voltage_v_stdev", &m.VoltageVStdev),
		wire.Float64("current_a_avg", &m.CurrentAAvg),
		wire.Float64("current_a_min", &m.CurrentAMin),
		wire.Float64("current_a_max", &m.CurrentAMax),
		wire.Float64("current_a_stdev", &m.CurrentAStdev),
	)
}

// Flags returns Status as a PowerStatus.
func (m *PowerReadingAverages) Flags() PowerStatus { return PowerStatus(m.Status) }

// PowerInfoReply reports a node's power schedule.
type PowerInfoReply struct {
	TotalOnS     uint32
	RemainingOnS uint32
	UpcomingOffS uint32
}

func (*PowerInfoReply) Name() string { return "PowerInfoReply" }

func (m *PowerInfoReply) Table() wire.Table {
	return strict(
		wire.Uint32("total_on_s", &m.TotalOnS),
		wire.Uint32("remaining_on_s", &m.RemainingOnS),
		wire.Uint32("upcoming_off_s", &m.UpcomingOffS),
	)
}
