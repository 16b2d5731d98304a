package inspect

import (
	"math"
	"strings"
	"testing"

	"github.com/bristlemouth/bm-messages-go/pkg/messages"
	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

func TestFormatValue(t *testing.T) {
	f := &Formatter{}

	tests := []struct {
		name     string
		value    any
		unit     string
		expected string
	}{
		{
			name:     "double with unit",
			value:    18.93,
			unit:     "°C",
			expected: "18.93 °C",
		},
		{
			name:     "float keeps shortest form",
			value:    float32(0.1),
			unit:     "s",
			expected: "0.1 s",
		},
		{
			name:     "current in mA",
			value:    1500.0,
			unit:     "mA",
			expected: "1500 mA (1.500 A)",
		},
		{
			name:     "pressure in mbar",
			value:    1000.0,
			unit:     "mbar",
			expected: "1000 mbar (100.00 kPa)",
		},
		{
			name:     "seconds as duration",
			value:    uint64(3600),
			unit:     "s",
			expected: "3600 s (1h0m0s)",
		},
		{
			name:     "zero seconds",
			value:    uint64(0),
			unit:     "s",
			expected: "0 s",
		},
		{
			name:     "uint8 no unit",
			value:    uint8(3),
			expected: "3",
		},
		{
			name:     "NaN",
			value:    math.NaN(),
			unit:     "dbar",
			expected: "NaN",
		},
		{
			name:     "bool true",
			value:    true,
			expected: "true",
		},
		{
			name:     "string",
			value:    "rec_0001.wav",
			expected: "\"rec_0001.wav\"",
		},
		{
			name:     "bytes",
			value:    []byte{0x01, 0xab},
			expected: "0x01ab",
		},
		{
			name:     "empty bytes",
			value:    []byte{},
			expected: "(empty)",
		},
		{
			name:     "sample list",
			value:    []float64{0.5, 1},
			expected: "[0.5, 1]",
		},
		{
			name:     "nil",
			value:    nil,
			expected: "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.FormatValue(tt.value, tt.unit)
			if got != tt.expected {
				t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.unit, got, tt.expected)
			}
		})
	}
}

func TestUnitForKey(t *testing.T) {
	tests := []struct {
		key  string
		unit string
	}{
		{"temperature_deg_c", "°C"},
		{"temperature_mean_degC", "°C"},
		{"conductivity_ms_cm", "mS/cm"},
		{"sound_speed_m_s", "m/s"},
		{"abs_speed_cm_s", "cm/s"},
		{"abs_speed_stddev_cm_s", "cm/s"},
		{"water_density_kg_m3", "kg/m³"},
		{"heading_deg_m", "°M"},
		{"tilt_x_deg", "°"},
		{"direction_circ_mean_rad", "rad"},
		{"pressure_deci_bar", "dbar"},
		{"barometric_pressure_mbar", "mbar"},
		{"reading_uptime_millis", "ms"},
		{"reading_time_utc_ms", "ms"},
		{"wipe_time_sec", "s"},
		{"total_on_s", "s"},
		{"current_ma", "mA"},
		{"start1_mA", "mA"},
		{"voltage_v", "V"},
		{"voltage_v_stdev", "V"},
		{"current_a_avg", "A"},
		{"do_mg_per_l", "mg/L"},
		{"do_saturation_pct", "%"},
		{"salinity_psu", "PSU"},
		{"transducer_strength_db", "dB"},
		{"dt_report", "s"},
		{"df", "Hz"},
		{"num_samples", ""},
		{"git_sha", ""},
		{"cbor_data", ""},
		{"ping_count", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := UnitForKey(tt.key); got != tt.unit {
				t.Errorf("UnitForKey(%q) = %q, want %q", tt.key, got, tt.unit)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(0); got != "1970-01-01T00:00:00Z" {
		t.Errorf("FormatTimestamp(0) = %q", got)
	}
	if got := FormatTimestamp(123456789); got != "1970-01-02T10:17:36.789Z" {
		t.Errorf("FormatTimestamp(123456789) = %q", got)
	}
	if got := FormatTimestamp(math.MaxUint64); got != "out of range" {
		t.Errorf("FormatTimestamp(max) = %q", got)
	}
}

func softData() *messages.SoftData {
	return &messages.SoftData{
		Header: messages.SensorHeader{
			Version:             messages.Version,
			ReadingTimeUTCMs:    123456789,
			ReadingUptimeMillis: 987654321,
			SensorReadingTimeMs: 0xdeadc0de,
		},
		TemperatureDegC: 18.93,
	}
}

func TestFormatTable(t *testing.T) {
	m := softData()
	got := NewFormatter().FormatTable(m.Name(), m.Table())

	expected := strings.Join([]string{
		"SoftData:",
		"  version: 1",
		"  reading_time_utc_ms: 1970-01-02T10:17:36.789Z (123456789)",
		"  reading_uptime_millis: 987654321 ms",
		"  sensor_reading_time_ms: 3735929054 ms",
		"  temperature_deg_c: 18.93 °C",
		"",
	}, "\n")
	if got != expected {
		t.Errorf("FormatTable() =\n%s\nwant:\n%s", got, expected)
	}
}

func TestFormatRowsShowTypes(t *testing.T) {
	var x uint32 = 7
	f := &Formatter{ShowTypes: true, IndentWidth: 4}
	got := f.FormatRows(f.Rows("Any", wire.Table{Fields: []wire.Field{wire.Uint32("partition_id", &x)}}))
	if got != "    partition_id: 7 (uint32)\n" {
		t.Errorf("FormatRows() = %q", got)
	}
	if got := f.FormatRows(nil); got != "    (no fields)" {
		t.Errorf("FormatRows(nil) = %q", got)
	}
}

func TestRowEnumWithoutRaw(t *testing.T) {
	m := &messages.RbrData{SensorType: messages.SensorPressure}
	f := &Formatter{}
	rows := f.Rows(m.Name(), m.Table())
	for _, row := range rows {
		if row.Key == "sensor_type" {
			if row.Value != "PRESSURE" {
				t.Errorf("sensor_type = %q, want PRESSURE", row.Value)
			}
			return
		}
	}
	t.Fatal("sensor_type row missing")
}
