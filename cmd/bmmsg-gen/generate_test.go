package main

import (
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bristlemouth/bm-messages-go/pkg/schema"
)

const thermistorsFile = "../../pkg/schema/testdata/thermistors.yaml"

func loadThermistors(t *testing.T) []*schema.Schema {
	t.Helper()
	list, err := schema.LoadFile(thermistorsFile)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	return list
}

func mustContain(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Errorf("output does not contain %q\nOutput:\n%s", substr, output)
	}
}

func mustNotContain(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Errorf("output unexpectedly contains %q", substr)
	}
}

func TestGoName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"thermistor_id", "ThermistorID"},
		{"reading_time_utc_ms", "ReadingTimeUTCMs"},
		{"temperature_deg_c", "TemperatureDegC"},
		{"ThermistorReading", "ThermistorReading"},
		{"rbr_pressure", "RBRPressure"},
		{"2nd_reading", "X2ndReading"},
		{"sound-speed.m/s", "SoundSpeedMS"},
	}

	for _, tt := range tests {
		if got := goName(tt.in); got != tt.want {
			t.Errorf("goName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateHeaderMessage(t *testing.T) {
	list := loadThermistors(t)
	output, err := Generate("thermistors", "thermistors.yaml", list)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	mustContain(t, output, "// Code generated by bmmsg-gen from thermistors.yaml. DO NOT EDIT.")
	mustContain(t, output, "package thermistors")
	mustContain(t, output, "type ThermistorReading struct {")
	mustContain(t, output, "\tHeader messages.SensorHeader\n")
	mustContain(t, output, "\tThermistorID uint16\n")
	mustContain(t, output, "// Single thermistor with an id.")
	mustContain(t, output, "return &ThermistorReading{Header: messages.SensorHeader{Version: 2}}")
	mustContain(t, output, `func (*ThermistorReading) Name() string { return "ThermistorReading" }`)
	mustContain(t, output, `wire.Uint16("thermistor_id", &m.ThermistorID).Checked(),`)
	mustContain(t, output, `wire.Float64("temperature_deg_c", &m.TemperatureDegC),`)
	mustContain(t, output, "return wire.Table{StrictOrder: true, Fields: append(m.Header.Fields(), fields...)}")
	mustContain(t, output, `const ThermistorReadingFingerprint = "`+list[0].Fingerprint().String()+`"`)
}

func TestGeneratePlainMessage(t *testing.T) {
	output, err := Generate("thermistors", "thermistors.yaml", loadThermistors(t)[1:])
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	mustContain(t, output, "\tOk bool\n")
	mustContain(t, output, "\tRaw []byte\n")
	mustContain(t, output, `wire.Bytes("raw", &m.Raw),`)
	mustContain(t, output, `wire.Float32("gain", &m.Gain),`)
	mustContain(t, output, "return wire.Table{StrictOrder: false, Fields: fields}")
	mustNotContain(t, output, "NewFieldNote")
	mustNotContain(t, output, "Header")
}

func TestGenerateIsValidGo(t *testing.T) {
	output, err := Generate("thermistors", "thermistors.yaml", loadThermistors(t))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := format.Source([]byte(output)); err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, output)
	}
}

func TestGenerateReservedAndCollidingNames(t *testing.T) {
	s, err := schema.Compile(schema.Definition{
		Name: "Named",
		Fields: []schema.FieldDef{
			{Key: "name", Type: "string"},
			{Key: "table", Type: "uint8"},
		},
	})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	output, err := Generate("p", "x.yaml", []*schema.Schema{s})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	mustContain(t, output, `wire.String("name", &m.NameValue),`)
	mustContain(t, output, `wire.Uint8("table", &m.TableValue),`)

	s, err = schema.Compile(schema.Definition{
		Name: "Clash",
		Fields: []schema.FieldDef{
			{Key: "thermistor_id", Type: "uint8"},
			{Key: "thermistor-id", Type: "uint8"},
		},
	})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if _, err := Generate("p", "x.yaml", []*schema.Schema{s}); err == nil {
		t.Error("expected an error for keys mapping to the same field")
	}
}

func TestRunWritesFormattedFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "thermistors_gen.go")
	if err := run("thermistors", out, []string{thermistorsFile}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	mustContain(t, string(data), "type FieldNote struct {")
	mustContain(t, string(data), `"github.com/bristlemouth/bm-messages-go/pkg/wire"`)
}

func TestRunMissingFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x_gen.go")
	if err := run("thermistors", out, []string{"does-not-exist.yaml"}); err == nil {
		t.Error("expected an error for a missing schema file")
	}
}
