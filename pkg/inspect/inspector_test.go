package inspect

import (
	"errors"
	"strings"
	"testing"

	"github.com/bristlemouth/bm-messages-go/pkg/messages"
	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

func marshal(t *testing.T, m messages.Message) []byte {
	t.Helper()
	data, err := messages.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal(%s): %v", m.Name(), err)
	}
	return data
}

func TestIdentify(t *testing.T) {
	i := NewInspector(nil)

	got := i.Identify(marshal(t, softData()))
	if len(got) != 1 || got[0] != "SoftData" {
		t.Errorf("Identify(SoftData) = %v", got)
	}

	got = i.Identify(marshal(t, &messages.PowerInfoReply{TotalOnS: 60}))
	if len(got) != 1 || got[0] != "PowerInfoReply" {
		t.Errorf("Identify(PowerInfoReply) = %v", got)
	}

	if got := i.Identify([]byte{0xa0}); len(got) != 0 {
		t.Errorf("Identify(empty map) = %v", got)
	}
}

func TestInspect(t *testing.T) {
	i := NewInspector(nil)
	data := marshal(t, softData())

	r, err := i.Inspect("", data, false)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if r.Message != "SoftData" || r.Size != 117 {
		t.Errorf("Inspect() = %s (%d bytes)", r.Message, r.Size)
	}
	row, ok := r.Row("temperature_deg_c")
	if !ok || row.Value != "18.93 °C" {
		t.Errorf("temperature row = %+v", row)
	}
	if m, ok := r.Decoded().(*messages.SoftData); !ok || m.TemperatureDegC != 18.93 {
		t.Errorf("Decoded() = %#v", r.Decoded())
	}

	out := i.Format(r)
	if !strings.HasPrefix(out, "SoftData (117 bytes):\n") {
		t.Errorf("Format() = %q", out)
	}

	r, err = i.Inspect("softdata", data, false)
	if err != nil || r.Message != "SoftData" {
		t.Errorf("Inspect(softdata) = %v, %v", r, err)
	}
}

func TestInspectErrors(t *testing.T) {
	i := NewInspector(nil)

	if _, err := i.Inspect("", []byte{0xa0}, false); !errors.Is(err, ErrNotIdentified) {
		t.Errorf("Inspect(unknown bytes) error = %v", err)
	}
	if _, err := i.Inspect("Nope", []byte{0xa0}, false); !errors.Is(err, ErrUnknownMessage) {
		t.Errorf("Inspect(Nope) error = %v", err)
	}
	data := marshal(t, softData())
	if _, err := i.Inspect("BarometricPressure", data, false); !errors.Is(err, wire.ErrUnrecognizedKey) {
		t.Errorf("Inspect(wrong message) error = %v", err)
	}
}

func TestInspectLenientWarning(t *testing.T) {
	m := softData()
	var extra uint8 = 5
	fields := append(m.Header.Fields(),
		wire.Float64("temperature_deg_c", &m.TemperatureDegC),
		wire.Uint8("gain", &extra),
	)
	data, err := wire.Marshal(wire.Table{Fields: fields})
	if err != nil {
		t.Fatal(err)
	}

	i := NewInspector(nil)
	if _, err := i.Inspect("SoftData", data, false); err == nil {
		t.Fatal("strict Inspect accepted an extra key")
	}

	r, err := i.Inspect("SoftData", data, true)
	if err != nil {
		t.Fatalf("lenient Inspect() error = %v", err)
	}
	if !errors.Is(r.Warning, wire.ErrUnrecognizedKey) {
		t.Errorf("Warning = %v", r.Warning)
	}
	if !strings.Contains(i.Format(r), "warning: ") {
		t.Errorf("Format() has no warning line:\n%s", i.Format(r))
	}
}

func TestInspectDifferenceSignal(t *testing.T) {
	m := &messages.RbrPressureDifferenceSignal{
		NumSamples:       2,
		DifferenceSignal: []float64{0.5, 1},
	}
	i := NewInspector(nil)
	r, err := i.Inspect("RbrPressureDifferenceSignal", marshal(t, m), false)
	if err != nil {
		t.Fatal(err)
	}
	row, ok := r.Row("difference_signal")
	if !ok || row.Value != "[0.5, 1]" {
		t.Errorf("difference_signal row = %+v", row)
	}

	p, err := ParsePath("RbrPressureDifferenceSignal/difference_signal")
	if err != nil {
		t.Fatal(err)
	}
	row, err = i.Field(p, marshal(t, m), false)
	if err != nil || row.Value != "[0.5, 1]" {
		t.Errorf("Field() = %+v, %v", row, err)
	}
}
