package messages

import (
	"fmt"
	"math"

	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// SensorType says which readings an RBR instrument provides.
type SensorType uint8

const (
	SensorUnknown SensorType = iota
	SensorTemperature
	SensorPressure
	SensorPressureAndTemperature
)

func (t SensorType) String() string {
	switch t {
	case SensorUnknown:
		return "UNKNOWN"
	case SensorTemperature:
		return "TEMPERATURE"
	case SensorPressure:
		return "PRESSURE"
	case SensorPressureAndTemperature:
		return "PRESSURE_AND_TEMPERATURE"
	default:
		return fmt.Sprintf("SensorType(%d)", uint8(t))
	}
}

// RbrData is an RBR CTD reading. Readings the sensor type does not provide
// are sent as NaN.
type RbrData struct {
	Header          SensorHeader
	SensorType      SensorType
	TemperatureDegC float64
	PressureDeciBar float64
}

func (*RbrData) Name() string { return "RbrData" }

func (m *RbrData) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Unsigned("sensor_type", &m.SensorType),
		wire.Float64("temperature_deg_c", &m.TemperatureDegC),
		wire.Float64("pressure_deci_bar", &m.PressureDeciBar),
	)
}

func (m *RbrData) pairs() int { return headerFieldCount + 3 }

// writeFields encodes a copy of m with the unused readings set to NaN; m is
// not modified.
func (m *RbrData) writeFields(e *wire.Encoder) error {
	c := *m
	switch c.SensorType {
	case SensorTemperature:
		c.PressureDeciBar = math.NaN()
	case SensorPressure:
		c.TemperatureDegC = math.NaN()
	case SensorPressureAndTemperature:
	default:
		c.TemperatureDegC = math.NaN()
		c.PressureDeciBar = math.NaN()
	}
	return wire.EncodeFields(e, c.Table())
}

const differenceSignalKey = "difference_signal"

// RbrPressureDifferenceSignal carries a block of RBR pressure difference
// samples.
//
// Encode sends the first NumSamples values of DifferenceSignal. Decode
// fills DifferenceSignal up to its capacity when the caller pre-sized it,
// and allocates it otherwise.
type RbrPressureDifferenceSignal struct {
	Header           SensorHeader
	SequenceNum      uint32
	TotalSamples     uint32
	NumSamples       uint32
	Residual0        float64
	Residual1        float64
	DifferenceSignal []float64
}

func (*RbrPressureDifferenceSignal) Name() string { return "RbrPressureDifferenceSignal" }

// Table returns the scalar fields. The difference signal array follows them
// on the wire.
func (m *RbrPressureDifferenceSignal) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Uint32("sequence_num", &m.SequenceNum),
		wire.Uint32("total_samples", &m.TotalSamples),
		wire.Uint32("num_samples", &m.NumSamples),
		wire.Float64("residual_0", &m.Residual0),
		wire.Float64("residual_1", &m.Residual1),
	)
}

func (m *RbrPressureDifferenceSignal) pairs() int { return headerFieldCount + 6 }

func (m *RbrPressureDifferenceSignal) writeFields(e *wire.Encoder) error {
	const op = "Encode"
	if m.NumSamples == 0 {
		return &wire.Error{Code: wire.CodeImproperValue, Op: op, Key: "num_samples", Detail: "no samples"}
	}
	if uint64(len(m.DifferenceSignal)) < uint64(m.NumSamples) {
		return &wire.Error{Code: wire.CodeImproperValue, Op: op, Key: differenceSignalKey,
			Detail: fmt.Sprintf("%d samples for num_samples %d", len(m.DifferenceSignal), m.NumSamples)}
	}

	if err := wire.EncodeFields(e, m.Table()); !wire.IsAcceptable(err) {
		return err
	}
	if err := e.PutArrayHead(differenceSignalKey, int(m.NumSamples)); !wire.IsAcceptable(err) {
		return err
	}
	for _, v := range m.DifferenceSignal[:m.NumSamples] {
		if err := e.AppendFloat64(v); !wire.IsAcceptable(err) {
			return err
		}
	}
	return nil
}

func (m *RbrPressureDifferenceSignal) readFields(d *wire.Decoder, lenient bool) (err error) {
	capacity := cap(m.DifferenceSignal)
	allocated := false
	defer func() {
		if err != nil && !isAggregate(err) && allocated {
			m.DifferenceSignal = nil
		}
	}()

	readSignal := func(n int) error {
		if capacity > 0 && n > capacity {
			return &wire.Error{Code: wire.CodeAllocationFailure, Op: "Decode", Key: differenceSignalKey,
				Detail: fmt.Sprintf("%d samples, room for %d", n, capacity)}
		}
		var buf []float64
		if capacity > 0 {
			buf = m.DifferenceSignal[:0]
		} else {
			if err := d.Charge(differenceSignalKey, 8*n); err != nil {
				return err
			}
			buf = make([]float64, 0, n)
			allocated = true
		}
		for i := 0; i < n; i++ {
			v, err := d.NextFloat64()
			if err != nil {
				return err
			}
			buf = append(buf, v)
		}
		m.DifferenceSignal = buf
		return nil
	}

	var aggregate error
	if lenient {
		aggregate, err = m.readLenient(d, readSignal)
		if err != nil {
			return err
		}
	} else {
		if err := wire.DecodeFields(d, m.Table()); err != nil {
			return err
		}
		if capacity > 0 && uint64(m.NumSamples) > uint64(capacity) {
			return &wire.Error{Code: wire.CodeAllocationFailure, Op: "Decode", Key: "num_samples",
				Detail: fmt.Sprintf("%d samples, room for %d", m.NumSamples, capacity)}
		}
		key, err := d.Key()
		if err != nil {
			return err
		}
		if key != differenceSignalKey {
			return &wire.Error{Code: wire.CodeUnrecognizedKey, Op: "Decode", Key: differenceSignalKey,
				Detail: fmt.Sprintf("found %q", key)}
		}
		n, err := d.ArrayValue(key)
		if err != nil {
			return err
		}
		if n != int(m.NumSamples) {
			return m.lengthMismatch(n)
		}
		if err := readSignal(n); err != nil {
			return err
		}
	}

	if len(m.DifferenceSignal) != int(m.NumSamples) {
		return m.lengthMismatch(len(m.DifferenceSignal))
	}
	return aggregate
}

func (m *RbrPressureDifferenceSignal) readLenient(d *wire.Decoder, readSignal func(int) error) (aggregate, err error) {
	t := m.Table()
	var unknown []string
	for d.More() {
		key, skipped, err := d.TolerantKey()
		if err != nil {
			return nil, err
		}
		if skipped {
			unknown = append(unknown, key)
			continue
		}
		if key == differenceSignalKey {
			n, err := d.ArrayValue(key)
			if err != nil {
				return nil, err
			}
			if err := readSignal(n); err != nil {
				return nil, err
			}
			continue
		}
		f, ok := t.Lookup(key)
		if !ok {
			if err := d.SkipUnknown(key); err != nil {
				return nil, err
			}
			unknown = append(unknown, key)
			continue
		}
		if err := d.Value(f); err != nil {
			return nil, err
		}
	}
	if len(unknown) > 0 {
		return &wire.Error{Code: wire.CodeUnrecognizedKey, Op: "DecodeLenient", Keys: unknown}, nil
	}
	return nil, nil
}

func (m *RbrPressureDifferenceSignal) lengthMismatch(n int) error {
	return &wire.Error{Code: wire.CodeFieldCountMismatch, Op: "Decode", Key: differenceSignalKey,
		Detail: fmt.Sprintf("%d samples for num_samples %d", n, m.NumSamples)}
}
