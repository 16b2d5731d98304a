package messages

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bristlemouth/bm-messages-go/pkg/log"
	"github.com/bristlemouth/bm-messages-go/pkg/log/mocks"
	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

func testHeader() SensorHeader {
	return SensorHeader{
		Version:             Version,
		ReadingTimeUTCMs:    123456789,
		ReadingUptimeMillis: 987654321,
		SensorReadingTimeMs: 0xdeadc0de,
	}
}

func TestEncodedSizes(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		size int
	}{
		{"soft", &SoftData{Header: testHeader(), TemperatureDegC: 18.93}, 117},
		{"rbr", &RbrData{Header: testHeader(), SensorType: SensorPressureAndTemperature, TemperatureDegC: 12.5, PressureDeciBar: 101.3}, 157},
		{"turbidity", &SeapointTurbidity{Header: testHeader(), SSignal: 1.25, RSignal: 2.5}, 126},
		{"pressure difference", &RbrPressureDifferenceSignal{
			Header:           testHeader(),
			SequenceNum:      7,
			TotalSamples:     20,
			NumSamples:       10,
			Residual0:        0.001,
			Residual1:        -0.002,
			DifferenceSignal: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9},
		}, 281},
		{"pme wipe", &PmeWipe{Header: testHeader(), WipeTimeSec: 5.5, Start1MA: 30, AvgMA: 25, Start2MA: 31, FinalMA: 12, RSource: 0.5}, 202},
		{"pme dissolved oxygen", &PmeDissolvedOxygen{Header: testHeader(), TemperatureDegC: 18.93, DOMgPerL: 7.891, Quality: 0.987, DOSaturationPct: 100, SalinityPPT: 32}, 200},
		{"barometric", &BarometricPressure{Header: testHeader(), BarometricPressureMbar: 1013.25}, 125},
		{"aanderaa conductivity", &AanderaaConductivity{
			Header:           testHeader(),
			ConductivityMSCm: 42.1,
			TemperatureDegC:  9.8,
			SalinityPSU:      34.9,
			WaterDensityKgM3: 1026.4,
			SoundSpeedMS:     1490.2,
		}, 221},
		{"device test reply", &DeviceTestReply{Success: true, DataLen: 4, Data: []byte{1, 2, 3, 4}}, 30},
		{"device test reply without data", &DeviceTestReply{Success: true}, 26},
		{"device test request", &DeviceTestRequest{DataLen: 4, Data: []byte{1, 2, 3, 4}}, 21},
		{"device test request without data", &DeviceTestRequest{}, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 1024)
			n, err := Encode(buf, tt.msg)
			require.NoError(t, err)
			assert.Equal(t, tt.size, n)

			size, err := Size(tt.msg)
			require.NoError(t, err)
			assert.Equal(t, tt.size, size)

			out := New(tt.msg.Name())
			require.NotNil(t, out)
			require.NoError(t, Decode(buf[:n], out))
			assert.Equal(t, tt.msg, out)
		})
	}
}

func TestZeroMessagesRoundTrip(t *testing.T) {
	for _, name := range Names() {
		if name == "RbrPressureDifferenceSignal" || name == "RbrData" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			in := New(name)
			data, err := Marshal(in)
			require.NoError(t, err)

			out := New(name)
			require.NoError(t, Decode(data, out))
			assert.Equal(t, in, out)

			require.NoError(t, DecodeLenient(data, New(name)))
		})
	}
}

func TestEncodeTooSmall(t *testing.T) {
	m := &SoftData{Header: testHeader(), TemperatureDegC: 18.93}

	for _, capacity := range []int{0, 90, 116} {
		n, err := Encode(make([]byte, capacity), m)
		assert.Zero(t, n)
		assert.True(t, errors.Is(err, wire.ErrBufferTooSmall), "capacity %d: %v", capacity, err)
		assert.Equal(t, wire.ClassAcceptable, wire.Classify(err))
		assert.Equal(t, 117-capacity, wire.ExtraBytesNeeded(err))
	}
}

func TestStrictDecodeRejectsOtherMessages(t *testing.T) {
	soft, err := Marshal(&SoftData{Header: testHeader(), TemperatureDegC: 18.93})
	require.NoError(t, err)
	turbidity, err := Marshal(&SeapointTurbidity{Header: testHeader()})
	require.NoError(t, err)

	t.Run("field count", func(t *testing.T) {
		m := &SoftData{TemperatureDegC: -1}
		err := Decode(turbidity, m)
		assert.True(t, errors.Is(err, wire.ErrFieldCountMismatch))
		assert.Equal(t, SensorHeader{}, m.Header)
		assert.Equal(t, -1.0, m.TemperatureDegC)
	})

	t.Run("key order", func(t *testing.T) {
		err := Decode(soft, &BarometricPressure{})
		assert.True(t, errors.Is(err, wire.ErrUnrecognizedKey))
	})

	t.Run("lenient", func(t *testing.T) {
		m := &BarometricPressure{}
		err := DecodeLenient(soft, m)

		var werr *wire.Error
		require.True(t, errors.As(err, &werr))
		assert.Equal(t, []string{"temperature_deg_c"}, werr.Keys)
		assert.Equal(t, testHeader(), m.Header)
	})
}

func TestDecodeLenientExtraKey(t *testing.T) {
	in := &SoftData{Header: testHeader(), TemperatureDegC: 18.93}

	buf := make([]byte, 256)
	e, err := wire.NewEncoder(buf, 6)
	require.NoError(t, err)
	require.NoError(t, e.PutText("firmware", "1.2.0"))
	require.NoError(t, wire.EncodeFields(e, in.Table()))
	n, err := e.Finish()
	require.NoError(t, err)

	err = Decode(buf[:n], &SoftData{})
	assert.True(t, errors.Is(err, wire.ErrFieldCountMismatch))

	out := &SoftData{}
	err = DecodeLenient(buf[:n], out)
	assert.True(t, errors.Is(err, wire.ErrUnrecognizedKey))
	assert.Equal(t, in, out)
}

func TestDecodeTrailingData(t *testing.T) {
	data, err := Marshal(&PowerInfoReply{TotalOnS: 60, RemainingOnS: 30, UpcomingOffS: 5})
	require.NoError(t, err)

	padded := make([]byte, 1024)
	copy(padded, data)

	err = Decode(padded, &PowerInfoReply{})
	assert.True(t, errors.Is(err, wire.ErrTrailingData))

	out := &PowerInfoReply{}
	require.NoError(t, Decode(padded[:len(data)], out))
	assert.Equal(t, uint32(60), out.TotalOnS)
}

func TestEncodeLabelsEvents(t *testing.T) {
	logger := mocks.NewMockLogger(t)
	logger.EXPECT().Log(mock.MatchedBy(func(ev log.Event) bool {
		return ev.Schema == "SoftData" && ev.Category == log.CategoryMessage && ev.Size == 117
	})).Once()

	_, err := Encode(make([]byte, 256), &SoftData{Header: testHeader(), TemperatureDegC: 18.93}, wire.WithLogger(logger))
	require.NoError(t, err)
}

func TestRbrMasksUnusedReadings(t *testing.T) {
	tests := []struct {
		sensor      SensorType
		temperature bool
		pressure    bool
	}{
		{SensorUnknown, false, false},
		{SensorTemperature, true, false},
		{SensorPressure, false, true},
		{SensorPressureAndTemperature, true, true},
		{SensorType(9), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.sensor.String(), func(t *testing.T) {
			in := &RbrData{Header: testHeader(), SensorType: tt.sensor, TemperatureDegC: 4.5, PressureDeciBar: 88.25}

			data, err := Marshal(in)
			require.NoError(t, err)
			assert.Len(t, data, 157)
			assert.Equal(t, 4.5, in.TemperatureDegC, "encode must not modify the message")

			out := &RbrData{}
			require.NoError(t, Decode(data, out))
			assert.Equal(t, tt.sensor, out.SensorType)
			assert.Equal(t, tt.temperature, !math.IsNaN(out.TemperatureDegC))
			assert.Equal(t, tt.pressure, !math.IsNaN(out.PressureDeciBar))
		})
	}
}

func TestPowerStatusString(t *testing.T) {
	assert.Equal(t, "OKAY", StatusOkay.String())
	assert.Equal(t, "UNDERVOLTAGE|OVERCURRENT", (StatusUndervoltage | StatusOvercurrent).String())
	assert.Equal(t, "OVERVOLTAGE|0x20", (StatusOvervoltage | 0x20).String())
	assert.Equal(t, "MONITOR", PowerMonitor.String())
}

func TestPowerReadingAveragesNumSamplesChecked(t *testing.T) {
	in := &PowerReadingAverages{Header: testHeader(), PowerReadingType: PowerLoad, NumSamples: 12}

	buf := make([]byte, 512)
	tbl := in.Table()
	e, err := wire.NewEncoder(buf, tbl.Len())
	require.NoError(t, err)
	for _, f := range tbl.Fields {
		if f.Key == "num_samples" {
			require.NoError(t, e.PutUint64(f.Key, 1<<33))
			continue
		}
		require.NoError(t, e.PutField(f))
	}
	n, err := e.Finish()
	require.NoError(t, err)

	out := &PowerReadingAverages{NumSamples: 3}
	err = Decode(buf[:n], out)
	assert.True(t, errors.Is(err, wire.ErrOutOfRange))
	assert.Equal(t, uint32(3), out.NumSamples)
	assert.Equal(t, PowerLoad, out.PowerReadingType)
}

func TestPowerReadingRoundTrip(t *testing.T) {
	in := &PowerReading{
		Header:           testHeader(),
		PowerReadingType: PowerSource,
		VoltageV:         12.6,
		CurrentMA:        420,
		Status:           StatusUndervoltage | StatusUndercurrent,
	}
	data, err := Marshal(in)
	require.NoError(t, err)

	out := &PowerReading{}
	require.NoError(t, Decode(data, out))
	assert.Equal(t, in, out)
}

func TestDeviceTestLengths(t *testing.T) {
	t.Run("derived on encode", func(t *testing.T) {
		data, err := Marshal(&DeviceTestReply{Success: true, DataLen: 99, Data: []byte{9, 8}})
		require.NoError(t, err)

		out := &DeviceTestReply{}
		require.NoError(t, Decode(data, out))
		assert.Equal(t, uint32(2), out.DataLen)
		assert.Equal(t, []byte{9, 8}, out.Data)
	})

	t.Run("zero length decodes to nil", func(t *testing.T) {
		data, err := Marshal(&DeviceTestReply{})
		require.NoError(t, err)

		out := &DeviceTestReply{Data: []byte{1}}
		require.NoError(t, Decode(data, out))
		assert.Nil(t, out.Data)
		assert.Zero(t, out.DataLen)
	})

	t.Run("mismatch on decode", func(t *testing.T) {
		buf := make([]byte, 64)
		e, err := wire.NewEncoder(buf, 2)
		require.NoError(t, err)
		require.NoError(t, e.PutUint32("data_len", 5))
		require.NoError(t, e.PutBytes("data", []byte{1, 2, 3, 4}))
		n, err := e.Finish()
		require.NoError(t, err)

		out := &DeviceTestRequest{}
		err = Decode(buf[:n], out)
		assert.True(t, errors.Is(err, wire.ErrMalformedInput))
		assert.Nil(t, out.Data)
	})
}

func TestConfigCborMapReplyValues(t *testing.T) {
	in := &ConfigCborMapReply{
		NodeID:      0x1234,
		PartitionID: 2,
		Success:     true,
		// {"sample_rate": 10}
		CborData: []byte{0xa1, 0x6b, 's', 'a', 'm', 'p', 'l', 'e', '_', 'r', 'a', 't', 'e', 0x0a},
	}
	data, err := Marshal(in)
	require.NoError(t, err)

	out := &ConfigCborMapReply{}
	require.NoError(t, Decode(data, out))
	assert.Equal(t, uint32(len(in.CborData)), out.CborEncodedMapLen)

	values, err := out.Values()
	require.NoError(t, err)
	assert.Equal(t, uint64(10), values["sample_rate"])
}

func TestSysInfoReplyAllocationLimit(t *testing.T) {
	data, err := Marshal(&SysInfoReply{NodeID: 1, AppName: "bm_soft_module"})
	require.NoError(t, err)

	out := &SysInfoReply{}
	err = Decode(data, out, wire.WithAllocLimit(8))
	assert.True(t, errors.Is(err, wire.ErrAllocationFailure))
	assert.Empty(t, out.AppName)

	require.NoError(t, Decode(data, out, wire.WithAllocLimit(len("bm_soft_module")+1)))
	assert.Equal(t, "bm_soft_module", out.AppName)
}

func TestBorealisRoundTrip(t *testing.T) {
	levels := BorealisLevels{
		Header:         testHeader(),
		Dt:             1234.9875,
		DtReport:       111.1111,
		FirstBandIndex: 128,
		Levels:         "AAECAwQFBgcICQ==",
	}
	msgs := []Message{
		&BorealisSpectrum{Header: testHeader(), Dt: 0.5, Df: 62.5, BandsPerOctave: 3, Spectrum: "AQID"},
		&levels,
		&BorealisLevelStatistics{BorealisLevels: levels, MaxIQR: 0.12345},
		&BorealisRecordingStatus{Header: testHeader(), Flags: 1, Filename: "rec_0001.wav", SecondsWritten: 60, SecondsFree: 86400},
	}

	for _, in := range msgs {
		t.Run(in.Name(), func(t *testing.T) {
			data, err := Marshal(in)
			require.NoError(t, err)

			out := New(in.Name())
			require.NoError(t, Decode(data, out))
			assert.Equal(t, in, out)
		})
	}

	assert.True(t, (&BorealisRecordingStatus{Flags: 1}).Recording())
}

func TestPmeDissolvedOxygenSalinityWidth(t *testing.T) {
	data, err := Marshal(&PmeDissolvedOxygen{Header: testHeader(), SalinityPPT: 32})
	require.NoError(t, err)
	assert.Equal(t, byte(0xa9), data[0])

	tail := append([]byte{0x6c}, "salinity_ppt"...)
	tail = append(tail, 0xfa, 0x42, 0x00, 0x00, 0x00)
	assert.True(t, bytes.HasSuffix(data, tail), "% x", data)
}

func TestBorealisSimpleValueBytes(t *testing.T) {
	m := &BorealisLevels{Header: testHeader(), FirstBandIndex: 128, Levels: "AA=="}
	data, err := Marshal(m)
	require.NoError(t, err)

	pair := append([]byte{0x70}, "first_band_index"...)
	i := bytes.Index(data, pair)
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, []byte{0xf8, 0x80}, data[i+len(pair):i+len(pair)+2])

	s := &BorealisSpectrum{Header: testHeader(), BandsPerOctave: 3}
	data, err = Marshal(s)
	require.NoError(t, err)
	pair = append([]byte{0x70}, "bands_per_octave"...)
	i = bytes.Index(data, pair)
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, byte(0xe3), data[i+len(pair)])

	_, err = Marshal(&BorealisRecordingStatus{Header: testHeader(), Flags: 24})
	assert.True(t, errors.Is(err, wire.ErrImproperValue))

	// An unsigned integer where a simple value belongs is a wire type error.
	tbl := wire.Table{Fields: []wire.Field{wire.Uint8("bands_per_octave", &s.BandsPerOctave)}}
	raw := make([]byte, 64)
	n, err := wire.Encode(raw, tbl)
	require.NoError(t, err)
	var v uint8
	err = wire.Decode(raw[:n], wire.Table{Fields: []wire.Field{wire.Simple("bands_per_octave", &v)}})
	assert.True(t, errors.Is(err, wire.ErrUnexpectedWireType))
}

// encodeDifferenceSignal writes m's scalar fields followed by an array of
// samples, whose length need not match m.NumSamples.
func encodeDifferenceSignal(t *testing.T, m *RbrPressureDifferenceSignal, samples []float64) []byte {
	t.Helper()
	buf := make([]byte, 512)
	e, err := wire.NewEncoder(buf, m.pairs())
	require.NoError(t, err)
	require.NoError(t, wire.EncodeFields(e, m.Table()))
	require.NoError(t, e.PutArrayHead(differenceSignalKey, len(samples)))
	for _, v := range samples {
		require.NoError(t, e.AppendFloat64(v))
	}
	n, err := e.Finish()
	require.NoError(t, err)
	return buf[:n]
}

func TestRbrPressureDifferenceSignalEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		msg  *RbrPressureDifferenceSignal
	}{
		{"no samples", &RbrPressureDifferenceSignal{Header: testHeader()}},
		{"no samples with data", &RbrPressureDifferenceSignal{Header: testHeader(), DifferenceSignal: []float64{1}}},
		{"short slice", &RbrPressureDifferenceSignal{Header: testHeader(), NumSamples: 3, DifferenceSignal: []float64{1, 2}}},
		{"nil slice", &RbrPressureDifferenceSignal{Header: testHeader(), NumSamples: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Encode(make([]byte, 512), tt.msg)
			assert.Zero(t, n)
			assert.True(t, errors.Is(err, wire.ErrImproperValue), "got %v", err)
			assert.Equal(t, wire.ClassFatal, wire.Classify(err))

			_, err = Size(tt.msg)
			assert.True(t, errors.Is(err, wire.ErrImproperValue), "got %v", err)
		})
	}
}

func TestRbrPressureDifferenceSignalDecode(t *testing.T) {
	in := &RbrPressureDifferenceSignal{Header: testHeader(), SequenceNum: 4, NumSamples: 3, DifferenceSignal: []float64{1, 2, 3}}
	data, err := Marshal(in)
	require.NoError(t, err)

	t.Run("reuses presized buffer", func(t *testing.T) {
		buf := make([]float64, 0, 8)
		out := &RbrPressureDifferenceSignal{DifferenceSignal: buf}
		require.NoError(t, Decode(data, out))
		assert.Equal(t, []float64{1, 2, 3}, out.DifferenceSignal)
		assert.Equal(t, 8, cap(out.DifferenceSignal))
		assert.Same(t, &buf[:1][0], &out.DifferenceSignal[0])
	})

	t.Run("presized buffer too small", func(t *testing.T) {
		buf := make([]float64, 0, 2)
		out := &RbrPressureDifferenceSignal{DifferenceSignal: buf}
		err := Decode(data, out)
		assert.True(t, errors.Is(err, wire.ErrAllocationFailure), "got %v", err)
		assert.Equal(t, wire.ClassFatal, wire.Classify(err))
		assert.Empty(t, out.DifferenceSignal)

		err = DecodeLenient(data, &RbrPressureDifferenceSignal{DifferenceSignal: make([]float64, 0, 2)})
		assert.True(t, errors.Is(err, wire.ErrAllocationFailure), "got %v", err)
	})

	t.Run("allocates when not presized", func(t *testing.T) {
		out := &RbrPressureDifferenceSignal{}
		require.NoError(t, Decode(data, out))
		assert.Equal(t, in, out)
	})

	t.Run("allocation limit", func(t *testing.T) {
		out := &RbrPressureDifferenceSignal{}
		err := Decode(data, out, wire.WithAllocLimit(16))
		assert.True(t, errors.Is(err, wire.ErrAllocationFailure), "got %v", err)
		assert.Nil(t, out.DifferenceSignal)

		require.NoError(t, Decode(data, out, wire.WithAllocLimit(24)))
		assert.Equal(t, []float64{1, 2, 3}, out.DifferenceSignal)
	})
}

func TestRbrPressureDifferenceSignalLengthMismatch(t *testing.T) {
	m := &RbrPressureDifferenceSignal{Header: testHeader(), NumSamples: 3}

	for _, samples := range [][]float64{{1, 2}, {1, 2, 3, 4}} {
		data := encodeDifferenceSignal(t, m, samples)

		out := &RbrPressureDifferenceSignal{}
		err := Decode(data, out)
		assert.True(t, errors.Is(err, wire.ErrFieldCountMismatch), "%d samples: %v", len(samples), err)
		assert.Equal(t, wire.ClassFatal, wire.Classify(err))

		out = &RbrPressureDifferenceSignal{}
		err = DecodeLenient(data, out)
		assert.True(t, errors.Is(err, wire.ErrFieldCountMismatch), "%d samples: %v", len(samples), err)
		assert.Nil(t, out.DifferenceSignal)
	}
}

func TestRbrPressureDifferenceSignalLenient(t *testing.T) {
	in := &RbrPressureDifferenceSignal{Header: testHeader(), SequenceNum: 9, NumSamples: 2, DifferenceSignal: []float64{0.5, -0.5}}
	long := strings.Repeat("k", wire.MaxKeyLen+6)

	buf := make([]byte, 512)
	e, err := wire.NewEncoder(buf, in.pairs()+2)
	require.NoError(t, err)
	require.NoError(t, e.PutArrayHead(differenceSignalKey, 2))
	require.NoError(t, e.AppendFloat64(0.5))
	require.NoError(t, e.AppendFloat64(-0.5))
	require.NoError(t, e.PutText("firmware", "1.2.0"))
	require.NoError(t, e.PutUint8(long, 1))
	require.NoError(t, wire.EncodeFields(e, in.Table()))
	n, err := e.Finish()
	require.NoError(t, err)

	logger := mocks.NewMockLogger(t)
	logger.EXPECT().Log(mock.MatchedBy(func(ev log.Event) bool {
		return ev.Category == log.CategoryUnknownKey && ev.Key == "firmware"
	})).Once()
	logger.EXPECT().Log(mock.MatchedBy(func(ev log.Event) bool {
		return ev.Category == log.CategoryUnknownKey && ev.Key == "<70-byte key>"
	})).Once()
	logger.EXPECT().Log(mock.Anything).Maybe()

	out := &RbrPressureDifferenceSignal{}
	err = DecodeLenient(buf[:n], out, wire.WithLogger(logger))

	var werr *wire.Error
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, wire.CodeUnrecognizedKey, werr.Code)
	assert.Equal(t, []string{"firmware", "<70-byte key>"}, werr.Keys)
	assert.Equal(t, in, out)

	err = Decode(buf[:n], &RbrPressureDifferenceSignal{})
	assert.True(t, errors.Is(err, wire.ErrFieldCountMismatch), "got %v", err)
}

func TestRbrPressureDifferenceSignalFailureDropsAllocation(t *testing.T) {
	buf := make([]byte, 256)
	e, err := wire.NewEncoder(buf, 3)
	require.NoError(t, err)
	require.NoError(t, e.PutArrayHead(differenceSignalKey, 2))
	require.NoError(t, e.AppendFloat64(1))
	require.NoError(t, e.AppendFloat64(2))
	require.NoError(t, e.PutUint32("num_samples", 2))
	require.NoError(t, e.PutText("residual_0", "oops"))
	n, err := e.Finish()
	require.NoError(t, err)

	out := &RbrPressureDifferenceSignal{}
	err = DecodeLenient(buf[:n], out)
	assert.True(t, errors.Is(err, wire.ErrUnexpectedWireType), "got %v", err)
	assert.Nil(t, out.DifferenceSignal)
}

func TestRegistry(t *testing.T) {
	names := Names()
	assert.Len(t, names, 22)
	assert.IsIncreasing(t, names)
	assert.True(t, Lookup("SoftData"))
	assert.False(t, Lookup("NoSuchMessage"))
	assert.Nil(t, New("NoSuchMessage"))

	for _, name := range names {
		m := New(name)
		require.NotNil(t, m, name)
		assert.Equal(t, name, m.Name())
		assert.NoError(t, m.Table().Validate(), name)
	}
}

func TestApply(t *testing.T) {
	m := &RbrPressureDifferenceSignal{}
	err := Apply(m, map[string]any{
		"version":           1,
		"num_samples":       3,
		"residual_0":        0.5,
		"difference_signal": []any{1.0, 2, 3.5},
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), m.Header.Version)
	assert.Equal(t, []float64{1, 2, 3.5}, m.DifferenceSignal)

	_, err = Marshal(m)
	require.NoError(t, err)

	err = Apply(&SoftData{}, map[string]any{"temperature_deg_c": 1.0, "depth_m": 3})
	assert.True(t, errors.Is(err, wire.ErrUnrecognizedKey))

	err = Apply(&SoftData{}, map[string]any{"version": -1})
	assert.True(t, errors.Is(err, wire.ErrImproperValue))
}
