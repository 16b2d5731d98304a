package messages

import "github.com/bristlemouth/bm-messages-go/pkg/wire"

// BorealisSpectrum is a Borealis acoustic spectrum. Spectrum is the base64
// text of the band levels.
type BorealisSpectrum struct {
	Header         SensorHeader
	Dt             float32
	Df             float32
	BandsPerOctave uint8
	Spectrum       string
}

func (*BorealisSpectrum) Name() string { return "BorealisSpectrum" }

func (m *BorealisSpectrum) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Float32("dt", &m.Dt),
		wire.Float32("df", &m.Df),
		wire.Simple("bands_per_octave", &m.BandsPerOctave),
		wire.String("spectrum", &m.Spectrum),
	)
}

// BorealisLevels is a Borealis band level report. Levels is base64 text.
type BorealisLevels struct {
	Header         SensorHeader
	Dt             float32
	DtReport       float32
	FirstBandIndex uint8
	Levels         string
}

func (*BorealisLevels) Name() string { return "BorealisLevels" }

func (m *BorealisLevels) Table() wire.Table {
	return withHeader(&m.Header, m.levelFields()...)
}

func (m *BorealisLevels) levelFields() []wire.Field {
	return []wire.Field{
		wire.Float32("dt", &m.Dt),
		wire.Float32("dt_report", &m.DtReport),
		wire.Simple("first_band_index", &m.FirstBandIndex),
		wire.String("levels", &m.Levels),
	}
}

// BorealisLevelStatistics is a band level report with the largest
// interquartile range seen in the report window.
type BorealisLevelStatistics struct {
	BorealisLevels
	MaxIQR float32
}

func (*BorealisLevelStatistics) Name() string { return "BorealisLevelStatistics" }

func (m *BorealisLevelStatistics) Table() wire.Table {
	fields := append(m.levelFields(), wire.Float32("max_iqr", &m.MaxIQR))
	return withHeader(&m.Header, fields...)
}

// BorealisRecordingStatus reports the recorder state. Bit 0 of Flags is set
// while recording.
type BorealisRecordingStatus struct {
	Header         SensorHeader
	Flags          uint8
	Filename       string
	SecondsWritten float32
	SecondsFree    float32
}

func (*BorealisRecordingStatus) Name() string { return "BorealisRecordingStatus" }

func (m *BorealisRecordingStatus) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Simple("flags", &m.Flags),
		wire.String("filename", &m.Filename),
		wire.Float32("seconds_written", &m.SecondsWritten),
		wire.Float32("seconds_free", &m.SecondsFree),
	)
}

// Recording reports whether the recorder is running.
func (m *BorealisRecordingStatus) Recording() bool { return m.Flags&1 != 0 }
