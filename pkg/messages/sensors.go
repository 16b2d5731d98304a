package messages

import "github.com/bristlemouth/bm-messages-go/pkg/wire"

// SoftData is a SoftSensor temperature reading.
type SoftData struct {
	Header          SensorHeader
	TemperatureDegC float64
}

func (*SoftData) Name() string { return "SoftData" }

func (m *SoftData) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Float64("temperature_deg_c", &m.TemperatureDegC),
	)
}

// SeapointTurbidity is a Seapoint turbidity sensor reading.
type SeapointTurbidity struct {
	Header  SensorHeader
	SSignal float64
	RSignal float64
}

func (*SeapointTurbidity) Name() string { return "SeapointTurbidity" }

func (m *SeapointTurbidity) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Float64("s_signal", &m.SSignal),
		wire.Float64("r_signal", &m.RSignal),
	)
}

// AanderaaConductivity is an Aanderaa conductivity sensor reading.
type AanderaaConductivity struct {
	Header           SensorHeader
	ConductivityMSCm float64
	TemperatureDegC  float64
	SalinityPSU      float64
	WaterDensityKgM3 float64
	SoundSpeedMS     float64
}

func (*AanderaaConductivity) Name() string { return "AanderaaConductivity" }

func (m *AanderaaConductivity) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Float64("conductivity_ms_cm", &m.ConductivityMSCm),
		wire.Float64("temperature_deg_c", &m.TemperatureDegC),
		wire.Float64("salinity_psu", &m.SalinityPSU),
		wire.Float64("water_density_kg_m3", &m.WaterDensityKgM3),
		wire.Float64("sound_speed_m_s", &m.SoundSpeedMS),
	)
}

// AanderaaCurrentMeter is an Aanderaa current meter reading.
type AanderaaCurrentMeter struct {
	Header               SensorHeader
	AbsSpeedCmS          float64
	DirectionDegM        float64
	NorthCmS             float64
	EastCmS              float64
	HeadingDegM          float64
	TiltXDeg             float64
	TiltYDeg             float64
	SinglePingStdCmS     float64
	TransducerStrengthDB float64
	PingCount            float64
	AbsTiltDeg           float64
	MaxTiltDeg           float64
	StdTiltDeg           float64
	TemperatureDegC      float64
}

func (*AanderaaCurrentMeter) Name() string { return "AanderaaCurrentMeter" }

func (m *AanderaaCurrentMeter) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Float64("abs_speed_cm_s", &m.AbsSpeedCmS),
		wire.Float64("direction_deg_m", &m.DirectionDegM),
		wire.Float64("north_cm_s", &m.NorthCmS),
		wire.Float64("east_cm_s", &m.EastCmS),
		wire.Float64("heading_deg_m", &m.HeadingDegM),
		wire.Float64("tilt_x_deg", &m.TiltXDeg),
		wire.Float64("tilt_y_deg", &m.TiltYDeg),
		wire.Float64("single_ping_std_cm_s", &m.SinglePingStdCmS),
		wire.Float64("transducer_strength_db", &m.TransducerStrengthDB),
		wire.Float64("ping_count", &m.PingCount),
		wire.Float64("abs_tilt_deg", &m.AbsTiltDeg),
		wire.Float64("max_tilt_deg", &m.MaxTiltDeg),
		wire.Float64("std_tilt_deg", &m.StdTiltDeg),
		wire.Float64("temperature_deg_c", &m.TemperatureDegC),
	)
}

// AanderaaData is a summary of Aanderaa current statistics. It has no
// sensor header.
type AanderaaData struct {
	AbsSpeedMeanCmS        float64
	AbsSpeedStddevCmS      float64
	DirectionCircMeanRad   float64
	DirectionCircStddevRad float64
	TemperatureMeanDegC    float64
}

func (*AanderaaData) Name() string { return "AanderaaData" }

func (m *AanderaaData) Table() wire.Table {
	return strict(
		wire.Float64("abs_speed_mean_cm_s", &m.AbsSpeedMeanCmS),
		wire.Float64("abs_speed_stddev_cm_s", &m.AbsSpeedStddevCmS),
		wire.Float64("direction_circ_mean_rad", &m.DirectionCircMeanRad),
		wire.Float64("direction_circ_stddev_rad", &m.DirectionCircStddevRad),
		wire.Float64("temperature_mean_degC", &m.TemperatureMeanDegC),
	)
}

// BarometricPressure is a barometer reading.
type BarometricPressure struct {
	Header                 SensorHeader
	BarometricPressureMbar float64
}

func (*BarometricPressure) Name() string { return "BarometricPressure" }

func (m *BarometricPressure) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Float64("barometric_pressure_mbar", &m.BarometricPressureMbar),
	)
}

// PmeDissolvedOxygen is a PME miniDOT dissolved oxygen reading. The
// salinity used for compensation is single precision on the wire.
type PmeDissolvedOxygen struct {
	Header          SensorHeader
	TemperatureDegC float64
	DOMgPerL        float64
	Quality         float64
	DOSaturationPct float64
	SalinityPPT     float32
}

func (*PmeDissolvedOxygen) Name() string { return "PmeDissolvedOxygen" }

func (m *PmeDissolvedOxygen) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Float64("temperature_deg_c", &m.TemperatureDegC),
		wire.Float64("do_mg_per_l", &m.DOMgPerL),
		wire.Float64("quality", &m.Quality),
		wire.Float64("do_saturation_pct", &m.DOSaturationPct),
		wire.Float32("salinity_ppt", &m.SalinityPPT),
	)
}

// PmeWipe reports a PME sensor wiper cycle.
type PmeWipe struct {
	Header      SensorHeader
	WipeTimeSec float64
	Start1MA    float64
	AvgMA       float64
	Start2MA    float64
	FinalMA     float64
	RSource     float64
}

func (*PmeWipe) Name() string { return "PmeWipe" }

func (m *PmeWipe) Table() wire.Table {
	return withHeader(&m.Header,
		wire.Float64("wipe_time_sec", &m.WipeTimeSec),
		wire.Float64("start1_mA", &m.Start1MA),
		wire.Float64("avg_mA", &m.AvgMA),
		wire.Float64("start2_mA", &m.Start2MA),
		wire.Float64("final_mA", &m.FinalMA),
		wire.Float64("rsource", &m.RSource),
	)
}
