package inspect

import "strings"

// exactUnits holds keys whose unit cannot be read from a suffix.
var exactUnits = map[string]string{
	"dt":              "s",
	"dt_report":       "s",
	"df":              "Hz",
	"seconds_written": "s",
	"seconds_free":    "s",
	"rsource":         "Ω",
}

// suffixUnits is checked in order; longer suffixes come first where one
// ends another.
var suffixUnits = []struct {
	suffix string
	unit   string
}{
	{"_ms_cm", "mS/cm"},
	{"_cm_s", "cm/s"},
	{"_m_s", "m/s"},
	{"_kg_m3", "kg/m³"},
	{"_mg_per_l", "mg/L"},
	{"_deg_c", "°C"},
	{"_degC", "°C"},
	{"_deg_m", "°M"},
	{"_deg", "°"},
	{"_rad", "rad"},
	{"_deci_bar", "dbar"},
	{"_mbar", "mbar"},
	{"_millis", "ms"},
	{"_ms", "ms"},
	{"_sec", "s"},
	{"_s", "s"},
	{"_ma", "mA"},
	{"_mA", "mA"},
	{"_v", "V"},
	{"_a", "A"},
	{"_psu", "PSU"},
	{"_ppt", "ppt"},
	{"_pct", "%"},
	{"_db", "dB"},
}

// statSuffixes name a statistic of the quantity before them.
var statSuffixes = []string{"_avg", "_min", "_max", "_stdev", "_mean", "_stddev"}

// UnitForKey infers the display unit of a field from its key, or "" when
// the key does not name one.
func UnitForKey(key string) string {
	if u, ok := exactUnits[key]; ok {
		return u
	}
	for _, s := range statSuffixes {
		if base, ok := strings.CutSuffix(key, s); ok {
			if u := UnitForKey(base); u != "" {
				return u
			}
		}
	}
	for _, su := range suffixUnits {
		if strings.HasSuffix(key, su.suffix) {
			return su.unit
		}
	}
	return ""
}
