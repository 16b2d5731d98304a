package inspect

import "testing"

func TestEnumName(t *testing.T) {
	tests := []struct {
		message string
		key     string
		value   uint64
		want    string
		ok      bool
	}{
		{"RbrData", "sensor_type", 1, "TEMPERATURE", true},
		{"RbrData", "sensor_type", 9, "SensorType(9)", true},
		{"PowerReading", "power_reading_type", 2, "MONITOR", true},
		{"PowerReading", "status", 0, "OKAY", true},
		{"PowerReading", "status", 3, "UNDERVOLTAGE|OVERVOLTAGE", true},
		{"PowerReadingAverages", "status", 8, "OVERCURRENT", true},
		{"BorealisRecordingStatus", "flags", 1, "RECORDING", true},
		{"BorealisRecordingStatus", "flags", 0, "IDLE", true},
		{"SysInfoReply", "status", 1, "", false},
		{"SoftData", "version", 1, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.message+"/"+tt.key, func(t *testing.T) {
			got, ok := EnumName(tt.message, tt.key, tt.value)
			if ok != tt.ok || got != tt.want {
				t.Errorf("EnumName(%q, %q, %d) = %q, %v; want %q, %v", tt.message, tt.key, tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestResolveNames(t *testing.T) {
	if got, ok := ResolveMessageName("softdata"); !ok || got != "SoftData" {
		t.Errorf("ResolveMessageName(softdata) = %q, %v", got, ok)
	}
	if _, ok := ResolveMessageName("Nope"); ok {
		t.Error("ResolveMessageName(Nope) resolved")
	}
	if got, ok := ResolveKeyName("RbrPressureDifferenceSignal", "Difference_Signal"); !ok || got != "difference_signal" {
		t.Errorf("ResolveKeyName(difference_signal) = %q, %v", got, ok)
	}
	if _, ok := ResolveKeyName("Nope", "version"); ok {
		t.Error("ResolveKeyName on unknown message resolved")
	}
}
