package inspect

import (
	"strings"

	"github.com/bristlemouth/bm-messages-go/pkg/messages"
)

type enumFunc func(v uint64) string

// Enum tables for rendering unsigned fields by name. keyEnums apply to any
// message with the key; messageEnums only to the named message.
var (
	keyEnums = map[string]enumFunc{
		"sensor_type":        func(v uint64) string { return messages.SensorType(v).String() },
		"power_reading_type": func(v uint64) string { return messages.PowerReadingType(v).String() },
	}
	messageEnums = map[string]map[string]enumFunc{
		"PowerReading":         {"status": powerStatus},
		"PowerReadingAverages": {"status": powerStatus},
		"BorealisRecordingStatus": {"flags": func(v uint64) string {
			if v&1 != 0 {
				return "RECORDING"
			}
			return "IDLE"
		}},
	}
)

func powerStatus(v uint64) string { return messages.PowerStatus(v).String() }

// EnumName returns the constant name of value v of key in message.
func EnumName(message, key string, v uint64) (string, bool) {
	if fns, ok := messageEnums[message]; ok {
		if fn, ok := fns[key]; ok {
			return fn(v), true
		}
	}
	if fn, ok := keyEnums[key]; ok {
		return fn(v), true
	}
	return "", false
}

// ResolveMessageName resolves a message name to its registered form
// (case-insensitive).
func ResolveMessageName(name string) (string, bool) {
	if messages.Lookup(name) {
		return name, true
	}
	for _, n := range messages.Names() {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

// ResolveKeyName resolves a key of the named message (case-insensitive).
func ResolveKeyName(message, key string) (string, bool) {
	m := messages.New(message)
	if m == nil {
		return "", false
	}
	for _, k := range Keys(m) {
		if strings.EqualFold(k, key) {
			return k, true
		}
	}
	return "", false
}

// Keys returns every wire key of m, including keys outside its table.
func Keys(m messages.Message) []string {
	t := m.Table()
	keys := make([]string, 0, len(t.Fields)+1)
	for _, f := range t.Fields {
		keys = append(keys, f.Key)
	}
	if _, ok := m.(*messages.RbrPressureDifferenceSignal); ok {
		keys = append(keys, "difference_signal")
	}
	return keys
}
