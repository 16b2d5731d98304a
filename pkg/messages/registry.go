package messages

import "sort"

var registry = map[string]func() Message{}

func register(newFn func() Message) {
	registry[newFn().Name()] = newFn
}

func init() {
	register(func() Message { return new(SoftData) })
	register(func() Message { return new(RbrData) })
	register(func() Message { return new(RbrPressureDifferenceSignal) })
	register(func() Message { return new(SeapointTurbidity) })
	register(func() Message { return new(AanderaaConductivity) })
	register(func() Message { return new(AanderaaCurrentMeter) })
	register(func() Message { return new(AanderaaData) })
	register(func() Message { return new(BarometricPressure) })
	register(func() Message { return new(PmeDissolvedOxygen) })
	register(func() Message { return new(PmeWipe) })
	register(func() Message { return new(PowerReading) })
	register(func() Message { return new(PowerReadingAverages) })
	register(func() Message { return new(PowerInfoReply) })
	register(func() Message { return new(SysInfoReply) })
	register(func() Message { return new(ConfigCborMapRequest) })
	register(func() Message { return new(ConfigCborMapReply) })
	register(func() Message { return new(DeviceTestRequest) })
	register(func() Message { return new(DeviceTestReply) })
	register(func() Message { return new(BorealisSpectrum) })
	register(func() Message { return new(BorealisLevels) })
	register(func() Message { return new(BorealisLevelStatistics) })
	register(func() Message { return new(BorealisRecordingStatus) })
}

// New returns a zero message of the named type, or nil if the name is not
// registered.
func New(name string) Message {
	if newFn, ok := registry[name]; ok {
		return newFn()
	}
	return nil
}

// Lookup reports whether name is a registered message.
func Lookup(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names returns the registered message names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
