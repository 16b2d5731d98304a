package messages

import (
	"fmt"
	"sort"

	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// valueSetter is implemented by messages with keys outside their table.
type valueSetter interface {
	setValue(key string, v any) (bool, error)
}

// Apply sets the fields of m named by the keys of values. Keys m does not
// have are an UnrecognizedKey error listing them; the known keys are still
// applied.
func Apply(m Message, values map[string]any) error {
	t := m.Table()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var unknown []string
	for _, k := range keys {
		if s, ok := m.(valueSetter); ok {
			handled, err := s.setValue(k, values[k])
			if err != nil {
				return fmt.Errorf("%s: %w", m.Name(), err)
			}
			if handled {
				continue
			}
		}
		f, ok := t.Lookup(k)
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		if err := f.Set(values[k]); err != nil {
			return fmt.Errorf("%s: %w", m.Name(), err)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%s: %w", m.Name(), &wire.Error{Code: wire.CodeUnrecognizedKey, Op: "Apply", Keys: unknown})
	}
	return nil
}

func (m *RbrPressureDifferenceSignal) setValue(key string, v any) (bool, error) {
	if key != differenceSignalKey {
		return false, nil
	}
	list, ok := v.([]any)
	if !ok {
		return true, &wire.Error{Code: wire.CodeImproperValue, Op: "Apply", Key: key, Detail: fmt.Sprintf("%T is not a list", v)}
	}
	signal := make([]float64, len(list))
	for i, e := range list {
		if err := wire.Float64(key, &signal[i]).Set(e); err != nil {
			return true, err
		}
	}
	m.DifferenceSignal = signal
	return true, nil
}
