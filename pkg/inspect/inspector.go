package inspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bristlemouth/bm-messages-go/pkg/messages"
	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// Inspector errors.
var (
	ErrNotIdentified = errors.New("no registered message matches")
	ErrAmbiguous     = errors.New("several registered messages match")
)

// Inspector decodes raw buffers into registered messages for display.
type Inspector struct {
	formatter *Formatter
	opts      []wire.Option
}

// NewInspector creates a new Inspector. A nil formatter uses the defaults.
// opts are passed to every decode.
func NewInspector(f *Formatter, opts ...wire.Option) *Inspector {
	if f == nil {
		f = NewFormatter()
	}
	return &Inspector{formatter: f, opts: opts}
}

// Formatter returns the inspector's formatter.
func (i *Inspector) Formatter() *Formatter {
	return i.formatter
}

// Report is a decoded message ready for display.
type Report struct {
	Message string
	Size    int
	Rows    []FieldRow

	// Warning is a non-fatal decode result such as skipped keys.
	Warning error

	decoded messages.Message
}

// Decoded returns the decoded message.
func (r *Report) Decoded() messages.Message { return r.decoded }

// Row returns the row with the given key.
func (r *Report) Row(key string) (FieldRow, bool) {
	for _, row := range r.Rows {
		if row.Key == key {
			return row, true
		}
	}
	return FieldRow{}, false
}

// Identify returns the registered messages that decode data strictly.
func (i *Inspector) Identify(data []byte) []string {
	var out []string
	for _, name := range messages.Names() {
		if messages.Decode(data, messages.New(name)) == nil {
			out = append(out, name)
		}
	}
	return out
}

// Inspect decodes data as the named message. An empty name identifies the
// message first. Skipped keys and out-of-range values are reported in
// Warning; any other decode error fails.
func (i *Inspector) Inspect(name string, data []byte, lenient bool) (*Report, error) {
	if name == "" {
		found := i.Identify(data)
		switch len(found) {
		case 0:
			return nil, ErrNotIdentified
		case 1:
			name = found[0]
		default:
			return nil, fmt.Errorf("%w: %s", ErrAmbiguous, strings.Join(found, ", "))
		}
	}

	resolved, ok := ResolveMessageName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMessage, name)
	}
	m := messages.New(resolved)

	var err error
	if lenient {
		err = messages.DecodeLenient(data, m, i.opts...)
	} else {
		err = messages.Decode(data, m, i.opts...)
	}
	report := &Report{Message: resolved, Size: len(data), decoded: m}
	if err != nil {
		if !isSkipped(err) {
			return nil, err
		}
		report.Warning = err
	}

	report.Rows = i.formatter.Rows(resolved, m.Table())
	if sig, ok := m.(*messages.RbrPressureDifferenceSignal); ok {
		report.Rows = append(report.Rows, FieldRow{
			Key:   "difference_signal",
			Type:  "array",
			Value: i.formatter.FormatValue(sig.DifferenceSignal, ""),
		})
	}
	return report, nil
}

// isSkipped reports whether err only lists keys a lenient decode skipped
// or could not narrow.
func isSkipped(err error) bool {
	var e *wire.Error
	if !errors.As(err, &e) || len(e.Keys) == 0 {
		return false
	}
	return e.Code == wire.CodeUnrecognizedKey || e.Code == wire.CodeOutOfRange
}

// Format renders a report.
func (i *Inspector) Format(r *Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d bytes):\n", r.Message, r.Size)
	sb.WriteString(i.formatter.FormatRows(r.Rows))
	if r.Warning != nil {
		sb.WriteString(i.formatter.Indent(1, "warning: "+r.Warning.Error()))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Field returns the row addressed by path from data.
func (i *Inspector) Field(path *Path, data []byte, lenient bool) (FieldRow, error) {
	r, err := i.Inspect(path.Message, data, lenient)
	if err != nil {
		return FieldRow{}, err
	}
	row, ok := r.Row(path.Key)
	if !ok {
		return FieldRow{}, fmt.Errorf("%w: %s", ErrUnknownKey, path)
	}
	return row, nil
}
