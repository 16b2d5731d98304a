package inspect

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// Formatter formats decoded messages for display.
type Formatter struct {
	// ShowTypes includes the wire type of each field.
	ShowTypes bool

	// ShowRaw adds the raw number next to enum names and timestamps.
	ShowRaw bool

	// IndentWidth is the number of spaces per indent level.
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowTypes:   false,
		ShowRaw:     true,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatValue formats a value for display, including unit conversions.
func (f *Formatter) FormatValue(value any, unit string) string {
	if value == nil {
		return "null"
	}

	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"

	case string:
		return strconv.Quote(v)

	case uint64:
		return f.formatUint64WithUnit(v, unit)

	case uint32:
		return f.formatUint64WithUnit(uint64(v), unit)

	case uint16:
		return f.formatUint64WithUnit(uint64(v), unit)

	case uint8:
		return f.formatUint64WithUnit(uint64(v), unit)

	case int:
		return withUnit(strconv.Itoa(v), unit)

	case float32:
		return f.formatFloatWithUnit(float64(v), 32, unit)

	case float64:
		return f.formatFloatWithUnit(v, 64, unit)

	case []byte:
		if len(v) == 0 {
			return "(empty)"
		}
		return fmt.Sprintf("0x%x", v)

	case []float64:
		parts := make([]string, len(v))
		for i, x := range v {
			parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
		}
		return withUnit("["+strings.Join(parts, ", ")+"]", unit)

	default:
		return fmt.Sprintf("%v", v)
	}
}

func withUnit(s, unit string) string {
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// formatUint64WithUnit formats a uint64 with optional unit and human-readable conversion.
func (f *Formatter) formatUint64WithUnit(v uint64, unit string) string {
	base := withUnit(strconv.FormatUint(v, 10), unit)

	switch unit {
	case "s":
		if v == 0 {
			return base
		}
		return fmt.Sprintf("%s (%s)", base, time.Duration(v)*time.Second)
	default:
		return base
	}
}

// formatFloatWithUnit formats a float in its shortest exact form.
func (f *Formatter) formatFloatWithUnit(v float64, bits int, unit string) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	base := withUnit(strconv.FormatFloat(v, 'g', -1, bits), unit)

	switch unit {
	case "mA":
		return fmt.Sprintf("%s (%.3f A)", base, v/1000.0)
	case "mbar":
		return fmt.Sprintf("%s (%.2f kPa)", base, v/10.0)
	default:
		return base
	}
}

// FormatTimestamp formats milliseconds since the Unix epoch as UTC.
func FormatTimestamp(ms uint64) string {
	if ms > math.MaxInt64 {
		return "out of range"
	}
	return time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339Nano)
}

// FieldRow is one formatted field for display.
type FieldRow struct {
	Key   string
	Value string
	Type  string
	Unit  string
}

// Row formats field f of message.
func (f *Formatter) Row(message string, field wire.Field) FieldRow {
	unit := UnitForKey(field.Key)
	row := FieldRow{Key: field.Key, Type: field.Type.String(), Unit: unit}

	v := field.Value()
	if u, ok := v.(uint64); ok {
		if name, ok := EnumName(message, field.Key, u); ok {
			row.Value = f.withRaw(name, u)
			return row
		}
		if strings.HasSuffix(field.Key, "_utc_ms") {
			row.Value = f.withRaw(FormatTimestamp(u), u)
			return row
		}
	}
	row.Value = f.FormatValue(v, unit)
	return row
}

func (f *Formatter) withRaw(s string, raw uint64) string {
	if !f.ShowRaw {
		return s
	}
	return fmt.Sprintf("%s (%d)", s, raw)
}

// Rows formats every field of t.
func (f *Formatter) Rows(message string, t wire.Table) []FieldRow {
	rows := make([]FieldRow, len(t.Fields))
	for i, field := range t.Fields {
		rows[i] = f.Row(message, field)
	}
	return rows
}

// FormatRows formats rows as an indented list.
func (f *Formatter) FormatRows(rows []FieldRow) string {
	if len(rows) == 0 {
		return f.Indent(1, "(no fields)")
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(f.Indent(1, fmt.Sprintf("%s: %s", row.Key, row.Value)))
		if f.ShowTypes && row.Type != "" {
			fmt.Fprintf(&sb, " (%s)", row.Type)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatTable formats a message table under its name.
func (f *Formatter) FormatTable(message string, t wire.Table) string {
	return message + ":\n" + f.FormatRows(f.Rows(message, t))
}
