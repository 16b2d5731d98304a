package schema

import (
	"fmt"
	"strings"

	"github.com/bristlemouth/bm-messages-go/pkg/messages"
	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// slot is the storage behind one field. Only the member matching the
// field's type is used.
type slot struct {
	u8  uint8
	u16 uint16
	u32 uint32
	u64 uint64
	bl  bool
	f32 float32
	f64 float64
	s   string
	b   []byte
}

// Record holds one message of a Schema. It implements messages.Message, so
// the messages package codec functions accept it.
type Record struct {
	schema *Schema
	header messages.SensorHeader
	slots  []slot
	fields []wire.Field
}

// New returns a zero record. A schema with a header starts with its version
// set.
func (s *Schema) New() *Record {
	r := &Record{schema: s, slots: make([]slot, len(s.types))}
	if s.def.Header {
		r.header.Version = s.version()
		r.fields = append(r.fields, r.header.Fields()...)
	}
	for i, t := range s.types {
		r.fields = append(r.fields, r.bind(i, t))
	}
	return r
}

func (r *Record) bind(i int, t wire.Type) wire.Field {
	def := r.schema.def.Fields[i]
	sl := &r.slots[i]

	var f wire.Field
	switch t {
	case wire.TypeUint8:
		f = wire.Uint8(def.Key, &sl.u8)
	case wire.TypeUint16:
		f = wire.Uint16(def.Key, &sl.u16)
	case wire.TypeUint32:
		f = wire.Uint32(def.Key, &sl.u32)
	case wire.TypeUint64:
		f = wire.Uint64(def.Key, &sl.u64)
	case wire.TypeBool:
		f = wire.Bool(def.Key, &sl.bl)
	case wire.TypeSimple:
		f = wire.Simple(def.Key, &sl.u8)
	case wire.TypeFloat32:
		f = wire.Float32(def.Key, &sl.f32)
	case wire.TypeFloat64:
		f = wire.Float64(def.Key, &sl.f64)
	case wire.TypeString:
		f = wire.String(def.Key, &sl.s)
	case wire.TypeBytes:
		f = wire.Bytes(def.Key, &sl.b)
	default:
		return wire.Field{Key: def.Key}
	}
	if def.Checked {
		f = f.Checked()
	}
	return f
}

// Name returns the schema name.
func (r *Record) Name() string { return r.schema.Name() }

// Schema returns the record's schema.
func (r *Record) Schema() *Schema { return r.schema }

// Table returns the record's fields. Strictness follows the definition.
func (r *Record) Table() wire.Table {
	return wire.Table{Fields: r.fields, StrictOrder: r.schema.def.Strict}
}

// Header returns the sensor header, or nil when the schema has none.
func (r *Record) Header() *messages.SensorHeader {
	if !r.schema.def.Header {
		return nil
	}
	return &r.header
}

// Set stores v under key.
func (r *Record) Set(key string, v any) error {
	f, ok := r.Table().Lookup(key)
	if !ok {
		return &wire.Error{Code: wire.CodeUnrecognizedKey, Op: "Set", Key: key, Detail: "not in " + r.Name()}
	}
	return f.Set(v)
}

// Get returns the value under key.
func (r *Record) Get(key string) (any, bool) {
	f, ok := r.Table().Lookup(key)
	if !ok {
		return nil, false
	}
	return f.Value(), true
}

// Values returns every field value keyed by wire key.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.fields))
	for _, f := range r.fields {
		out[f.Key] = f.Value()
	}
	return out
}

// Apply sets every key in values. See messages.Apply.
func (r *Record) Apply(values map[string]any) error {
	return messages.Apply(r, values)
}

// Encode writes r into buf and returns its size.
func (r *Record) Encode(buf []byte, opts ...wire.Option) (int, error) {
	return messages.Encode(buf, r, opts...)
}

// Size returns the encoded size of r.
func (r *Record) Size() (int, error) {
	return messages.Size(r)
}

// Marshal encodes r into a buffer of exactly the right size.
func (r *Record) Marshal(opts ...wire.Option) ([]byte, error) {
	return messages.Marshal(r, opts...)
}

// Decode reads data into r. A strict schema needs its keys in order; any
// other schema is decoded tolerantly.
func (r *Record) Decode(data []byte, opts ...wire.Option) error {
	if r.schema.def.Strict {
		return messages.Decode(data, r, opts...)
	}
	return messages.DecodeLenient(data, r, opts...)
}

// String renders the record as name{key=value ...} for debugging.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString(r.Name())
	sb.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%v", f.Key, f.Value())
	}
	sb.WriteByte('}')
	return sb.String()
}
