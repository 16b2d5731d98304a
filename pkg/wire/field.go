package wire

import "fmt"

// Type is the wire rule of a Field.
type Type uint8

const (
	// TypeInvalid is the zero Type; fields of this type cannot be encoded or decoded.
	TypeInvalid Type = iota
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeBytes
	// TypeBool is carried as the unsigned integer 0 or 1.
	TypeBool
	// TypeSimple is a uint8 carried as a CBOR simple value (major type 7).
	// Values 24 through 31 have no simple value encoding.
	TypeSimple
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeUint8:   "uint8",
	TypeUint16:  "uint16",
	TypeUint32:  "uint32",
	TypeUint64:  "uint64",
	TypeFloat32: "float32",
	TypeFloat64: "float64",
	TypeString:  "string",
	TypeBytes:   "bytes",
	TypeBool:    "bool",
	TypeSimple:  "simple",
}

// String returns the type name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// ParseType returns the Type named s, as printed by String.
func ParseType(s string) (Type, bool) {
	for t := TypeUint8; int(t) < len(typeNames); t++ {
		if typeNames[t] == s {
			return t, true
		}
	}
	return TypeInvalid, false
}

// IsUnsigned reports whether t is one of the unsigned integer types.
func (t Type) IsUnsigned() bool {
	return t >= TypeUint8 && t <= TypeUint64
}

// unsigned is the set of destination types for unsigned integer fields.
type unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// uintRef reads and writes an unsigned destination through a uint64.
type uintRef interface {
	load() uint64
	store(v uint64)
	max() uint64
}

type uintPtr[T unsigned] struct{ p *T }

func (r uintPtr[T]) load() uint64   { return uint64(*r.p) }
func (r uintPtr[T]) store(v uint64) { *r.p = T(v) }
func (r uintPtr[T]) max() uint64    { return uint64(^T(0)) }

// Field binds a map key to a typed location in a message struct.
//
// Fields are built with the typed constructors, which tie the Type to the
// pointer's Go type. A zero Field has TypeInvalid and fails with
// UnsupportedFieldType. A Field borrows its location for one encode or
// decode; it never owns it.
type Field struct {
	Key  string
	Type Type

	checked bool

	u   uintRef
	bl  *bool
	f32 *float32
	f64 *float64
	s   *string
	b   *[]byte
}

// Unsigned binds key to an unsigned integer destination of any width,
// including named types such as enums.
func Unsigned[T unsigned](key string, p *T) Field {
	r := uintPtr[T]{p}
	var t Type
	switch r.max() {
	case 0xff:
		t = TypeUint8
	case 0xffff:
		t = TypeUint16
	case 0xffffffff:
		t = TypeUint32
	default:
		t = TypeUint64
	}
	f := Field{Key: key, Type: t}
	if p != nil {
		f.u = r
	}
	return f
}

// Uint8 binds key to an 8-bit unsigned integer.
func Uint8(key string, p *uint8) Field { return Unsigned(key, p) }

// Uint16 binds key to a 16-bit unsigned integer.
func Uint16(key string, p *uint16) Field { return Unsigned(key, p) }

// Uint32 binds key to a 32-bit unsigned integer.
func Uint32(key string, p *uint32) Field { return Unsigned(key, p) }

// Uint64 binds key to a 64-bit unsigned integer.
func Uint64(key string, p *uint64) Field { return Unsigned(key, p) }

// Bool binds key to a boolean carried as the unsigned integer 0 or 1.
func Bool(key string, p *bool) Field { return Field{Key: key, Type: TypeBool, bl: p} }

// Simple binds key to a uint8 carried as a CBOR simple value.
func Simple(key string, p *uint8) Field {
	f := Field{Key: key, Type: TypeSimple}
	if p != nil {
		f.u = uintPtr[uint8]{p}
	}
	return f
}

// Float32 binds key to a single precision float. The wire item must be a
// float32.
func Float32(key string, p *float32) Field { return Field{Key: key, Type: TypeFloat32, f32: p} }

// Float64 binds key to a double precision float. The wire item must be a
// float64.
func Float64(key string, p *float64) Field { return Field{Key: key, Type: TypeFloat64, f64: p} }

// String binds key to a text string.
func String(key string, p *string) Field { return Field{Key: key, Type: TypeString, s: p} }

// Bytes binds key to a byte string. Decoding allocates a new slice.
func Bytes(key string, p *[]byte) Field { return Field{Key: key, Type: TypeBytes, b: p} }

// Checked returns a copy of f that rejects wire values too large for its
// destination with OutOfRange instead of truncating them. The destination
// is left unmodified. Only unsigned and bool fields narrow.
func (f Field) Checked() Field {
	f.checked = true
	return f
}

// IsChecked reports whether f was built with Checked.
func (f Field) IsChecked() bool { return f.checked }

// bound reports whether f has a location matching its Type.
func (f Field) bound() bool {
	switch f.Type {
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64, TypeSimple:
		return f.u != nil
	case TypeBool:
		return f.bl != nil
	case TypeFloat32:
		return f.f32 != nil
	case TypeFloat64:
		return f.f64 != nil
	case TypeString:
		return f.s != nil
	case TypeBytes:
		return f.b != nil
	}
	return false
}

// Value returns the current value at f's location: uint64 for unsigned
// and simple types, bool, float32, float64, string or []byte. It returns nil for an
// unbound field.
func (f Field) Value() any {
	if !f.bound() {
		return nil
	}
	switch f.Type {
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64, TypeSimple:
		return f.u.load()
	case TypeBool:
		return *f.bl
	case TypeFloat32:
		return *f.f32
	case TypeFloat64:
		return *f.f64
	case TypeString:
		return *f.s
	default:
		return *f.b
	}
}

// heap reports whether decoding f allocates.
func (f Field) heap() bool {
	return f.Type == TypeString || f.Type == TypeBytes
}

// release drops a decoded allocation.
func (f Field) release() {
	switch f.Type {
	case TypeString:
		*f.s = ""
	case TypeBytes:
		*f.b = nil
	}
}

// Set stores v at f's location, converting from the loosely typed values
// that YAML and JSON decoders produce. Integers must be non-negative and fit
// the destination; floats must be integral to set an unsigned field. Bytes
// accept []byte, a string, or a list of integers 0-255.
func (f Field) Set(v any) error {
	if !f.bound() {
		return &Error{Code: CodeUnsupportedFieldType, Op: "Set", Key: f.Key, Detail: fmt.Sprintf("type %s", f.Type)}
	}
	switch f.Type {
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		u, err := toUint(f.Key, v, f.u.max())
		if err != nil {
			return err
		}
		f.u.store(u)
	case TypeSimple:
		u, err := toUint(f.Key, v, 0xff)
		if err != nil {
			return err
		}
		if reservedSimple(u) {
			return &Error{Code: CodeImproperValue, Op: "Set", Key: f.Key,
				Detail: fmt.Sprintf("%d has no simple value encoding", u)}
		}
		f.u.store(u)
	case TypeBool:
		if b, ok := v.(bool); ok {
			*f.bl = b
			return nil
		}
		u, err := toUint(f.Key, v, 1)
		if err != nil {
			return err
		}
		*f.bl = u != 0
	case TypeFloat32:
		x, err := toFloat(f.Key, v)
		if err != nil {
			return err
		}
		*f.f32 = float32(x)
	case TypeFloat64:
		x, err := toFloat(f.Key, v)
		if err != nil {
			return err
		}
		*f.f64 = x
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return improper(f.Key, v, "string")
		}
		*f.s = s
	case TypeBytes:
		b, err := toBytes(f.Key, v)
		if err != nil {
			return err
		}
		*f.b = b
	}
	return nil
}

func improper(key string, v any, want string) error {
	return &Error{Code: CodeImproperValue, Op: "Set", Key: key, Detail: fmt.Sprintf("%T is not a %s", v, want)}
}

func toUint(key string, v any, limit uint64) (uint64, error) {
	var u uint64
	switch x := v.(type) {
	case int:
		if x < 0 {
			return 0, &Error{Code: CodeImproperValue, Op: "Set", Key: key, Detail: fmt.Sprintf("negative value %d", x)}
		}
		u = uint64(x)
	case int64:
		if x < 0 {
			return 0, &Error{Code: CodeImproperValue, Op: "Set", Key: key, Detail: fmt.Sprintf("negative value %d", x)}
		}
		u = uint64(x)
	case uint:
		u = uint64(x)
	case uint64:
		u = x
	case uint32:
		u = uint64(x)
	case float64:
		if x < 0 || x != float64(uint64(x)) {
			return 0, &Error{Code: CodeImproperValue, Op: "Set", Key: key, Detail: fmt.Sprintf("%v is not an unsigned integer", x)}
		}
		u = uint64(x)
	default:
		return 0, improper(key, v, "unsigned integer")
	}
	if u > limit {
		return 0, &Error{Code: CodeOutOfRange, Op: "Set", Key: key, Detail: fmt.Sprintf("%d exceeds %d", u, limit)}
	}
	return u, nil
}

func toFloat(key string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	default:
		return 0, improper(key, v, "number")
	}
}

func toBytes(key string, v any) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	case []any:
		if len(x) == 0 {
			return nil, nil
		}
		b := make([]byte, len(x))
		for i, e := range x {
			u, err := toUint(key, e, 0xff)
			if err != nil {
				return nil, err
			}
			b[i] = byte(u)
		}
		return b, nil
	default:
		return nil, improper(key, v, "byte string")
	}
}
