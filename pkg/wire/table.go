package wire

import (
	"errors"
	"fmt"

	"github.com/bristlemouth/bm-messages-go/pkg/log"
)

// Table is the ordered field list of one message, bound to one instance.
// Build it fresh for each call.
type Table struct {
	Fields []Field

	// StrictOrder requires the incoming map to declare exactly len(Fields)
	// pairs with the table's keys in table order.
	StrictOrder bool
}

// Len returns the number of fields.
func (t Table) Len() int { return len(t.Fields) }

// Lookup returns the field with the given key.
func (t Table) Lookup(key string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Validate checks that every field is bound and that keys are unique,
// non-empty and no longer than MaxKeyLen.
func (t Table) Validate() error {
	seen := make(map[string]struct{}, len(t.Fields))
	for i, f := range t.Fields {
		switch {
		case !f.bound():
			return &Error{Code: CodeUnsupportedFieldType, Op: "Validate", Key: f.Key,
				Detail: fmt.Sprintf("field %d has type %s and no location", i, f.Type)}
		case f.Key == "":
			return &Error{Code: CodeImproperValue, Op: "Validate", Detail: fmt.Sprintf("field %d has an empty key", i)}
		case len(f.Key) > MaxKeyLen:
			return &Error{Code: CodeImproperValue, Op: "Validate", Key: f.Key,
				Detail: fmt.Sprintf("key longer than %d bytes", MaxKeyLen)}
		}
		if _, dup := seen[f.Key]; dup {
			return &Error{Code: CodeImproperValue, Op: "Validate", Key: f.Key, Detail: "duplicate key"}
		}
		seen[f.Key] = struct{}{}
	}
	return nil
}

// EncodeFields writes every field of t in order.
//
// A BufferTooSmall result does not stop the walk, so the encoder's size
// accounts for the whole table. Any fatal error stops it immediately.
func EncodeFields(e *Encoder, t Table) error {
	var err error
	for _, f := range t.Fields {
		if ferr := e.PutField(f); ferr != nil {
			if !IsAcceptable(ferr) {
				return ferr
			}
			err = ferr
		}
	}
	return err
}

// DecodeFields reads pairs from d into the fields of t.
//
// Without StrictOrder the input drives the loop: matching keys are decoded,
// unknown and over-long keys are skipped, and absent fields are left alone.
// After the map is exhausted an UnrecognizedKey error lists the skipped
// keys, unless a checked field was out of range, which is reported first.
// With StrictOrder every table key must appear, in order.
//
// If decoding stops on a fatal error, string and byte fields populated by
// this call are reset to their zero value.
func DecodeFields(d *Decoder, t Table) error {
	filled, aggregate, err := decodeFields(d, t)
	if err != nil {
		releaseAll(filled)
		return err
	}
	return aggregate
}

func releaseAll(fields []Field) {
	for _, f := range fields {
		f.release()
	}
}

func decodeFields(d *Decoder, t Table) (filled []Field, aggregate, err error) {
	if t.StrictOrder {
		return decodeStrict(d, t)
	}
	return decodeTolerant(d, t)
}

func decodeStrict(d *Decoder, t Table) (filled []Field, aggregate, err error) {
	const op = "DecodeFields"
	var outOfRange []string
	for _, f := range t.Fields {
		key, err := d.key(op, f.Key)
		if err != nil {
			return filled, nil, err
		}
		if key != f.Key {
			return filled, nil, d.fail(&Error{Code: CodeUnrecognizedKey, Op: op, Key: f.Key,
				Detail: fmt.Sprintf("found %q", key)})
		}
		if err := d.readValue(op, f); err != nil {
			if errors.Is(err, ErrOutOfRange) {
				outOfRange = append(outOfRange, key)
				continue
			}
			return filled, nil, err
		}
		if f.heap() {
			filled = append(filled, f)
		}
	}
	if len(outOfRange) > 0 {
		return filled, &Error{Code: CodeOutOfRange, Op: op, Keys: outOfRange}, nil
	}
	return filled, nil, nil
}

func decodeTolerant(d *Decoder, t Table) (filled []Field, aggregate, err error) {
	const op = "DecodeFields"
	var unknown, outOfRange []string
	for d.More() {
		key, skipped, err := d.tolerantKey(op)
		if err != nil {
			return filled, nil, err
		}
		if skipped {
			unknown = append(unknown, key)
			continue
		}
		f, ok := t.Lookup(key)
		if !ok {
			if err := d.skipUnknown(op, key); err != nil {
				return filled, nil, err
			}
			unknown = append(unknown, key)
			continue
		}

		if err := d.readValue(op, f); err != nil {
			if errors.Is(err, ErrOutOfRange) {
				outOfRange = append(outOfRange, key)
				continue
			}
			return filled, nil, err
		}
		if f.heap() {
			filled = append(filled, f)
		}
	}

	switch {
	case len(outOfRange) > 0:
		return filled, &Error{Code: CodeOutOfRange, Op: op, Keys: outOfRange}, nil
	case len(unknown) > 0:
		return filled, &Error{Code: CodeUnrecognizedKey, Op: op, Keys: unknown}, nil
	}
	return filled, nil, nil
}

// tolerantKey consumes the key of the next pair. A key longer than
// MaxKeyLen is not read: the whole pair is skipped as unrecognized and a
// placeholder name is returned with skipped set.
func (d *Decoder) tolerantKey(op string) (key string, skipped bool, err error) {
	if !d.More() {
		return "", false, d.fail(&Error{Code: CodeFieldCountMismatch, Op: op,
			Detail: fmt.Sprintf("all %d pairs consumed", d.count)})
	}
	if _, err := d.expect(op, "", majorText, "text string key"); err != nil {
		return "", false, err
	}
	h, err := readHead(d.data[d.off:d.end])
	if err != nil {
		return "", false, d.fail(&Error{Code: CodeMalformedInput, Op: op, Err: err})
	}
	if h.indefinite || h.arg <= MaxKeyLen {
		key, err := d.key(op, "")
		return key, false, err
	}
	if err := d.skip(op, ""); err != nil {
		return "", false, err
	}
	d.read++
	name := fmt.Sprintf("<%d-byte key>", h.arg)
	if err := d.skipUnknown(op, name); err != nil {
		return "", false, err
	}
	return name, true, nil
}

// TolerantKey consumes the key of the next pair the way DecodeFields does
// for a non-strict table. Keys longer than MaxKeyLen are skipped with their
// value, logged as unknown, and reported by a placeholder name with skipped
// set.
func (d *Decoder) TolerantKey() (key string, skipped bool, err error) {
	return d.tolerantKey("TolerantKey")
}

// SkipUnknown logs key as unrecognized and skips its value.
func (d *Decoder) SkipUnknown(key string) error { return d.skipUnknown("SkipUnknown", key) }

func (d *Decoder) skipUnknown(op, key string) error {
	d.cfg.emit(log.Event{Operation: log.OperationDecode, Category: log.CategoryUnknownKey, Key: key})
	return d.skip(op, key)
}

// readValue decodes the value of the current pair into f.
func (d *Decoder) readValue(op string, f Field) error {
	if !f.bound() {
		return d.fail(&Error{Code: CodeUnsupportedFieldType, Op: op, Key: f.Key,
			Detail: fmt.Sprintf("type %s", f.Type)})
	}
	switch f.Type {
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		v, err := d.uintValue(op, f.Key)
		if err != nil {
			return err
		}
		if f.checked && v > f.u.max() {
			return &Error{Code: CodeOutOfRange, Op: op, Key: f.Key,
				Detail: fmt.Sprintf("%d does not fit %s", v, f.Type)}
		}
		f.u.store(v)
	case TypeBool:
		v, err := d.uintValue(op, f.Key)
		if err != nil {
			return err
		}
		if f.checked && v > 1 {
			return &Error{Code: CodeOutOfRange, Op: op, Key: f.Key,
				Detail: fmt.Sprintf("%d is not a boolean", v)}
		}
		*f.bl = v != 0
	case TypeSimple:
		v, err := d.simpleValue(op, f.Key)
		if err != nil {
			return err
		}
		f.u.store(uint64(v))
	case TypeFloat32:
		v, err := d.float32Value(op, f.Key)
		if err != nil {
			return err
		}
		*f.f32 = v
	case TypeFloat64:
		v, err := d.float64Value(op, f.Key)
		if err != nil {
			return err
		}
		*f.f64 = v
	case TypeString:
		v, err := d.textValue(op, f.Key)
		if err != nil {
			return err
		}
		*f.s = v
	case TypeBytes:
		v, err := d.bytesValue(op, f.Key)
		if err != nil {
			return err
		}
		*f.b = v
	}
	return nil
}

// Encode writes t as one message into buf and returns its size.
//
// A BufferTooSmall error carries the extra bytes needed in Needed.
func Encode(buf []byte, t Table, opts ...Option) (int, error) {
	e, err := NewEncoder(buf, len(t.Fields), opts...)
	if !IsAcceptable(err) {
		return 0, err
	}
	if err := EncodeFields(e, t); !IsAcceptable(err) {
		return 0, err
	}
	return e.Finish()
}

// Size returns the encoded size of t.
func Size(t Table) (int, error) {
	e, err := NewEncoder(nil, len(t.Fields))
	if !IsAcceptable(err) {
		return 0, err
	}
	if err := EncodeFields(e, t); !IsAcceptable(err) {
		return 0, err
	}
	if _, err := e.Finish(); !IsAcceptable(err) {
		return 0, err
	}
	return e.Size(), nil
}

// Marshal encodes t into a buffer of exactly the right size.
func Marshal(t Table, opts ...Option) ([]byte, error) {
	n, err := Size(t)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	n, err = Encode(buf, t, opts...)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Decode reads one message from data into t.
//
// A StrictOrder table also requires the declared pair count to equal
// len(t.Fields). Bytes after the map are TrailingData. On a fatal error the
// string and byte fields populated by this call are reset; scalar fields
// keep whatever was decoded before the failure.
func Decode(data []byte, t Table, opts ...Option) error {
	expected := AnyCount
	if t.StrictOrder {
		expected = len(t.Fields)
	}
	d, err := Enter(data, expected, opts...)
	if err != nil {
		return err
	}
	filled, aggregate, err := decodeFields(d, t)
	if err == nil {
		err = d.Leave()
	}
	if err != nil {
		releaseAll(filled)
		return err
	}
	return aggregate
}
