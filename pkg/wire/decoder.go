package wire

import (
	"fmt"

	"github.com/bristlemouth/bm-messages-go/pkg/log"
	"github.com/fxamacker/cbor/v2"
)

// AnyCount disables the field-count check in Enter.
const AnyCount = -1

// MaxKeyLen is the longest key the tolerant table decoder looks up. Longer
// keys are skipped as unrecognized.
const MaxKeyLen = 64

// Decoder is a cursor over the pairs of one message map.
type Decoder struct {
	data  []byte
	off   int // cursor into data
	end   int // end of the map item
	count int // declared pairs
	read  int // pairs consumed

	allocated int
	cfg       config
}

// Enter parses data as one CBOR map and positions the cursor at its first
// key.
//
// The first item must be well-formed, must be a map and must have a
// definite length. If expectedCount is not AnyCount, the declared pair count
// must equal it (FieldCountMismatch otherwise). Bytes after the map are
// reported by Leave.
func Enter(data []byte, expectedCount int, opts ...Option) (*Decoder, error) {
	const op = "Enter"
	d := &Decoder{data: data, cfg: newConfig(opts)}

	var raw cbor.RawMessage
	rest, err := unmarshalFirst(data, &raw)
	if err != nil {
		return nil, d.fail(&Error{Code: CodeMalformedInput, Op: op, Err: err})
	}
	d.end = len(data) - len(rest)

	h, err := readHead(data)
	if err != nil {
		return nil, d.fail(&Error{Code: CodeMalformedInput, Op: op, Err: err})
	}
	if h.major != majorMap {
		return nil, d.fail(&Error{Code: CodeUnexpectedWireType, Op: op,
			Detail: "expected map, found " + describe(data[0])})
	}
	if h.indefinite {
		return nil, d.fail(&Error{Code: CodeFieldCountMismatch, Op: op,
			Detail: "indefinite-length map"})
	}
	if expectedCount != AnyCount && h.arg != uint64(expectedCount) {
		return nil, d.fail(&Error{Code: CodeFieldCountMismatch, Op: op,
			Detail: fmt.Sprintf("expected %d fields but got %d", expectedCount, h.arg)})
	}

	d.off = h.size
	d.count = int(h.arg)
	return d, nil
}

// Leave checks that every declared pair was consumed and that nothing
// follows the map.
func (d *Decoder) Leave() error {
	const op = "Leave"
	if d.read != d.count || d.off != d.end {
		return d.fail(&Error{Code: CodeFieldCountMismatch, Op: op,
			Detail: fmt.Sprintf("%d of %d pairs consumed", d.read, d.count)})
	}
	if d.end != len(d.data) {
		return d.fail(&Error{Code: CodeTrailingData, Op: op,
			Detail: fmt.Sprintf("%d bytes after map", len(d.data)-d.end)})
	}
	d.cfg.emit(log.Event{Operation: log.OperationDecode, Category: log.CategoryMessage, Size: d.end})
	return nil
}

// More reports whether pairs remain.
func (d *Decoder) More() bool { return d.read < d.count }

// Len returns the declared number of pairs.
func (d *Decoder) Len() int { return d.count }

// Allocated returns the bytes charged to the allocation budget so far.
func (d *Decoder) Allocated() int { return d.allocated }

func (d *Decoder) fail(err *Error) error {
	d.cfg.emitError(log.OperationDecode, err)
	return err
}

// peek returns the initial byte of the next item.
func (d *Decoder) peek(op, key string) (byte, error) {
	if d.off >= d.end {
		return 0, d.fail(&Error{Code: CodeMalformedInput, Op: op, Key: key, Detail: "unexpected end of map"})
	}
	return d.data[d.off], nil
}

// next decodes the next item into v and advances past it.
func (d *Decoder) next(op, key string, v any) error {
	rest, err := unmarshalFirst(d.data[d.off:d.end], v)
	if err != nil {
		return d.fail(&Error{Code: codeOf(err), Op: op, Key: key, Err: err})
	}
	d.off = d.end - len(rest)
	return nil
}

// skip advances past the next item.
func (d *Decoder) skip(op, key string) error {
	var raw cbor.RawMessage
	return d.next(op, key, &raw)
}

// expect checks that the next item has the given major type.
func (d *Decoder) expect(op, key string, major byte, want string) (byte, error) {
	b, err := d.peek(op, key)
	if err != nil {
		return 0, err
	}
	if getMajorType(b) != major {
		return 0, d.fail(&Error{Code: CodeUnexpectedWireType, Op: op, Key: key,
			Detail: "expected " + want + ", found " + describe(b)})
	}
	return b, nil
}

// key consumes the key of the next pair. It checks the key's wire type, not
// its name.
func (d *Decoder) key(op, expected string) (string, error) {
	if !d.More() {
		return "", d.fail(&Error{Code: CodeFieldCountMismatch, Op: op, Key: expected,
			Detail: fmt.Sprintf("all %d pairs consumed", d.count)})
	}
	if _, err := d.expect(op, expected, majorText, "text string key"); err != nil {
		return "", err
	}
	var k string
	if err := d.next(op, expected, &k); err != nil {
		return "", err
	}
	d.read++
	return k, nil
}

// Key consumes and returns the key of the next pair.
func (d *Decoder) Key() (string, error) { return d.key("Key", "") }

// Skip advances past the next value.
func (d *Decoder) Skip(key string) error { return d.skip("Skip", key) }

// uintPair reads a key and an unsigned integer value.
func (d *Decoder) uintPair(op, key string) (uint64, error) {
	if _, err := d.key(op, key); err != nil {
		return 0, err
	}
	return d.uintValue(op, key)
}

func (d *Decoder) uintValue(op, key string) (uint64, error) {
	if _, err := d.expect(op, key, majorUint, "unsigned integer"); err != nil {
		return 0, err
	}
	var v uint64
	err := d.next(op, key, &v)
	return v, err
}

// Uint8 reads a key and an unsigned integer, truncated to 8 bits.
func (d *Decoder) Uint8(key string) (uint8, error) {
	v, err := d.uintPair("Uint8", key)
	return uint8(v), err
}

// Uint16 reads a key and an unsigned integer, truncated to 16 bits.
func (d *Decoder) Uint16(key string) (uint16, error) {
	v, err := d.uintPair("Uint16", key)
	return uint16(v), err
}

// Uint32 reads a key and an unsigned integer, truncated to 32 bits.
func (d *Decoder) Uint32(key string) (uint32, error) {
	v, err := d.uintPair("Uint32", key)
	return uint32(v), err
}

// Uint64 reads a key and an unsigned integer.
func (d *Decoder) Uint64(key string) (uint64, error) { return d.uintPair("Uint64", key) }

// Bool reads a key and an unsigned integer; any nonzero value is true.
func (d *Decoder) Bool(key string) (bool, error) {
	v, err := d.uintPair("Bool", key)
	return v != 0, err
}

// simpleValue reads a simple value. Floats and the break byte are not
// simple values.
func (d *Decoder) simpleValue(op, key string) (uint8, error) {
	b, err := d.expect(op, key, majorSimple, "simple value")
	if err != nil {
		return 0, err
	}
	ai := getAddInfo(b)
	switch {
	case ai < addInfoUint8:
		d.off++
		return ai, nil
	case ai == addInfoUint8:
		if d.off+2 > d.end {
			return 0, d.fail(&Error{Code: CodeMalformedInput, Op: op, Key: key, Detail: "truncated simple value"})
		}
		v := d.data[d.off+1]
		if v < 32 {
			return 0, d.fail(&Error{Code: CodeMalformedInput, Op: op, Key: key,
				Detail: fmt.Sprintf("simple value %d in two-byte form", v)})
		}
		d.off += 2
		return v, nil
	}
	return 0, d.fail(&Error{Code: CodeUnexpectedWireType, Op: op, Key: key,
		Detail: "expected simple value, found " + describe(b)})
}

// Simple reads a key and a simple value.
func (d *Decoder) Simple(key string) (uint8, error) {
	if _, err := d.key("Simple", key); err != nil {
		return 0, err
	}
	return d.simpleValue("Simple", key)
}

func (d *Decoder) float32Value(op, key string) (float32, error) {
	b, err := d.peek(op, key)
	if err != nil {
		return 0, err
	}
	if b != headFloat32 {
		return 0, d.fail(&Error{Code: CodeUnexpectedWireType, Op: op, Key: key,
			Detail: "expected float32, found " + describe(b)})
	}
	var v float32
	err = d.next(op, key, &v)
	return v, err
}

func (d *Decoder) float64Value(op, key string) (float64, error) {
	b, err := d.peek(op, key)
	if err != nil {
		return 0, err
	}
	if b != headFloat64 {
		return 0, d.fail(&Error{Code: CodeUnexpectedWireType, Op: op, Key: key,
			Detail: "expected float64, found " + describe(b)})
	}
	var v float64
	err = d.next(op, key, &v)
	return v, err
}

// Float32 reads a key and a single precision float.
func (d *Decoder) Float32(key string) (float32, error) {
	if _, err := d.key("Float32", key); err != nil {
		return 0, err
	}
	return d.float32Value("Float32", key)
}

// Float64 reads a key and a double precision float.
func (d *Decoder) Float64(key string) (float64, error) {
	if _, err := d.key("Float64", key); err != nil {
		return 0, err
	}
	return d.float64Value("Float64", key)
}

// charge takes n bytes from the allocation budget.
func (d *Decoder) charge(op, key string, n int) error {
	if d.cfg.allocLimit > 0 && d.allocated+n > d.cfg.allocLimit {
		return d.fail(&Error{Code: CodeAllocationFailure, Op: op, Key: key,
			Detail: fmt.Sprintf("%d bytes requested, %d of %d left", n, d.cfg.allocLimit-d.allocated, d.cfg.allocLimit)})
	}
	d.allocated += n
	return nil
}

// stringHead checks the next item is a string of the given major type and
// charges its definite length plus extra to the budget.
func (d *Decoder) stringHead(op, key string, major byte, want string, extra int) (head, error) {
	if _, err := d.expect(op, key, major, want); err != nil {
		return head{}, err
	}
	h, err := readHead(d.data[d.off:d.end])
	if err != nil {
		return head{}, d.fail(&Error{Code: CodeMalformedInput, Op: op, Key: key, Err: err})
	}
	if !h.indefinite && h.arg > 0 {
		if h.arg > uint64(d.end-d.off) {
			return head{}, d.fail(&Error{Code: CodeMalformedInput, Op: op, Key: key,
				Detail: fmt.Sprintf("length %d exceeds input", h.arg)})
		}
		if err := d.charge(op, key, int(h.arg)+extra); err != nil {
			return head{}, err
		}
	}
	return h, nil
}

func (d *Decoder) textValue(op, key string) (string, error) {
	h, err := d.stringHead(op, key, majorText, "text string", 1)
	if err != nil {
		return "", err
	}
	var s string
	if err := d.next(op, key, &s); err != nil {
		return "", err
	}
	if h.indefinite && len(s) > 0 {
		if err := d.charge(op, key, len(s)+1); err != nil {
			return "", err
		}
	}
	return s, nil
}

func (d *Decoder) bytesValue(op, key string) ([]byte, error) {
	h, err := d.stringHead(op, key, majorBytes, "byte string", 0)
	if err != nil {
		return nil, err
	}
	var b []byte
	if err := d.next(op, key, &b); err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	if h.indefinite {
		if err := d.charge(op, key, len(b)); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Text reads a key and a text string. An empty string is returned without
// allocating.
func (d *Decoder) Text(key string) (string, error) {
	if _, err := d.key("Text", key); err != nil {
		return "", err
	}
	return d.textValue("Text", key)
}

// Bytes reads a key and a byte string. An empty byte string decodes to nil.
func (d *Decoder) Bytes(key string) ([]byte, error) {
	if _, err := d.key("Bytes", key); err != nil {
		return nil, err
	}
	return d.bytesValue("Bytes", key)
}

// ArrayHead reads a key and the head of a definite-length array and returns
// its element count. The elements are read with the Next methods.
func (d *Decoder) ArrayHead(key string) (int, error) {
	if _, err := d.key("ArrayHead", key); err != nil {
		return 0, err
	}
	return d.arrayHead("ArrayHead", key)
}

// ArrayValue reads the head of a definite-length array whose key was
// consumed with Key.
func (d *Decoder) ArrayValue(key string) (int, error) { return d.arrayHead("ArrayValue", key) }

func (d *Decoder) arrayHead(op, key string) (int, error) {
	if _, err := d.expect(op, key, majorArray, "array"); err != nil {
		return 0, err
	}
	h, err := readHead(d.data[d.off:d.end])
	if err != nil {
		return 0, d.fail(&Error{Code: CodeMalformedInput, Op: op, Key: key, Err: err})
	}
	if h.indefinite {
		return 0, d.fail(&Error{Code: CodeMalformedInput, Op: op, Key: key, Detail: "indefinite-length array"})
	}
	if h.arg > uint64(d.end-d.off) {
		return 0, d.fail(&Error{Code: CodeMalformedInput, Op: op, Key: key,
			Detail: fmt.Sprintf("array length %d exceeds input", h.arg)})
	}
	d.off += h.size
	return int(h.arg), nil
}

// Value reads the value of a pair whose key was consumed with Key into f.
// A checked field that does not fit returns OutOfRange with the value
// consumed.
func (d *Decoder) Value(f Field) error { return d.readValue("Value", f) }

// NextFloat64 reads one double precision array element.
func (d *Decoder) NextFloat64() (float64, error) { return d.float64Value("NextFloat64", "") }

// NextFloat32 reads one single precision array element.
func (d *Decoder) NextFloat32() (float32, error) { return d.float32Value("NextFloat32", "") }

// NextUint64 reads one unsigned integer array element.
func (d *Decoder) NextUint64() (uint64, error) { return d.uintValue("NextUint64", "") }

// SkipElements advances past n array elements.
func (d *Decoder) SkipElements(n int) error {
	for i := 0; i < n; i++ {
		if err := d.skip("SkipElements", ""); err != nil {
			return err
		}
	}
	return nil
}

// Charge takes n bytes from the allocation budget on behalf of a
// hand-written decoder that allocates its own destination.
func (d *Decoder) Charge(key string, n int) error { return d.charge("Charge", key, n) }
