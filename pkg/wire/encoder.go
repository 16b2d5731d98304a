package wire

import (
	"fmt"

	"github.com/bristlemouth/bm-messages-go/pkg/log"
)

// Encoder writes one message map into a fixed-size buffer.
//
// The encoder never grows the buffer. When a write does not fit, nothing of
// it is written, the encoder switches to counting only, and every later call
// returns a BufferTooSmall error. Finish then reports how many more bytes a
// retry needs. A fatal error is sticky: later calls return it without
// writing.
type Encoder struct {
	out      []byte
	total    int
	overflow bool
	fatal    error

	declared int
	pairs    int
	elems    int // array elements still owed by the last PutArrayHead

	cfg config
}

// NewEncoder starts a map of fieldCount pairs in buf. The capacity is
// len(buf).
//
// If even the map head does not fit, NewEncoder returns the encoder together
// with a BufferTooSmall error; the caller may keep writing to learn the full
// size.
func NewEncoder(buf []byte, fieldCount int, opts ...Option) (*Encoder, error) {
	e := &Encoder{
		out:      buf[:0:len(buf)],
		declared: fieldCount,
		cfg:      newConfig(opts),
	}
	if fieldCount < 0 {
		return nil, e.fail(&Error{Code: CodeImproperValue, Op: "NewEncoder",
			Detail: fmt.Sprintf("negative field count %d", fieldCount)})
	}
	var scratch [9]byte
	e.write(appendHead(scratch[:0], majorMap, uint64(fieldCount)))
	if e.overflow {
		return e, e.tooSmall("NewEncoder", "")
	}
	return e, nil
}

func (e *Encoder) write(p []byte) {
	e.total += len(p)
	if e.overflow {
		return
	}
	if len(e.out)+len(p) > cap(e.out) {
		e.overflow = true
		return
	}
	e.out = append(e.out, p...)
}

func (e *Encoder) tooSmall(op, key string) error {
	return &Error{Code: CodeBufferTooSmall, Op: op, Key: key, Needed: e.ExtraBytesNeeded()}
}

func (e *Encoder) fail(err *Error) error {
	e.fatal = err
	e.cfg.emitError(log.OperationEncode, err)
	return err
}

// result reports the accumulated state after a write.
func (e *Encoder) result(op, key string) error {
	if e.overflow {
		return e.tooSmall(op, key)
	}
	return nil
}

// putItem writes v as one CBOR item.
func (e *Encoder) putItem(op, key string, v any) error {
	b, err := encMode.Marshal(v)
	if err != nil {
		return e.fail(&Error{Code: CodeImproperValue, Op: op, Key: key, Err: err})
	}
	e.write(b)
	return nil
}

// put writes one key/value pair.
func (e *Encoder) put(op, key string, v any) error {
	if e.fatal != nil {
		return e.fatal
	}
	if e.elems > 0 {
		return e.fail(&Error{Code: CodeFieldCountMismatch, Op: op, Key: key,
			Detail: fmt.Sprintf("%d array elements still owed", e.elems)})
	}
	if err := e.putItem(op, key, key); err != nil {
		return err
	}
	if err := e.putItem(op, key, v); err != nil {
		return err
	}
	e.pairs++
	return e.result(op, key)
}

// putRaw writes one key/value pair whose value is already encoded.
func (e *Encoder) putRaw(op, key string, raw []byte) error {
	if e.fatal != nil {
		return e.fatal
	}
	if e.elems > 0 {
		return e.fail(&Error{Code: CodeFieldCountMismatch, Op: op, Key: key,
			Detail: fmt.Sprintf("%d array elements still owed", e.elems)})
	}
	if err := e.putItem(op, key, key); err != nil {
		return err
	}
	e.write(raw)
	e.pairs++
	return e.result(op, key)
}

// PutUint8 writes key and v as an unsigned integer.
func (e *Encoder) PutUint8(key string, v uint8) error { return e.put("PutUint8", key, uint64(v)) }

// PutUint16 writes key and v as an unsigned integer.
func (e *Encoder) PutUint16(key string, v uint16) error { return e.put("PutUint16", key, uint64(v)) }

// PutUint32 writes key and v as an unsigned integer.
func (e *Encoder) PutUint32(key string, v uint32) error { return e.put("PutUint32", key, uint64(v)) }

// PutUint64 writes key and v as an unsigned integer.
func (e *Encoder) PutUint64(key string, v uint64) error { return e.put("PutUint64", key, v) }

// PutBool writes key and v as the unsigned integer 0 or 1.
func (e *Encoder) PutBool(key string, v bool) error {
	var u uint64
	if v {
		u = 1
	}
	return e.put("PutBool", key, u)
}

// PutSimple writes key and v as a CBOR simple value. Values 24 through 31
// fail with ImproperValue.
func (e *Encoder) PutSimple(key string, v uint8) error {
	const op = "PutSimple"
	if e.fatal != nil {
		return e.fatal
	}
	if reservedSimple(uint64(v)) {
		return e.fail(&Error{Code: CodeImproperValue, Op: op, Key: key,
			Detail: fmt.Sprintf("%d has no simple value encoding", v)})
	}
	var scratch [2]byte
	return e.putRaw(op, key, appendSimple(scratch[:0], v))
}

// PutFloat32 writes key and v as a single precision float.
func (e *Encoder) PutFloat32(key string, v float32) error { return e.put("PutFloat32", key, v) }

// PutFloat64 writes key and v as a double precision float.
func (e *Encoder) PutFloat64(key string, v float64) error { return e.put("PutFloat64", key, v) }

// PutText writes key and v as a text string.
func (e *Encoder) PutText(key, v string) error { return e.put("PutText", key, v) }

// PutBytes writes key and v as a byte string. A nil slice is an empty
// byte string.
func (e *Encoder) PutBytes(key string, v []byte) error { return e.put("PutBytes", key, v) }

// PutArrayHead writes key and the head of an array of n elements. The
// elements follow through the Append methods.
func (e *Encoder) PutArrayHead(key string, n int) error {
	const op = "PutArrayHead"
	if e.fatal != nil {
		return e.fatal
	}
	if n < 0 {
		return e.fail(&Error{Code: CodeImproperValue, Op: op, Key: key,
			Detail: fmt.Sprintf("negative array length %d", n)})
	}
	if err := e.putItem(op, key, key); err != nil {
		return err
	}
	var scratch [9]byte
	e.write(appendHead(scratch[:0], majorArray, uint64(n)))
	e.pairs++
	e.elems = n
	return e.result(op, key)
}

// AppendFloat64 writes one double precision array element.
func (e *Encoder) AppendFloat64(v float64) error { return e.appendElem("AppendFloat64", v) }

// AppendFloat32 writes one single precision array element.
func (e *Encoder) AppendFloat32(v float32) error { return e.appendElem("AppendFloat32", v) }

// AppendUint64 writes one unsigned integer array element.
func (e *Encoder) AppendUint64(v uint64) error { return e.appendElem("AppendUint64", v) }

func (e *Encoder) appendElem(op string, v any) error {
	if e.fatal != nil {
		return e.fatal
	}
	if e.elems == 0 {
		return e.fail(&Error{Code: CodeFieldCountMismatch, Op: op, Detail: "no array elements owed"})
	}
	if err := e.putItem(op, "", v); err != nil {
		return err
	}
	e.elems--
	return e.result(op, "")
}

// PutField writes f using the rule for its type.
func (e *Encoder) PutField(f Field) error {
	if !f.bound() {
		if e.fatal != nil {
			return e.fatal
		}
		return e.fail(&Error{Code: CodeUnsupportedFieldType, Op: "PutField", Key: f.Key,
			Detail: fmt.Sprintf("type %s", f.Type)})
	}
	switch f.Type {
	case TypeUint8, TypeUint16, TypeUint32, TypeUint64:
		return e.put("PutField", f.Key, f.u.load())
	case TypeSimple:
		return e.PutSimple(f.Key, uint8(f.u.load()))
	case TypeBool:
		return e.PutBool(f.Key, *f.bl)
	case TypeFloat32:
		return e.PutFloat32(f.Key, *f.f32)
	case TypeFloat64:
		return e.PutFloat64(f.Key, *f.f64)
	case TypeString:
		return e.PutText(f.Key, *f.s)
	default:
		return e.PutBytes(f.Key, *f.b)
	}
}

// Finish closes the map and returns the number of bytes written.
//
// It fails with FieldCountMismatch if the pairs written differ from the
// declared count, and with BufferTooSmall (Needed set) if the buffer
// overflowed. On any error the returned size is 0.
func (e *Encoder) Finish() (int, error) {
	const op = "Finish"
	if e.fatal != nil {
		return 0, e.fatal
	}
	if e.elems != 0 {
		return 0, e.fail(&Error{Code: CodeFieldCountMismatch, Op: op,
			Detail: fmt.Sprintf("%d array elements still owed", e.elems)})
	}
	if e.pairs != e.declared {
		return 0, e.fail(&Error{Code: CodeFieldCountMismatch, Op: op,
			Detail: fmt.Sprintf("declared %d pairs, wrote %d", e.declared, e.pairs)})
	}
	if e.overflow {
		e.cfg.emit(log.Event{
			Operation:  log.OperationEncode,
			Category:   log.CategoryOverflow,
			Size:       e.total,
			ExtraBytes: e.ExtraBytesNeeded(),
		})
		return 0, e.tooSmall(op, "")
	}
	e.cfg.emit(log.Event{Operation: log.OperationEncode, Category: log.CategoryMessage, Size: len(e.out)})
	return len(e.out), nil
}

// ExtraBytesNeeded returns how many bytes beyond the buffer's capacity the
// message needs so far. It is 0 while everything fits.
func (e *Encoder) ExtraBytesNeeded() int {
	if !e.overflow {
		return 0
	}
	return e.total - cap(e.out)
}

// Size returns the full encoded size of what has been written so far,
// whether or not it fit.
func (e *Encoder) Size() int { return e.total }

// Bytes returns the bytes written. After an overflow it holds only the
// writes that fit and is not a valid message.
func (e *Encoder) Bytes() []byte { return e.out }

// Err returns the sticky fatal error, if any.
func (e *Encoder) Err() error { return e.fatal }
