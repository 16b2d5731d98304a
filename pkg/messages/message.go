package messages

import (
	"errors"
	"fmt"

	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// Message is a wire message.
type Message interface {
	// Name is the registry name, also used to label codec events.
	Name() string

	// Table binds the message's keys to its fields, in wire order.
	Table() wire.Table
}

// writer is implemented by messages whose encoding is more than their table.
type writer interface {
	pairs() int
	writeFields(e *wire.Encoder) error
}

// reader is implemented by messages whose decoding is more than their table.
type reader interface {
	pairs() int
	readFields(d *wire.Decoder, lenient bool) error
}

// checker is implemented by messages with cross-field constraints that are
// verified after a successful decode.
type checker interface {
	check() error
}

func withSchema(m Message, opts []wire.Option) []wire.Option {
	out := make([]wire.Option, 0, len(opts)+1)
	out = append(out, wire.WithSchema(m.Name()))
	return append(out, opts...)
}

func wrap(op string, m Message, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", op, m.Name(), err)
}

// Encode writes m into buf and returns the encoded size.
//
// If buf is too small the error is BufferTooSmall and wire.ExtraBytesNeeded
// reports how many more bytes are needed.
func Encode(buf []byte, m Message, opts ...wire.Option) (int, error) {
	opts = withSchema(m, opts)
	w, ok := m.(writer)
	if !ok {
		n, err := wire.Encode(buf, m.Table(), opts...)
		return n, wrap("encode", m, err)
	}

	e, err := wire.NewEncoder(buf, w.pairs(), opts...)
	if !wire.IsAcceptable(err) {
		return 0, wrap("encode", m, err)
	}
	if err := w.writeFields(e); !wire.IsAcceptable(err) {
		return 0, wrap("encode", m, err)
	}
	n, err := e.Finish()
	return n, wrap("encode", m, err)
}

// Size returns the encoded size of m.
func Size(m Message) (int, error) {
	_, err := Encode(nil, m)
	if err == nil {
		return 0, nil
	}
	if wire.CodeOf(err) != wire.CodeBufferTooSmall {
		return 0, err
	}
	return wire.ExtraBytesNeeded(err), nil
}

// Marshal encodes m into a buffer of exactly the right size.
func Marshal(m Message, opts ...wire.Option) ([]byte, error) {
	n, err := Size(m)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	n, err = Encode(buf, m, opts...)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// Decode reads data into m. The map must hold exactly m's keys in order and
// nothing may follow it.
func Decode(data []byte, m Message, opts ...wire.Option) error {
	return decode(data, m, false, opts)
}

// DecodeLenient reads data into m, accepting keys in any order and skipping
// unknown ones. Fields missing from data keep their value. Skipped keys are
// reported after decoding as an UnrecognizedKey error listing them.
func DecodeLenient(data []byte, m Message, opts ...wire.Option) error {
	return decode(data, m, true, opts)
}

func decode(data []byte, m Message, lenient bool, opts []wire.Option) error {
	opts = withSchema(m, opts)

	var err error
	if r, ok := m.(reader); ok {
		err = decodeWith(data, r, lenient, opts)
	} else {
		t := m.Table()
		t.StrictOrder = !lenient
		err = wire.Decode(data, t, opts...)
	}
	if err != nil && !isAggregate(err) {
		return wrap("decode", m, err)
	}

	if c, ok := m.(checker); ok {
		if cerr := c.check(); cerr != nil {
			return wrap("decode", m, cerr)
		}
	}
	return wrap("decode", m, err)
}

func decodeWith(data []byte, r reader, lenient bool, opts []wire.Option) error {
	expected := r.pairs()
	if lenient {
		expected = wire.AnyCount
	}
	d, err := wire.Enter(data, expected, opts...)
	if err != nil {
		return err
	}
	err = r.readFields(d, lenient)
	if err != nil && !isAggregate(err) {
		return err
	}
	if lerr := d.Leave(); lerr != nil {
		return lerr
	}
	return err
}

// isAggregate reports whether err only lists skipped or out-of-range keys
// of an otherwise complete decode.
func isAggregate(err error) bool {
	var e *wire.Error
	if !errors.As(err, &e) || len(e.Keys) == 0 {
		return false
	}
	return e.Code == wire.CodeUnrecognizedKey || e.Code == wire.CodeOutOfRange
}
