package log

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Event files are CBOR sequences: one integer-keyed map per event, no
// framing. Timestamps are RFC 3339 text so nanoseconds survive.
var (
	eventEncMode cbor.EncMode
	eventDecMode cbor.DecMode
)

func init() {
	encOpts := cbor.CoreDetEncOptions()
	encOpts.Time = cbor.TimeRFC3339Nano
	encOpts.NilContainers = cbor.NilContainerAsNull

	var err error
	eventEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create event CBOR encoder mode: %v", err))
	}

	// Unknown keys are ignored so older readers accept newer logs.
	decOpts := cbor.DecOptions{
		DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		IndefLength:     cbor.IndefLengthForbidden,
		MaxNestedLevels: 4,
	}
	eventDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create event CBOR decoder mode: %v", err))
	}
}

// checkEvent rejects events whose operation or category this version does
// not know.
func checkEvent(e Event) error {
	if e.Operation > OperationDecode {
		return fmt.Errorf("event has unknown operation %d", e.Operation)
	}
	if e.Category > CategoryError {
		return fmt.Errorf("event has unknown category %d", e.Category)
	}
	return nil
}

// EncodeEvent returns the CBOR encoding of one event.
func EncodeEvent(event Event) ([]byte, error) {
	return eventEncMode.Marshal(event)
}

// DecodeEvent decodes exactly one event from data.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDecMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	if err := checkEvent(event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// EventEncoder appends events to a stream.
type EventEncoder struct {
	enc *cbor.Encoder
}

// NewEncoder returns an EventEncoder writing to w.
func NewEncoder(w io.Writer) *EventEncoder {
	return &EventEncoder{enc: eventEncMode.NewEncoder(w)}
}

// Encode writes one event.
func (e *EventEncoder) Encode(event Event) error {
	return e.enc.Encode(event)
}

// EventDecoder reads events from a stream.
type EventDecoder struct {
	dec *cbor.Decoder
	n   int
}

// NewDecoder returns an EventDecoder reading from r.
func NewDecoder(r io.Reader) *EventDecoder {
	return &EventDecoder{dec: eventDecMode.NewDecoder(r)}
}

// Decode reads the next event into event. It returns io.EOF at a clean end
// of stream.
func (d *EventDecoder) Decode(event *Event) error {
	var e Event
	if err := d.dec.Decode(&e); err != nil {
		if err == io.EOF {
			return err
		}
		return fmt.Errorf("event %d: %w", d.n+1, err)
	}
	d.n++
	if err := checkEvent(e); err != nil {
		return fmt.Errorf("event %d: %w", d.n, err)
	}
	*event = e
	return nil
}
