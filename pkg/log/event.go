package log

import "time"

// Event represents one diagnostic event emitted by the codec.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID groups events from one tool run or device session (UUID).
	SessionID string `cbor:"2,keyasint,omitempty"`

	// Operation is the codec direction that produced the event.
	Operation Operation `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Schema is the message name, if the caller labelled the call.
	Schema string `cbor:"5,keyasint,omitempty"`

	// Key is the field key involved, if any.
	Key string `cbor:"6,keyasint,omitempty"`

	// Size is the encoded message size in bytes.
	Size int `cbor:"7,keyasint,omitempty"`

	// ExtraBytes is how many bytes an overflowing encode still needed.
	ExtraBytes int `cbor:"8,keyasint,omitempty"`

	// Error is set for CategoryError events.
	Error *ErrorEventData `cbor:"9,keyasint,omitempty"`
}

// Operation indicates whether the event came from encoding or decoding.
type Operation uint8

const (
	// OperationEncode is a struct to CBOR transform.
	OperationEncode Operation = 0
	// OperationDecode is a CBOR to struct transform.
	OperationDecode Operation = 1
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OperationEncode:
		return "ENCODE"
	case OperationDecode:
		return "DECODE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a completed encode or decode.
	CategoryMessage Category = 0
	// CategoryOverflow indicates an encode into a buffer that was too small.
	CategoryOverflow Category = 1
	// CategoryUnknownKey indicates a key the decoding table did not recognize.
	CategoryUnknownKey Category = 2
	// CategoryError indicates a fatal error.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryOverflow:
		return "OVERFLOW"
	case CategoryUnknownKey:
		return "UNKNOWN_KEY"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category for a name as printed by String.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryMessage; c <= CategoryError; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// ParseOperation returns the operation for a name as printed by String.
func ParseOperation(s string) (Operation, bool) {
	switch s {
	case "ENCODE":
		return OperationEncode, true
	case "DECODE":
		return OperationDecode, true
	}
	return 0, false
}

// ErrorEventData captures a codec error.
type ErrorEventData struct {
	// Kind is the error kind name (e.g. MALFORMED_INPUT).
	Kind string `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
