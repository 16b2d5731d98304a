package wire

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies the kind of codec failure.
type Code uint8

const (
	// CodeBufferTooSmall indicates the encode buffer filled up. It is the only
	// acceptable code: retry with the size reported in Error.Needed added.
	CodeBufferTooSmall Code = 1

	// CodeMalformedInput indicates the input is not well-formed CBOR.
	CodeMalformedInput Code = 2

	// CodeUnexpectedWireType indicates an item of the wrong CBOR type.
	CodeUnexpectedWireType Code = 3

	// CodeFieldCountMismatch indicates the declared and observed map sizes disagree.
	CodeFieldCountMismatch Code = 4

	// CodeUnrecognizedKey indicates keys no table entry matched.
	CodeUnrecognizedKey Code = 5

	// CodeTrailingData indicates bytes after the message map.
	CodeTrailingData Code = 6

	// CodeAllocationFailure indicates the decode allocation budget ran out or a
	// caller-sized destination was too small.
	CodeAllocationFailure Code = 7

	// CodeUnsupportedFieldType indicates a field without an encode/decode rule.
	CodeUnsupportedFieldType Code = 8

	// CodeOutOfRange indicates a checked field whose wire value does not fit
	// its destination.
	CodeOutOfRange Code = 9

	// CodeImproperValue indicates a message value that cannot be encoded.
	CodeImproperValue Code = 10
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeBufferTooSmall:
		return "BUFFER_TOO_SMALL"
	case CodeMalformedInput:
		return "MALFORMED_INPUT"
	case CodeUnexpectedWireType:
		return "UNEXPECTED_WIRE_TYPE"
	case CodeFieldCountMismatch:
		return "FIELD_COUNT_MISMATCH"
	case CodeUnrecognizedKey:
		return "UNRECOGNIZED_KEY"
	case CodeTrailingData:
		return "TRAILING_DATA"
	case CodeAllocationFailure:
		return "ALLOCATION_FAILURE"
	case CodeUnsupportedFieldType:
		return "UNSUPPORTED_FIELD_TYPE"
	case CodeOutOfRange:
		return "OUT_OF_RANGE"
	case CodeImproperValue:
		return "IMPROPER_VALUE"
	default:
		return "UNKNOWN"
	}
}

func (c Code) text() string {
	return strings.ReplaceAll(strings.ToLower(c.String()), "_", " ")
}

// Sentinel errors for errors.Is. They match any *Error with the same Code.
var (
	ErrBufferTooSmall       = &Error{Code: CodeBufferTooSmall}
	ErrMalformedInput       = &Error{Code: CodeMalformedInput}
	ErrUnexpectedWireType   = &Error{Code: CodeUnexpectedWireType}
	ErrFieldCountMismatch   = &Error{Code: CodeFieldCountMismatch}
	ErrUnrecognizedKey      = &Error{Code: CodeUnrecognizedKey}
	ErrTrailingData         = &Error{Code: CodeTrailingData}
	ErrAllocationFailure    = &Error{Code: CodeAllocationFailure}
	ErrUnsupportedFieldType = &Error{Code: CodeUnsupportedFieldType}
	ErrOutOfRange           = &Error{Code: CodeOutOfRange}
	ErrImproperValue        = &Error{Code: CodeImproperValue}
)

// Error is the error type returned by the codec.
type Error struct {
	Code Code

	// Op is the operation that failed (e.g. "Enter", "Float64", "Finish").
	Op string

	// Key is the field key involved, if known.
	Key string

	// Detail is a human-readable description.
	Detail string

	// Needed is the number of extra bytes a BufferTooSmall encode required.
	Needed int

	// Keys lists the offending keys of an aggregate UnrecognizedKey or
	// OutOfRange error.
	Keys []string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("wire: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		if e.Key != "" {
			fmt.Fprintf(&b, "(%s)", e.Key)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Code.text())
	if e.Code == CodeBufferTooSmall && e.Needed > 0 {
		fmt.Fprintf(&b, ": %d more bytes needed", e.Needed)
	}
	if len(e.Keys) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Keys, ", "))
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// IsFatal reports whether the error ends the operation. Only
// BufferTooSmall is not fatal.
func (e *Error) IsFatal() bool {
	return e.Code != CodeBufferTooSmall
}

// Class partitions operation outcomes.
type Class uint8

const (
	// ClassSuccess means the operation completed.
	ClassSuccess Class = 0
	// ClassAcceptable means the encode buffer was too small; retry bigger.
	ClassAcceptable Class = 1
	// ClassFatal means the input or schema is wrong; do not retry.
	ClassFatal Class = 2
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassSuccess:
		return "SUCCESS"
	case ClassAcceptable:
		return "ACCEPTABLE"
	case ClassFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Classify returns the class of err. Errors that are not *Error are fatal.
func Classify(err error) Class {
	if err == nil {
		return ClassSuccess
	}
	var e *Error
	if errors.As(err, &e) && !e.IsFatal() {
		return ClassAcceptable
	}
	return ClassFatal
}

// IsAcceptable reports whether err is nil or a BufferTooSmall error.
func IsAcceptable(err error) bool {
	return Classify(err) != ClassFatal
}

// CodeOf returns the Code carried by err, or 0 if err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// ExtraBytesNeeded returns the Needed count of a BufferTooSmall error, or 0.
func ExtraBytesNeeded(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Code == CodeBufferTooSmall {
		return e.Needed
	}
	return 0
}
