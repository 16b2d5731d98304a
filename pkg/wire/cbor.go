package wire

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder mode for message items.
// Floats keep their declared width so single and double precision fields
// always take 5 and 9 bytes, NaN payloads included.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for message items.
var decMode cbor.DecMode

// diagMode renders CBOR in diagnostic notation with float width suffixes.
var diagMode cbor.DiagMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		ShortestFloat: cbor.ShortestFloatNone,
		NaNConvert:    cbor.NaNConvertNone,
		InfConvert:    cbor.InfConvertNone,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsEmpty,
		String:        cbor.StringToTextString,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	// Indefinite-length strings are accepted, as the device-side parser does.
	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
		UTF8:        cbor.UTF8RejectInvalid,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}

	diagOpts := cbor.DiagOptions{
		ByteStringEncoding:      cbor.ByteStringBase16Encoding,
		FloatPrecisionIndicator: true,
	}
	diagMode, err = diagOpts.DiagMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR diagnostic mode: %v", err))
	}
}

// Diagnose returns the diagnostic notation (RFC 8949 §8) of the first CBOR
// item in data and any bytes that follow it.
func Diagnose(data []byte) (string, []byte, error) {
	return diagMode.DiagnoseFirst(data)
}

// unmarshalFirst decodes the first item of data into v and returns the rest.
func unmarshalFirst(data []byte, v any) ([]byte, error) {
	return decMode.UnmarshalFirst(data, v)
}

// codeOf maps an fxamacker/cbor error to a codec Code. Truncation and
// syntax errors are malformed input.
func codeOf(err error) Code {
	var ute *cbor.UnmarshalTypeError
	var ede *cbor.ExtraneousDataError
	switch {
	case errors.As(err, &ute):
		return CodeUnexpectedWireType
	case errors.As(err, &ede):
		return CodeTrailingData
	default:
		return CodeMalformedInput
	}
}
