package schema

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// Fingerprint identifies the wire shape of a schema: its name, whether it
// carries the sensor header, and its keys with their types in order. Two
// schemas with the same fingerprint produce the same bytes for the same
// values.
type Fingerprint [32]byte

// String returns the fingerprint in hex.
func (f Fingerprint) String() string { return hex.EncodeToString(f[:]) }

// Short returns the first 8 bytes in hex.
func (f Fingerprint) Short() string { return hex.EncodeToString(f[:8]) }

// fingerprintKey is the BLAKE3 key for schema fingerprints: the domain name
// in ASCII, zero-padded to 32 bytes.
var fingerprintKey = [32]byte{
	'b', 'm', '-', 'm', 'e', 's', 's', 'a', 'g', 'e', 's', '.',
	's', 'c', 'h', 'e', 'm', 'a', '.', 'v', '1',
}

var fingerprintMode cbor.EncMode

func init() {
	var err error
	fingerprintMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("schema: fingerprint encoding mode: " + err.Error())
	}
}

type shape struct {
	_      struct{} `cbor:",toarray"`
	Name   string
	Header bool
	Fields [][2]string
}

func fingerprint(s *Schema) Fingerprint {
	sh := shape{Name: s.def.Name, Header: s.def.Header, Fields: make([][2]string, len(s.types))}
	for i, t := range s.types {
		sh.Fields[i] = [2]string{s.def.Fields[i].Key, t.String()}
	}
	data, err := fingerprintMode.Marshal(sh)
	if err != nil {
		panic("schema: encoding fingerprint input: " + err.Error())
	}

	h, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		panic("schema: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = h.Write(data)

	var out Fingerprint
	copy(out[:], h.Sum(nil))
	return out
}
