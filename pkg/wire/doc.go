// Package wire implements the table-driven CBOR codec for Bristlemouth
// sensor messages.
//
// Every message is a single definite-length CBOR map (RFC 8949) whose keys
// are text strings and whose values are unsigned integers, single or double
// precision floats, text strings or byte strings. The map carries no schema
// tag: the message type is known from context.
//
// # Tables
//
// A message is described by a Table of Fields. Each Field binds a key to a
// typed location in the message struct:
//
//	t := wire.Table{Fields: []wire.Field{
//	    wire.Uint32("version", &m.Version),
//	    wire.Float64("temperature_deg_c", &m.TemperatureDegC),
//	}}
//	n, err := wire.Encode(buf, t)
//	err = wire.Decode(buf[:n], t)
//
// Encoding walks the table in order. Decoding is tolerant by default: the
// input drives the loop, unknown keys are skipped and reported at the end as
// an UnrecognizedKey error, and absent keys leave their destination alone.
// A table with StrictOrder set requires the declared pair count and the key
// order to match the table exactly.
//
// # Hand-written messages
//
// Messages with arrays or conditional fields use the Encoder and Decoder
// directly: NewEncoder, the Put* methods and Finish on the encode side, Enter,
// the typed reads and Leave on the decode side. Typed reads check the key's
// wire type but not its name.
//
// # Errors
//
// Errors are *Error values with a Code. BufferTooSmall is the only
// acceptable code: the encoder keeps counting after the buffer fills, and
// the error reports how many more bytes a retry needs. Every other code is
// fatal. Use Classify or IsAcceptable to tell them apart.
//
// # Diagnostics
//
// The codec has no global logger. Pass WithLogger to receive log.Events for
// completed messages, overflows, unknown keys and fatal errors.
package wire
