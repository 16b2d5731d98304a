// Package messages defines the Bristlemouth sensor and service messages.
//
// Every message is a struct whose Table method binds its wire keys to its
// fields. Encode, Decode and DecodeLenient run those tables through
// pkg/wire; a few messages with arrays or derived lengths add their own
// steps on top.
//
// Decode is strict: the map must declare exactly the message's pair count
// and carry its keys in order. DecodeLenient accepts any order, skips
// unknown keys and reports them afterwards as an UnrecognizedKey error.
package messages
