// Package inspect renders encoded messages for people: it identifies and
// decodes raw buffers, formats fields with units, and dumps hex and CBOR
// diagnostic notation.
//
// Fields are addressed by path expressions such as
// "SoftData/temperature_deg_c".
package inspect

import (
	"errors"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath      = errors.New("empty path")
	ErrInvalidPath    = errors.New("invalid path format")
	ErrUnknownMessage = errors.New("unknown message")
	ErrUnknownKey     = errors.New("unknown key")
)

// Path addresses a message or one of its fields.
// Format: message[/key]
type Path struct {
	// Message is the registered message name.
	Message string

	// Key is the wire key, empty for the whole message.
	Key string

	// Raw stores the original input string.
	Raw string
}

// IsPartial reports whether the path names a message without a key.
func (p *Path) IsPartial() bool { return p.Key == "" }

// String returns the canonical form of the path.
func (p *Path) String() string {
	if p.Key == "" {
		return p.Message
	}
	return p.Message + "/" + p.Key
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "message" - the whole message
//   - "message/key" - one field
//
// A "." separator is accepted in place of "/". Names are resolved
// case-insensitively against the message registry.
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	sep := "/"
	if !strings.Contains(input, "/") && strings.Contains(input, ".") {
		sep = "."
	}
	parts := strings.Split(input, sep)
	if len(parts) > 2 {
		return nil, ErrInvalidPath
	}
	for _, part := range parts {
		if part == "" {
			return nil, ErrInvalidPath
		}
	}

	p := &Path{Raw: input}
	name, ok := ResolveMessageName(parts[0])
	if !ok {
		return nil, ErrUnknownMessage
	}
	p.Message = name

	if len(parts) == 2 {
		key, ok := ResolveKeyName(name, parts[1])
		if !ok {
			return nil, ErrUnknownKey
		}
		p.Key = key
	}
	return p, nil
}
