// Package schema compiles message definitions written in YAML into records
// that encode and decode with the same rules as the built-in messages.
//
// A definition file holds one or more YAML documents:
//
//	name: ThermistorReading
//	version: 1
//	header: true
//	strict: true
//	fields:
//	  - key: temperature_deg_c
//	    type: float64
//	  - key: thermistor_id
//	    type: uint16
//	    checked: true
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bristlemouth/bm-messages-go/pkg/messages"
	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// Definition is the YAML form of a message schema.
type Definition struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Version     uint32     `yaml:"version,omitempty"`
	Header      bool       `yaml:"header,omitempty"`
	Strict      bool       `yaml:"strict,omitempty"`
	Fields      []FieldDef `yaml:"fields"`
}

// FieldDef is one field of a Definition. Type is a wire type name such as
// "uint32" or "float64".
type FieldDef struct {
	Key     string `yaml:"key"`
	Type    string `yaml:"type"`
	Checked bool   `yaml:"checked,omitempty"`
}

// ErrInvalid is wrapped by every definition error.
var ErrInvalid = errors.New("invalid schema")

// Schema is a compiled Definition.
type Schema struct {
	def         Definition
	types       []wire.Type
	fingerprint Fingerprint
}

// Compile checks def and returns its schema.
func Compile(def Definition) (*Schema, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalid)
	}
	if len(def.Fields) == 0 && !def.Header {
		return nil, fmt.Errorf("%w: %s has no fields", ErrInvalid, def.Name)
	}

	s := &Schema{def: def, types: make([]wire.Type, len(def.Fields))}
	for i, f := range def.Fields {
		t, ok := wire.ParseType(f.Type)
		if !ok {
			return nil, fmt.Errorf("%w: %s field %d (%s): unknown type %q", ErrInvalid, def.Name, i, f.Key, f.Type)
		}
		if f.Checked && !t.IsUnsigned() {
			return nil, fmt.Errorf("%w: %s field %s: only unsigned fields can be checked", ErrInvalid, def.Name, f.Key)
		}
		s.types[i] = t
	}

	// Keys are checked on a bound table so the rules match the codec's.
	if err := s.New().Table().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, def.Name, err)
	}
	s.fingerprint = fingerprint(s)
	return s, nil
}

// Parse reads every definition document from r and compiles it.
func Parse(r io.Reader) ([]*Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var out []*Schema
	seen := make(map[string]bool)
	for {
		var def Definition
		err := dec.Decode(&def)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		s, err := Compile(def)
		if err != nil {
			return nil, err
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("%w: %s defined twice", ErrInvalid, def.Name)
		}
		seen[def.Name] = true
		out = append(out, s)
	}
	return out, nil
}

// ParseBytes is Parse over an in-memory file.
func ParseBytes(data []byte) ([]*Schema, error) {
	return Parse(bytes.NewReader(data))
}

// LoadFile parses the definitions in the named file.
func LoadFile(path string) ([]*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	schemas, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return schemas, nil
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.def.Name }

// Definition returns the definition s was compiled from.
func (s *Schema) Definition() Definition { return s.def }

// Fingerprint returns the schema's wire-shape fingerprint.
func (s *Schema) Fingerprint() Fingerprint { return s.fingerprint }

// Keys returns the wire keys in order, header keys first.
func (s *Schema) Keys() []string {
	t := s.New().Table()
	keys := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		keys[i] = f.Key
	}
	return keys
}

// version is the header version a new record starts with.
func (s *Schema) version() uint32 {
	if s.def.Version != 0 {
		return s.def.Version
	}
	return messages.Version
}
