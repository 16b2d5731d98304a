package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bristlemouth/bm-messages-go/pkg/messages"
	"github.com/bristlemouth/bm-messages-go/pkg/schema"
	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

type fileData struct {
	Package  string
	Source   string
	Messages []messageData
}

type messageData struct {
	Name        string
	Type        string
	Description string
	Version     uint32
	Header      bool
	Strict      bool
	Fingerprint string
	Fields      []fieldData
}

type fieldData struct {
	Key     string
	GoName  string
	GoType  string
	Ctor    string
	Checked bool
}

// goTypes maps each wire type to its Go type and Field constructor.
var goTypes = map[wire.Type][2]string{
	wire.TypeUint8:   {"uint8", "wire.Uint8"},
	wire.TypeUint16:  {"uint16", "wire.Uint16"},
	wire.TypeUint32:  {"uint32", "wire.Uint32"},
	wire.TypeUint64:  {"uint64", "wire.Uint64"},
	wire.TypeBool:    {"bool", "wire.Bool"},
	wire.TypeSimple:  {"uint8", "wire.Simple"},
	wire.TypeFloat32: {"float32", "wire.Float32"},
	wire.TypeFloat64: {"float64", "wire.Float64"},
	wire.TypeString:  {"string", "wire.String"},
	wire.TypeBytes:   {"[]byte", "wire.Bytes"},
}

// reserved are the identifiers a generated message already uses.
var reserved = map[string]bool{"Header": true, "Name": true, "Table": true}

var initialisms = map[string]string{
	"api":  "API",
	"cpu":  "CPU",
	"crc":  "CRC",
	"id":   "ID",
	"psu":  "PSU",
	"rbr":  "RBR",
	"url":  "URL",
	"utc":  "UTC",
	"uuid": "UUID",
}

// goName converts a wire key or message name to an exported Go identifier:
// "thermistor_id" becomes "ThermistorID", "reading_time_utc_ms" becomes
// "ReadingTimeUTCMs".
func goName(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, w := range words {
		if up, ok := initialisms[strings.ToLower(w)]; ok {
			b.WriteString(up)
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "X" + name
	}
	return name
}

// Generate returns Go source declaring one message type per schema.
func Generate(pkg, source string, schemas []*schema.Schema) (string, error) {
	data := fileData{Package: pkg, Source: source}
	types := make(map[string]string)
	for _, s := range schemas {
		m, err := messageFor(s)
		if err != nil {
			return "", err
		}
		if other, ok := types[m.Type]; ok {
			return "", fmt.Errorf("%s and %s both generate type %s", other, m.Name, m.Type)
		}
		types[m.Type] = m.Name
		data.Messages = append(data.Messages, m)
	}

	var b strings.Builder
	renderTemplate(&b, "file", data)
	return b.String(), nil
}

func messageFor(s *schema.Schema) (messageData, error) {
	def := s.Definition()
	m := messageData{
		Name:        def.Name,
		Type:        goName(def.Name),
		Description: def.Description,
		Version:     def.Version,
		Header:      def.Header,
		Strict:      def.Strict,
		Fingerprint: s.Fingerprint().String(),
	}
	if m.Version == 0 {
		m.Version = messages.Version
	}

	names := make(map[string]string)
	for _, f := range def.Fields {
		t, _ := wire.ParseType(f.Type)
		gt, ok := goTypes[t]
		if !ok {
			return m, fmt.Errorf("%s.%s: no Go type for %q", def.Name, f.Key, f.Type)
		}
		name := goName(f.Key)
		if reserved[name] {
			name += "Value"
		}
		if other, ok := names[name]; ok {
			return m, fmt.Errorf("%s: keys %s and %s both map to field %s", def.Name, other, f.Key, name)
		}
		names[name] = f.Key
		m.Fields = append(m.Fields, fieldData{
			Key:     f.Key,
			GoName:  name,
			GoType:  gt[0],
			Ctor:    gt[1],
			Checked: f.Checked,
		})
	}
	return m, nil
}
