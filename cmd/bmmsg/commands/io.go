package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bristlemouth/bm-messages-go/pkg/inspect"
)

// ReadInput reads a message from path, or stdin for "-". With isHex the
// input is hex text.
func ReadInput(path string, isHex bool) ([]byte, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	if !isHex {
		return data, nil
	}
	b, err := inspect.ParseHex(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// ReadValues reads a YAML map of field values.
func ReadValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}

// ParseAssignment splits "key=value" and reads the value as YAML, so
// numbers, booleans and lists get their natural types.
func ParseAssignment(s string) (string, any, error) {
	key, text, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return "", nil, fmt.Errorf("expected key=value, got %q", s)
	}
	var v any
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return "", nil, fmt.Errorf("value of %s: %w", key, err)
	}
	return key, v, nil
}
