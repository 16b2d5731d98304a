// Package vectors holds encoded reference messages shared by the codec tests
// and the bmmsg tool.
package vectors

import (
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var vectorFS embed.FS

// Vector is one reference message: the field values that produce it, its
// encoded size and, when pinned, its exact bytes.
type Vector struct {
	Name    string         `yaml:"name"`
	Message string         `yaml:"message"`
	Size    int            `yaml:"size"`
	Hex     string         `yaml:"hex"`
	Values  map[string]any `yaml:"values"`
}

// Bytes decodes the pinned hex. It returns nil when the vector only pins a
// size.
func (v Vector) Bytes() ([]byte, error) {
	if v.Hex == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(strings.Join(strings.Fields(v.Hex), ""))
	if err != nil {
		return nil, fmt.Errorf("vector %s: %w", v.Name, err)
	}
	return b, nil
}

// Load returns the built-in vectors sorted by name.
func Load() ([]Vector, error) {
	return LoadFS(vectorFS, "testdata")
}

// LoadFS reads every .yaml file in dir. Each file holds a list of vectors.
func LoadFS(fsys fs.FS, dir string) ([]Vector, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var out []Vector
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		file := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, err
		}
		var vs []Vector
		if err := yaml.Unmarshal(data, &vs); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", file, err)
		}
		for _, v := range vs {
			if v.Name == "" || v.Message == "" {
				return nil, fmt.Errorf("%s: vector needs a name and a message", file)
			}
			if prev, dup := seen[v.Name]; dup {
				return nil, fmt.Errorf("%s: vector %q already defined in %s", file, v.Name, prev)
			}
			seen[v.Name] = file
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Find returns the named built-in vector.
func Find(name string) (Vector, bool) {
	vs, err := Load()
	if err != nil {
		return Vector{}, false
	}
	for _, v := range vs {
		if v.Name == name {
			return v, true
		}
	}
	return Vector{}, false
}
