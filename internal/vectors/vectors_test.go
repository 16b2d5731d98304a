package vectors

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	vs, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, vs)

	assert.IsIncreasing(t, names(vs))
	for _, v := range vs {
		b, err := v.Bytes()
		require.NoError(t, err, v.Name)
		if b != nil {
			assert.Len(t, b, v.Size, v.Name)
		}
	}
}

func TestFind(t *testing.T) {
	v, ok := Find("soft-data")
	require.True(t, ok)
	assert.Equal(t, "SoftData", v.Message)
	assert.Equal(t, 18.93, v.Values["temperature_deg_c"])

	_, ok = Find("missing")
	assert.False(t, ok)
}

func TestLoadFS(t *testing.T) {
	t.Run("duplicate names", func(t *testing.T) {
		fsys := fstest.MapFS{
			"v/a.yaml": {Data: []byte("- {name: x, message: SoftData, size: 1}\n")},
			"v/b.yaml": {Data: []byte("- {name: x, message: SoftData, size: 1}\n")},
		}
		_, err := LoadFS(fsys, "v")
		assert.ErrorContains(t, err, "already defined")
	})

	t.Run("missing message", func(t *testing.T) {
		fsys := fstest.MapFS{"v/a.yaml": {Data: []byte("- {name: x}\n")}}
		_, err := LoadFS(fsys, "v")
		assert.ErrorContains(t, err, "needs a name and a message")
	})

	t.Run("other files ignored", func(t *testing.T) {
		fsys := fstest.MapFS{
			"v/a.yaml": {Data: []byte("- {name: x, message: SoftData, size: 1}\n")},
			"v/README": {Data: []byte("not yaml: [")},
		}
		vs, err := LoadFS(fsys, "v")
		require.NoError(t, err)
		assert.Len(t, vs, 1)
	})

	t.Run("bad hex", func(t *testing.T) {
		_, err := Vector{Name: "x", Hex: "zz"}.Bytes()
		assert.Error(t, err)
	})
}

func names(vs []Vector) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name
	}
	return out
}
