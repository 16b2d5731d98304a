package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendHeadBoundaries(t *testing.T) {
	tests := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0xa0}},
		{23, []byte{0xb7}},
		{24, []byte{0xb8, 0x18}},
		{0xff, []byte{0xb8, 0xff}},
		{0x100, []byte{0xb9, 0x01, 0x00}},
		{0x10000, []byte{0xba, 0x00, 0x01, 0x00, 0x00}},
		{1 << 32, []byte{0xbb, 0, 0, 0, 1, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		got := appendHead(nil, majorMap, tt.v)
		assert.Equal(t, tt.want, got, "v=%d", tt.v)
		assert.Equal(t, len(got), headSize(tt.v))

		h, err := readHead(got)
		require.NoError(t, err)
		assert.Equal(t, majorMap, h.major)
		assert.Equal(t, tt.v, h.arg)
		assert.Equal(t, len(got), h.size)
		assert.False(t, h.indefinite)
	}
}

func TestReadHeadErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated argument", []byte{0x19, 0x01}},
		{"reserved additional info", []byte{0x1c}},
		{"indefinite unsigned", []byte{0x1f}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readHead(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestReadHeadIndefinite(t *testing.T) {
	h, err := readHead([]byte{0x7f})
	require.NoError(t, err)
	assert.Equal(t, majorText, h.major)
	assert.True(t, h.indefinite)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "float32", describe(headFloat32))
	assert.Equal(t, "float64", describe(headFloat64))
	assert.Equal(t, "text string", describe(0x61))
	assert.Equal(t, "boolean", describe(0xf5))
	assert.Equal(t, "negative integer", describe(0x20))
}
