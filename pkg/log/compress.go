package log

import (
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedSuffix marks log files written as a zstd stream.
const CompressedSuffix = ".zst"

// IsCompressed reports whether path names a zstd-compressed log.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, CompressedSuffix)
}

func newCompressor(w io.Writer) (*zstd.Encoder, error) {
	return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func newDecompressor(r io.Reader) (*zstd.Decoder, error) {
	return zstd.NewReader(r)
}
