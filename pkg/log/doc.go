// Package log provides the diagnostic sink for the Bristlemouth message codec.
//
// The codec in pkg/wire never writes to a process-wide logger. Callers hand it
// a Logger, and the codec reports what happened to each encode or decode call
// as Events: completed messages, buffer overflows, unknown keys and errors.
//
// # Basic Usage
//
//	// Console output during development
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// Binary capture, zstd compressed because of the .zst suffix
//	fl, _ := log.NewFileLogger("/var/log/bm/codec.bmlog.zst")
//
//	// Both
//	logger = log.NewMultiLogger(logger, fl)
//
//	n, err := wire.Encode(buf, table, wire.WithLogger(logger))
//
// Adapters for zap and logrus live in the zaplog and logruslog subpackages.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys. Files
// whose name ends in .zst are zstd compressed. The bmmsg-log CLI tool
// provides viewing, filtering, statistics and export.
package log
