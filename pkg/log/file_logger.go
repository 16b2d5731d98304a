package log

import (
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// FileLogger writes codec events to a file in CBOR format.
// It is safe for concurrent use from multiple goroutines.
//
// When the path ends in ".zst" the event stream is zstd compressed. Each
// FileLogger session appends one zstd frame, so reopening a compressed log
// and appending keeps it readable.
type FileLogger struct {
	file    *os.File
	zw      *zstd.Encoder
	encoder *EventEncoder
	mu      sync.Mutex
	closed  bool
}

// NewFileLogger creates a new FileLogger that writes to the specified path.
// If the file exists, new events are appended. The file is created with
// permissions 0644 if it doesn't exist.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	l := &FileLogger{file: f}
	var w io.Writer = f
	if IsCompressed(path) {
		zw, err := newCompressor(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		l.zw = zw
		w = zw
	}
	l.encoder = NewEncoder(w)
	return l, nil
}

// Log writes an event to the log file.
// This method is safe for concurrent use.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}

	// Ignore encoding errors - logging should not disrupt the codec
	_ = l.encoder.Encode(event)
}

// Flush pushes buffered compressed data to the file. It is a no-op for
// uncompressed logs.
func (l *FileLogger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.zw == nil {
		return nil
	}
	return l.zw.Flush()
}

// Close closes the log file.
// It is safe to call Close multiple times.
// After Close is called, subsequent Log calls are silently ignored.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if l.zw != nil {
		if err := l.zw.Close(); err != nil {
			l.file.Close()
			return err
		}
	}
	return l.file.Close()
}

// Compile-time interface satisfaction check.
var _ Logger = (*FileLogger)(nil)
