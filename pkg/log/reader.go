package log

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
)

// Filter specifies criteria for filtering log events.
// Empty/nil fields match all events for that criterion.
type Filter struct {
	// SessionID filters by exact session ID match.
	SessionID string

	// Operation filters by encode or decode.
	Operation *Operation

	// Category filters by event category.
	Category *Category

	// Schema filters by message name.
	Schema string

	// ErrorKind filters error events by kind name.
	ErrorKind string

	// TimeStart filters events at or after this time.
	TimeStart *time.Time

	// TimeEnd filters events before this time.
	TimeEnd *time.Time
}

// Matches reports whether the event matches all filter criteria.
func (f *Filter) Matches(event Event) bool {
	if f.SessionID != "" && event.SessionID != f.SessionID {
		return false
	}
	if f.Operation != nil && event.Operation != *f.Operation {
		return false
	}
	if f.Category != nil && event.Category != *f.Category {
		return false
	}
	if f.Schema != "" && event.Schema != f.Schema {
		return false
	}
	if f.ErrorKind != "" && (event.Error == nil || event.Error.Kind != f.ErrorKind) {
		return false
	}
	if f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader reads codec log events from a CBOR-encoded file, transparently
// decompressing ".zst" logs. It streams, so large files are fine.
type Reader struct {
	file    *os.File
	zr      *zstd.Decoder
	decoder *EventDecoder
	filter  Filter
}

// NewReader creates a Reader that reads all events from the specified log file.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader creates a Reader that reads events matching the filter.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r := &Reader{file: f, filter: filter}
	var src io.Reader = f
	if IsCompressed(path) {
		zr, err := newDecompressor(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		r.zr = zr
		src = zr
	}
	r.decoder = NewDecoder(src)
	return r, nil
}

// Next returns the next event that matches the filter.
// Returns io.EOF when no more events are available.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}

		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.zr != nil {
		r.zr.Close()
	}
	return r.file.Close()
}
