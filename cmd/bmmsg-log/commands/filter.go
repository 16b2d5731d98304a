package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bristlemouth/bm-messages-go/pkg/log"
)

// FilterOptions specifies event selection for the view and filter commands.
// Empty options match every event.
type FilterOptions struct {
	Output    string
	Session   string
	Schema    string
	Operation string
	Category  string
	ErrorKind string
	TimeStart string
	TimeEnd   string
}

// Build parses the options into a log filter.
func (o FilterOptions) Build() (log.Filter, error) {
	filter := log.Filter{
		SessionID: o.Session,
		Schema:    o.Schema,
		ErrorKind: strings.ToUpper(o.ErrorKind),
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	if o.Operation != "" {
		op, err := ParseOperationFlag(o.Operation)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Operation = &op
	}

	if o.Category != "" {
		c, err := ParseCategoryFlag(o.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}

	return filter, nil
}

// RunFilter copies the events of the log at path that match opts into
// opts.Output and returns how many were written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	filter, err := opts.Build()
	if err != nil {
		return 0, err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Close()
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}

	if err := logger.Close(); err != nil {
		return count, fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}
	return count, nil
}

// ParseOperationFlag parses an operation name (case-insensitive).
func ParseOperationFlag(s string) (log.Operation, error) {
	op, ok := log.ParseOperation(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid operation: %s (must be encode or decode)", s)
	}
	return op, nil
}

// ParseCategoryFlag parses a category name (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.ToUpper(strings.ReplaceAll(s, "-", "_")))
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be message, overflow, unknown_key, or error)", s)
	}
	return c, nil
}
