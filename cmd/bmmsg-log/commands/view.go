// Package commands implements the bmmsg-log CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/bristlemouth/bm-messages-go/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [sess:id] OPERATION CATEGORY schema
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	schema := event.Schema
	if schema == "" {
		schema = "-"
	}
	fmt.Fprintf(w, "%s [sess:%s] %-6s %s %s\n",
		ts, shortenSessionID(event.SessionID), event.Operation, event.Category, schema)

	if event.Key != "" {
		fmt.Fprintf(w, "  Key: %s\n", event.Key)
	}
	if event.Size > 0 {
		fmt.Fprintf(w, "  Size: %d bytes\n", event.Size)
	}
	if event.ExtraBytes > 0 {
		fmt.Fprintf(w, "  Extra bytes needed: %d\n", event.ExtraBytes)
	}
	if event.Error != nil {
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Kind: %s\n", err.Kind)
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// RunView writes the events of the log at path that match filter to output.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
