package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bristlemouth/bm-messages-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByOperation map[log.Operation]int
	EventsByCategory  map[log.Category]int
	Schemas           map[string]*SchemaStats
	Sessions          map[string]int
	ErrorsByKind      map[string]int
	MaxExtraBytes     int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SchemaStats holds statistics for a single message name.
type SchemaStats struct {
	Encodes   int
	Decodes   int
	Overflows int
	Errors    int
	MinSize   int
	MaxSize   int
}

func (s *SchemaStats) addSize(n int) {
	if n <= 0 {
		return
	}
	if s.MinSize == 0 || n < s.MinSize {
		s.MinSize = n
	}
	if n > s.MaxSize {
		s.MaxSize = n
	}
}

// Collect reads every event of r into a Stats.
func Collect(r *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByOperation: make(map[log.Operation]int),
		EventsByCategory:  make(map[log.Category]int),
		Schemas:           make(map[string]*SchemaStats),
		Sessions:          make(map[string]int),
		ErrorsByKind:      make(map[string]int),
	}

	for {
		event, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByOperation[event.Operation]++
		stats.EventsByCategory[event.Category]++
		if event.SessionID != "" {
			stats.Sessions[event.SessionID]++
		}

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		name := event.Schema
		if name == "" {
			name = "(unlabelled)"
		}
		s, ok := stats.Schemas[name]
		if !ok {
			s = &SchemaStats{}
			stats.Schemas[name] = s
		}

		switch event.Category {
		case log.CategoryMessage:
			if event.Operation == log.OperationEncode {
				s.Encodes++
			} else {
				s.Decodes++
			}
			s.addSize(event.Size)
		case log.CategoryOverflow:
			s.Overflows++
			if event.ExtraBytes > stats.MaxExtraBytes {
				stats.MaxExtraBytes = event.ExtraBytes
			}
		case log.CategoryError:
			s.Errors++
		}

		if event.Error != nil {
			stats.ErrorsByKind[event.Error.Kind]++
		}
	}
	return stats, nil
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := Collect(reader)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Codec Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Sessions:     %d\n", len(stats.Sessions))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Operation:")
	for _, op := range []log.Operation{log.OperationEncode, log.OperationDecode} {
		if count := stats.EventsByOperation[op]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", op.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryOverflow, log.CategoryUnknownKey, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	if stats.MaxExtraBytes > 0 {
		fmt.Fprintf(w, "  Largest overflow: %d bytes\n", stats.MaxExtraBytes)
	}
	fmt.Fprintln(w)

	if len(stats.Schemas) > 0 {
		names := make([]string, 0, len(stats.Schemas))
		for name := range stats.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintf(w, "Messages: %d\n", len(names))
		for _, name := range names {
			s := stats.Schemas[name]
			fmt.Fprintf(w, "  %s: %d encoded, %d decoded", name, s.Encodes, s.Decodes)
			if s.MaxSize > 0 {
				fmt.Fprintf(w, ", %d-%d bytes", s.MinSize, s.MaxSize)
			}
			if s.Overflows > 0 {
				fmt.Fprintf(w, ", %d overflows", s.Overflows)
			}
			if s.Errors > 0 {
				fmt.Fprintf(w, ", %d errors", s.Errors)
			}
			fmt.Fprintln(w)
		}
	}

	if len(stats.ErrorsByKind) > 0 {
		kinds := make([]string, 0, len(stats.ErrorsByKind))
		for k := range stats.ErrorsByKind {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)

		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors by Kind:")
		for _, k := range kinds {
			fmt.Fprintf(w, "  %-24s %d\n", k+":", stats.ErrorsByKind[k])
		}
	}
}
