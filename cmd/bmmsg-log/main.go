// Command bmmsg-log views and analyzes codec event logs.
//
// Logs are written by the codec's file logger, for example with
// "bmmsg --log events.blog". A ".zst" suffix means the log is zstd
// compressed.
//
// Usage:
//
//	bmmsg-log <command> [flags] <file.blog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSONL or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View only overflow events
//	bmmsg-log view --category overflow events.blog
//
//	# View decode events of one message
//	bmmsg-log view --operation decode --schema RbrData events.blog
//
//	# Keep one session, compressed
//	bmmsg-log filter --session 3f1c... -o session.blog.zst events.blog
//
//	# Export to CSV
//	bmmsg-log export --format csv events.blog
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bristlemouth/bm-messages-go/cmd/bmmsg-log/commands"
)

const usage = `bmmsg-log - Bristlemouth message codec log analyzer

Usage:
  bmmsg-log <command> [flags] <file.blog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSONL or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "bmmsg-log <command> --help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "view":
		err = runView(args)
	case "export":
		err = runExport(args)
	case "filter":
		err = runFilter(args)
	case "stats":
		err = runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newFlagSet(name, synopsis string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "bmmsg-log %s\n\nUsage:\n  bmmsg-log %s\n\nFlags:\n", name, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// filterFlags registers the event selection flags shared by view and filter.
func filterFlags(fs *pflag.FlagSet) *commands.FilterOptions {
	opts := &commands.FilterOptions{}
	fs.StringVar(&opts.Session, "session", "", "Filter by session ID")
	fs.StringVar(&opts.Schema, "schema", "", "Filter by message name")
	fs.StringVar(&opts.Operation, "operation", "", "Filter by operation (encode, decode)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (message, overflow, unknown_key, error)")
	fs.StringVar(&opts.ErrorKind, "error-kind", "", "Filter error events by kind (e.g. MALFORMED_INPUT)")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	return opts
}

func logPath(fs *pflag.FlagSet) (string, error) {
	if fs.NArg() < 1 {
		fs.Usage()
		return "", errors.New("log file path required")
	}
	return fs.Arg(0), nil
}

func runView(args []string) error {
	fs := newFlagSet("view", "view [flags] <file.blog>")
	opts := filterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := logPath(fs)
	if err != nil {
		return err
	}

	filter, err := opts.Build()
	if err != nil {
		return err
	}
	return commands.RunView(path, filter, os.Stdout)
}

func runExport(args []string) error {
	fs := newFlagSet("export", "export [flags] <file.blog>")
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.StringP("output", "o", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := logPath(fs)
	if err != nil {
		return err
	}
	return commands.RunExport(path, *format, *output)
}

func runFilter(args []string) error {
	fs := newFlagSet("filter", "filter [flags] -o <out.blog> <file.blog>")
	opts := filterFlags(fs)
	fs.StringVarP(&opts.Output, "output", "o", "", "Output file (required; .zst compresses)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := logPath(fs)
	if err != nil {
		return err
	}
	if opts.Output == "" {
		fs.Usage()
		return errors.New("output file (-o) required")
	}

	count, err := commands.RunFilter(path, *opts)
	if err != nil {
		return err
	}
	fmt.Printf("Filtered %d events to %s\n", count, opts.Output)
	return nil
}

func runStats(args []string) error {
	fs := newFlagSet("stats", "stats <file.blog>")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := logPath(fs)
	if err != nil {
		return err
	}
	return commands.RunStats(path, os.Stdout)
}
