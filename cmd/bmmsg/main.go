// Command bmmsg encodes, decodes and inspects Bristlemouth sensor messages.
//
// Usage:
//
//	bmmsg [global flags] <command> [flags] [args]
//
// Commands:
//
//	encode       Encode a message from YAML values and key=value pairs
//	decode       Decode a message, identifying it when no name is given
//	diag         Print the CBOR diagnostic notation of a message
//	schemas      List registered and dynamic messages
//	fingerprint  Print the fingerprints of a schema file
//	shell        Edit, encode and decode messages interactively
//
// Examples:
//
//	# Encode a temperature reading as hex
//	bmmsg encode --hex --set temperature_deg_c=18.93 SoftData
//
//	# Decode hex from stdin and capture codec events
//	echo a5 67 ... | bmmsg --log events.blog decode --hex -
//
//	# Decode a message defined in a schema file
//	bmmsg --schemas thermistors.yaml decode ThermistorReading reading.bin
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bristlemouth/bm-messages-go/cmd/bmmsg/commands"
)

const usage = `bmmsg - Bristlemouth message codec tool

Usage:
  bmmsg [global flags] <command> [flags] [args]

Commands:
  encode       Encode a message from YAML values and key=value pairs
  decode       Decode a message, identifying it when no name is given
  diag         Print the CBOR diagnostic notation of a message
  schemas      List registered and dynamic messages
  fingerprint  Print the fingerprints of a schema file
  shell        Edit, encode and decode messages interactively

Global flags:
`

func main() {
	var cfg commands.Config
	global := pflag.NewFlagSet("bmmsg", pflag.ContinueOnError)
	global.SetInterspersed(false)
	global.StringVar(&cfg.LogPath, "log", "", "Capture codec events to a file (.zst compresses)")
	global.StringVar(&cfg.Events, "events", "", "Echo codec events to stderr (slog, zap, logrus)")
	global.StringVar(&cfg.Session, "session", "", "Session ID for captured events (default: random UUID)")
	global.StringSliceVar(&cfg.SchemaFiles, "schemas", nil, "YAML files defining dynamic messages")
	global.IntVar(&cfg.AllocLimit, "alloc-limit", 0, "Bytes one decode may allocate (0: no limit)")
	global.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		global.PrintDefaults()
	}

	if err := global.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(1)
	}
	if global.NArg() < 1 {
		global.Usage()
		os.Exit(1)
	}

	cmd := global.Arg(0)
	args := global.Args()[1:]
	if cmd == "help" {
		global.Usage()
		return
	}

	env, err := commands.NewEnv(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case "encode":
		err = runEncode(env, args)
	case "decode":
		err = runDecode(env, args)
	case "diag":
		err = runDiag(env, args)
	case "schemas":
		err = runSchemas(env, args)
	case "fingerprint":
		err = runFingerprint(env, args)
	case "shell":
		err = commands.NewShell(env).Run()
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if cerr := env.Close(); err == nil {
		err = cerr
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
		fmt.Fprintf(os.Stderr, "bmmsg %s\n\nUsage:\n  bmmsg %s\n\nFlags:\n", name, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

func runEncode(env *commands.Env, args []string) error {
	var opts commands.EncodeOptions
	fs := newFlagSet("encode", "encode [flags] <message>")
	fs.StringVarP(&opts.ValuesFile, "values", "f", "", "YAML file of field values")
	fs.StringArrayVarP(&opts.Set, "set", "s", nil, "Set a field (key=value, repeatable)")
	fs.IntVar(&opts.Size, "size", 0, "Encode into a buffer of this many bytes (0: fit)")
	fs.StringVarP(&opts.Output, "output", "o", "", "Write the raw bytes to a file")
	fs.BoolVar(&opts.Hex, "hex", false, "Print compact hex instead of a hex dump")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("message name required")
	}
	opts.Message = fs.Arg(0)
	return env.RunEncode(opts)
}

func runDecode(env *commands.Env, args []string) error {
	var opts commands.DecodeOptions
	fs := newFlagSet("decode", "decode [flags] [message] <file|->")
	fs.BoolVar(&opts.Hex, "hex", false, "Input is hex text")
	fs.BoolVar(&opts.Lenient, "lenient", false, "Accept keys in any order and skip unknown keys")
	fs.StringVar(&opts.Field, "field", "", "Print one field (key or message/key)")
	fs.BoolVar(&env.Formatter.ShowTypes, "types", false, "Show wire types")
	if err := fs.Parse(args); err != nil {
		return err
	}
	switch fs.NArg() {
	case 1:
		opts.Input = fs.Arg(0)
	case 2:
		opts.Message, opts.Input = fs.Arg(0), fs.Arg(1)
	default:
		fs.Usage()
		return errors.New("input file required")
	}
	return env.RunDecode(opts)
}

func runDiag(env *commands.Env, args []string) error {
	fs := newFlagSet("diag", "diag [flags] <file|->")
	isHex := fs.Bool("hex", false, "Input is hex text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("input file required")
	}
	return env.RunDiag(fs.Arg(0), *isHex)
}

func runSchemas(env *commands.Env, args []string) error {
	fs := newFlagSet("schemas", "schemas [flags]")
	keys := fs.BoolP("keys", "k", false, "List each message's keys and types")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return env.RunSchemas(*keys)
}

func runFingerprint(env *commands.Env, args []string) error {
	fs := newFlagSet("fingerprint", "fingerprint <schema.yaml>")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("schema file required")
	}
	return env.RunFingerprint(fs.Arg(0))
}
