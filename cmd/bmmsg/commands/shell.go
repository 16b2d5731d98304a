package commands

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"github.com/bristlemouth/bm-messages-go/pkg/inspect"
	"github.com/bristlemouth/bm-messages-go/pkg/messages"
)

// Shell edits and encodes one message at a time interactively.
type Shell struct {
	env     *Env
	current messages.Message
	last    []byte
}

// NewShell returns a shell writing to env.Out.
func NewShell(env *Env) *Shell {
	return &Shell{env: env}
}

// Run reads commands until quit, EOF or an error from the terminal.
func (s *Shell) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "bmmsg> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	out := s.env.Out
	s.env.Out = rl.Stdout()
	defer func() { s.env.Out = out }()

	s.printHelp()
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return nil
		}
		if s.Exec(line) {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the shell should exit.
// Command errors are printed, not returned.
func (s *Shell) Exec(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		s.printHelp()
	case "schemas", "ls":
		err = s.env.RunSchemas(len(args) > 0 && args[0] == "-k")
	case "new", "n":
		err = s.cmdNew(args)
	case "set", "s":
		err = s.cmdSet(args)
	case "show":
		err = s.cmdShow()
	case "encode", "e":
		err = s.cmdEncode()
	case "decode", "d":
		err = s.cmdDecode(args)
	case "diag":
		err = s.cmdDiag(args)
	case "quit", "exit", "q":
		return true
	default:
		err = fmt.Errorf("unknown command %q (try help)", cmd)
	}
	if err != nil {
		fmt.Fprintf(s.env.Out, "error: %v\n", err)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.env.Out, `Commands:
  schemas [-k]          List messages, with -k their keys
  new <message>         Start a new message
  set key=value ...     Set fields of the current message
  show                  Show the current message
  encode                Encode the current message
  decode [msg] [hex]    Decode hex, or the last encoding
  diag [hex]            CBOR diagnostic of hex, or the last encoding
  quit                  Exit
`)
}

func (s *Shell) cmdNew(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: new <message>")
	}
	m, err := s.env.New(args[0])
	if err != nil {
		return err
	}
	s.current = m
	s.last = nil
	fmt.Fprintf(s.env.Out, "new %s\n", m.Name())
	return nil
}

func (s *Shell) requireCurrent() error {
	if s.current == nil {
		return fmt.Errorf("no message (use new <message>)")
	}
	return nil
}

func (s *Shell) cmdSet(args []string) error {
	if err := s.requireCurrent(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: set key=value ...")
	}
	values := make(map[string]any, len(args))
	for _, a := range args {
		key, v, err := ParseAssignment(a)
		if err != nil {
			return err
		}
		values[key] = v
	}
	return messages.Apply(s.current, values)
}

func (s *Shell) cmdShow() error {
	if err := s.requireCurrent(); err != nil {
		return err
	}
	fmt.Fprint(s.env.Out, s.env.Formatter.FormatTable(s.current.Name(), s.current.Table()))
	return nil
}

func (s *Shell) cmdEncode() error {
	if err := s.requireCurrent(); err != nil {
		return err
	}
	data, err := messages.Marshal(s.current, s.env.opts...)
	if err != nil {
		return err
	}
	s.last = data
	fmt.Fprintf(s.env.Out, "%d bytes: %s\n", len(data), inspect.FormatHexCompact(data))
	return nil
}

// hexArg returns the bytes spelled by the trailing arguments, or the last
// encoding when there are none. Leading arguments that are not hex are
// returned as the rest.
func (s *Shell) hexArg(args []string) ([]byte, []string, error) {
	for i := range args {
		if data, err := inspect.ParseHex(strings.Join(args[i:], "")); err == nil && len(data) > 0 {
			return data, args[:i], nil
		}
	}
	if s.last == nil {
		return nil, nil, fmt.Errorf("nothing to decode (give hex or encode first)")
	}
	return s.last, args, nil
}

func (s *Shell) cmdDecode(args []string) error {
	data, rest, err := s.hexArg(args)
	if err != nil {
		return err
	}
	opts := DecodeOptions{}
	if len(rest) > 0 {
		opts.Message = rest[0]
	} else if len(args) == 0 && s.current != nil {
		opts.Message = s.current.Name()
	}
	return s.env.Decode(opts, data)
}

func (s *Shell) cmdDiag(args []string) error {
	data, _, err := s.hexArg(args)
	if err != nil {
		return err
	}
	return s.env.Diag(data)
}
