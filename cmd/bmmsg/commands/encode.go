package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/bristlemouth/bm-messages-go/pkg/inspect"
	"github.com/bristlemouth/bm-messages-go/pkg/messages"
	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// EncodeOptions specifies one encode.
type EncodeOptions struct {
	Message    string
	ValuesFile string
	Set        []string

	// Size is the buffer capacity. Zero sizes the buffer to fit.
	Size int

	// Output receives the raw bytes. Empty prints them.
	Output string

	// Hex prints compact hex instead of a hex dump.
	Hex bool
}

// ErrBufferTooSmall is returned when --size cannot hold the message. The
// printed report says how many more bytes were needed.
var ErrBufferTooSmall = errors.New("buffer too small")

// RunEncode builds the message from its values and encodes it.
func (e *Env) RunEncode(opts EncodeOptions) error {
	m, err := e.New(opts.Message)
	if err != nil {
		return err
	}

	values := make(map[string]any)
	if opts.ValuesFile != "" {
		if values, err = ReadValues(opts.ValuesFile); err != nil {
			return err
		}
	}
	for _, s := range opts.Set {
		key, v, err := ParseAssignment(s)
		if err != nil {
			return err
		}
		values[key] = v
	}
	if err := messages.Apply(m, values); err != nil {
		return err
	}

	data, err := e.encode(m, opts.Size)
	if err != nil {
		return err
	}
	return e.writeEncoded(data, opts)
}

func (e *Env) encode(m messages.Message, size int) ([]byte, error) {
	if size == 0 {
		return messages.Marshal(m, e.opts...)
	}

	buf := make([]byte, size)
	n, err := messages.Encode(buf, m, e.opts...)
	if wire.CodeOf(err) == wire.CodeBufferTooSmall {
		extra := wire.ExtraBytesNeeded(err)
		fmt.Fprintf(e.Out, "%s needs %d bytes; the %d-byte buffer is %d short\n", m.Name(), size+extra, size, extra)
		return nil, ErrBufferTooSmall
	}
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func (e *Env) writeEncoded(data []byte, opts EncodeOptions) error {
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(e.Out, "wrote %d bytes to %s\n", len(data), opts.Output)
		return nil
	}
	if opts.Hex {
		fmt.Fprintln(e.Out, inspect.FormatHexCompact(data))
		return nil
	}
	fmt.Fprint(e.Out, inspect.FormatHex(data))
	return nil
}
