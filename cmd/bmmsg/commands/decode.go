package commands

import (
	"fmt"

	"github.com/bristlemouth/bm-messages-go/pkg/inspect"
	"github.com/bristlemouth/bm-messages-go/pkg/messages"
	"github.com/bristlemouth/bm-messages-go/pkg/schema"
)

// DecodeOptions specifies one decode.
type DecodeOptions struct {
	// Message is the message name. Empty identifies a registered message
	// from the bytes.
	Message string

	Input string
	Hex   bool

	// Lenient accepts keys in any order and skips unknown ones.
	Lenient bool

	// Field prints only the value at this path, e.g. "SoftData/temperature_deg_c"
	// or just the key when Message is set.
	Field string
}

// RunDecode decodes a message and prints its fields.
func (e *Env) RunDecode(opts DecodeOptions) error {
	data, err := ReadInput(opts.Input, opts.Hex)
	if err != nil {
		return err
	}
	return e.Decode(opts, data)
}

// Decode prints data decoded as described by opts.
func (e *Env) Decode(opts DecodeOptions, data []byte) error {
	if m, err := e.New(opts.Message); err == nil {
		if rec, ok := m.(*schema.Record); ok {
			return e.decodeRecord(rec, data, opts)
		}
	}

	in := inspect.NewInspector(e.Formatter, e.opts...)
	report, err := in.Inspect(opts.Message, data, opts.Lenient)
	if err != nil {
		return err
	}

	if opts.Field != "" {
		key := opts.Field
		if p, err := inspect.ParsePath(opts.Field); err == nil && !p.IsPartial() {
			if p.Message != report.Message {
				return fmt.Errorf("field %s is not in %s", opts.Field, report.Message)
			}
			key = p.Key
		}
		row, ok := report.Row(key)
		if !ok {
			return fmt.Errorf("%w: %s", inspect.ErrUnknownKey, opts.Field)
		}
		fmt.Fprintln(e.Out, row.Value)
		return nil
	}

	fmt.Fprint(e.Out, in.Format(report))
	return nil
}

func (e *Env) decodeRecord(rec *schema.Record, data []byte, opts DecodeOptions) error {
	var err error
	if opts.Lenient {
		err = messages.DecodeLenient(data, rec, e.opts...)
	} else {
		err = rec.Decode(data, e.opts...)
	}
	if err != nil && !isSkipped(err) {
		return err
	}

	if opts.Field != "" {
		f, ok := rec.Table().Lookup(opts.Field)
		if !ok {
			return fmt.Errorf("%w: %s", inspect.ErrUnknownKey, opts.Field)
		}
		fmt.Fprintln(e.Out, e.Formatter.Row(rec.Name(), f).Value)
		return nil
	}

	fmt.Fprintf(e.Out, "%s (%d bytes, fingerprint %s):\n", rec.Name(), len(data), rec.Schema().Fingerprint().Short())
	fmt.Fprint(e.Out, e.Formatter.FormatRows(e.Formatter.Rows(rec.Name(), rec.Table())))
	if err != nil {
		fmt.Fprintln(e.Out, e.Formatter.Indent(1, "warning: "+err.Error()))
	}
	return nil
}
