package commands

import (
	"fmt"

	"github.com/bristlemouth/bm-messages-go/pkg/inspect"
)

// RunDiag prints the CBOR diagnostic notation and a hex dump of a message.
func (e *Env) RunDiag(input string, isHex bool) error {
	data, err := ReadInput(input, isHex)
	if err != nil {
		return err
	}
	return e.Diag(data)
}

// Diag prints data as CBOR diagnostic notation followed by a hex dump.
func (e *Env) Diag(data []byte) error {
	diag, err := inspect.FormatDiag(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.Out, diag)
	fmt.Fprintln(e.Out)
	fmt.Fprint(e.Out, inspect.FormatHex(data))
	return nil
}
