package commands

import (
	"errors"
	"fmt"

	"github.com/bristlemouth/bm-messages-go/pkg/messages"
	"github.com/bristlemouth/bm-messages-go/pkg/schema"
	"github.com/bristlemouth/bm-messages-go/pkg/wire"
)

// RunSchemas lists the registered messages and any loaded dynamic ones.
// With keys, each message's fields are listed too.
func (e *Env) RunSchemas(keys bool) error {
	for _, name := range messages.Names() {
		m := messages.New(name)
		e.printMessage(name, m.Table(), keys, "")
	}
	for _, s := range e.Schemas() {
		e.printMessage(s.Name(), s.New().Table(), keys, " (dynamic, "+s.Fingerprint().Short()+")")
	}
	return nil
}

func (e *Env) printMessage(name string, t wire.Table, keys bool, note string) {
	fmt.Fprintf(e.Out, "%s%s\n", name, note)
	if !keys {
		return
	}
	for _, f := range t.Fields {
		checked := ""
		if f.IsChecked() {
			checked = ", checked"
		}
		fmt.Fprintln(e.Out, e.Formatter.Indent(1, fmt.Sprintf("%s (%s%s)", f.Key, f.Type, checked)))
	}
}

// RunFingerprint prints the fingerprint of every schema in path.
func (e *Env) RunFingerprint(path string) error {
	list, err := schema.LoadFile(path)
	if err != nil {
		return err
	}
	for _, s := range list {
		fmt.Fprintf(e.Out, "%s  %s\n", s.Fingerprint(), s.Name())
	}
	return nil
}

// isSkipped reports whether err only lists keys a decode skipped or could
// not narrow.
func isSkipped(err error) bool {
	var we *wire.Error
	if !errors.As(err, &we) || len(we.Keys) == 0 {
		return false
	}
	return we.Code == wire.CodeUnrecognizedKey || we.Code == wire.CodeOutOfRange
}
