// Command bmmsg-gen generates Go message types from YAML message
// definitions.
//
// Each definition becomes a struct implementing messages.Message, so it
// encodes and decodes through the same codec as the built-in messages.
//
// Usage:
//
//	bmmsg-gen --package thermistors --output thermistors_gen.go thermistors.yaml [more.yaml ...]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"golang.org/x/tools/imports"

	"github.com/bristlemouth/bm-messages-go/pkg/schema"
)

func main() {
	pkg := pflag.StringP("package", "p", "", "Package name of the generated file")
	output := pflag.StringP("output", "o", "", "Output Go file")
	pflag.Parse()

	if *pkg == "" || *output == "" || pflag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: bmmsg-gen --package <name> --output <file.go> <schema.yaml> ...")
		pflag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(*pkg, *output, pflag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(pkg, output string, paths []string) error {
	var all []*schema.Schema
	for _, path := range paths {
		list, err := schema.LoadFile(path)
		if err != nil {
			return err
		}
		all = append(all, list...)
	}

	source := filepath.Base(paths[0])
	if len(paths) > 1 {
		source = fmt.Sprintf("%s and %d more", source, len(paths)-1)
	}
	code, err := Generate(pkg, source, all)
	if err != nil {
		return err
	}
	if err := writeFormatted(output, code); err != nil {
		return err
	}
	fmt.Printf("  generated %s (%d messages)\n", output, len(all))
	return nil
}

// writeFormatted formats Go source code with goimports and writes it to a file.
func writeFormatted(path string, code string) error {
	formatted, err := imports.Process(path, []byte(code), nil)
	if err != nil {
		// Write unformatted so you can debug the generator output
		_ = os.WriteFile(path+".broken", []byte(code), 0o644)
		return fmt.Errorf("goimports %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, formatted, 0o644)
}
