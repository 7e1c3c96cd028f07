package cmd

import (
	"fmt"
	"os"
)

// stdOutput is the OutputSink every cmd/dove subcommand runs the
// interpreter with: print text to stdout, diagnostics to stderr.
type stdOutput struct{}

func (stdOutput) Print(message string) {
	fmt.Println(message)
}

func (stdOutput) Warning(message string) {
	fmt.Fprintf(os.Stderr, "Warning: %s\n", message)
}

func (stdOutput) Error(message string) {
	fmt.Fprintln(os.Stderr, message)
}
