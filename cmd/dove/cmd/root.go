package cmd

import (
	"fmt"
	"os"

	"github.com/dove-lang/dove/pkg/dove"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "dove",
	Short: "Dove interpreter",
	Long: `dove is a Go implementation of the Dove scripting language.

Dove is a dynamically-typed, lexically-scoped scripting language with:
  - First-class functions and closures
  - Single-inheritance classes
  - Arrays, tuples, and dictionaries
  - A lightweight file import system

Called with no arguments, dove starts an interactive REPL. Called with a
single argument, it runs that file. The "run"/"repl" subcommands below
exist for their extra flags (--eval, --dump-ast, --trace); plain
"dove script.dove" and plain "dove" remain the primary entry points.`,
	Version: Version,
	Args:    cobra.ArbitraryArgs,
	RunE:    runRoot,
}

// runRoot implements the bare-`dove` CLI surface: no arguments starts the
// REPL, one argument runs it as a script file, and more than one argument
// just prints usage rather than erroring.
func runRoot(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		dove.New(stdOutput{}).RunPrompt(os.Stdin, os.Stdout)
		return nil
	case 1:
		dove.New(stdOutput{}).RunFile(args[0])
		return nil
	default:
		return cmd.Usage()
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
