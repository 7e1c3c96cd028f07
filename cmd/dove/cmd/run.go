package cmd

import (
	"fmt"
	"os"

	"github.com/dove-lang/dove/pkg/dove"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Dove file or expression",
	Long: `Execute a Dove program from a file or inline expression.

Examples:
  # Run a script file
  dove run script.dove

  # Evaluate an inline expression
  dove run -e "print 1 + 2"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var input, filename string

	if evalExpr != "" {
		input = evalExpr
		filename = "<eval>"
	} else if len(args) == 1 {
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			if os.IsNotExist(err) {
				stdOutput{}.Error(fmt.Sprintf("File: '%s' not found.", filename))
				os.Exit(53)
			}
			stdOutput{}.Error(fmt.Sprintf("Error while reading file: %s %v", filename, err))
			os.Exit(75)
		}
		input = string(content)
	} else {
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	d := dove.New(stdOutput{})

	if dumpAST {
		program, errs := d.ParseAST(input)
		if len(errs) > 0 {
			return fmt.Errorf("parsing failed with %d error(s)", len(errs))
		}
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	if trace {
		fmt.Fprintf(os.Stderr, "[Trace mode enabled - executing %s]\n", filename)
	}

	if filename == "<eval>" {
		d.Run(input, false)
	} else {
		d.RunFile(filename)
	}
	return nil
}
