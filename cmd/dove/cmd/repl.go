package cmd

import (
	"os"

	"github.com/dove-lang/dove/pkg/dove"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Dove session",
	Long:  `Start a read-eval-print loop over stdin, echoing output to stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		d := dove.New(stdOutput{})
		d.RunPrompt(os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
