// Command dove is the Dove language CLI: run scripts, evaluate inline
// expressions, or start an interactive session.
package main

import (
	"os"

	"github.com/dove-lang/dove/cmd/dove/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
