// Command slate lowers backend-neutral IR documents to concrete output
// syntax trees.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/slate-compiler/slate/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands emit their own formatted error output; only surface
		// errors that never reached a formatter.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
