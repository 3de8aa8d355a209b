package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/compozy/usertable/cli"
	"github.com/compozy/usertable/cli/helpers"
)

func main() {
	cmd := cli.RootCmd()
	if err := cmd.Execute(); err != nil {
		// CLI errors were already reported in the command's output mode
		var cliErr *helpers.CliError
		if !errors.As(err, &cliErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
