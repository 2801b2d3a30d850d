// Command tel is the CLI entry point for the Tel engine: read, parse,
// resolve and execute a .telsb program.
package main

import (
	"fmt"
	"os"

	"github.com/mverleg/tel/cmd/tel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
