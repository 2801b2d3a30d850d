// Package cmd implements the tel CLI surface described in spec.md §6: a
// positional file-or-directory argument, --show-deps, -h/--help, and exit
// codes 0/1. Structure (separate root.go/run.go, package-level flag vars,
// PersistentFlags for ambient options) follows
// CWBudde-go-dws/cmd/dwscript/cmd/root.go.
package cmd

import (
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "tel",
	Short: "Tel demand-driven compiler engine",
	Long: `tel reads, parses, resolves and executes a Tel program.

A Tel program is one or more .telsb files: a Lisp-like surface syntax with
imports, local function definitions, and a single implicit top-level
function per file.`,
}

// Execute runs the root command; its error (if any) is the CLI's exit
// signal — main.go turns a non-nil error into exit code 1.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
