// Package cmd implements exprdemo's command tree, grounded on
// CWBudde-go-dws's cmd/dwscript/cmd (rootCmd, persistent flags,
// subcommands registered from init).
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "exprdemo",
	Short: "Drive the scalar expression engine's checker and runtime from the command line",
	Long: `exprdemo is an illustrative client of the expression engine's
registry -> checker -> runtime pipeline. It reads expressions in a tiny
s-expression-like textual syntax (e.g. plus(@a, 5u8), not(true),
get_tuple(create_tuple(1u8, true), 0u8)) and either type-checks them
against a column schema (check) or type-checks and evaluates them
against column data read from a CSV-ish file (eval).

There is no parser inside the engine itself - this syntax and its
reader exist only for this CLI.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(evalCmd)
}
