package cmd

import (
	"fmt"

	"github.com/exprengine/scalar/src/builtins"
	"github.com/exprengine/scalar/src/checker"
	"github.com/exprengine/scalar/src/function"
	"github.com/spf13/cobra"
)

var checkColumnsFile string

var checkCmd = &cobra.Command{
	Use:   "check <expression>",
	Short: "Type-check an expression and print its inferred type",
	Long: `check parses <expression> in exprdemo's textual syntax, resolves it
against the reference function catalog, and prints the type the checker
infers for it. Column references (@name) are resolved against the
header of --columns, if given; an expression with no column references
needs no --columns at all.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkColumnsFile, "columns", "c", "", "CSV-ish column file supplying the schema (header row only)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ast, err := parseAst(args[0])
	if err != nil {
		return fmt.Errorf("parsing expression: %w", err)
	}

	schema := checker.Schema{}
	if checkColumnsFile != "" {
		schema, err = loadSchema(checkColumnsFile)
		if err != nil {
			return fmt.Errorf("loading schema: %w", err)
		}
	}

	registry := function.NewRegistry()
	builtins.Register(registry)

	expr, err := checker.Check(ast, registry, schema)
	if err != nil {
		return fmt.Errorf("type check failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), expr.Type())
	return nil
}
