package cmd

import (
	"fmt"

	"github.com/exprengine/scalar/src/builtins"
	"github.com/exprengine/scalar/src/checker"
	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/function"
	"github.com/exprengine/scalar/src/runtime"
	"github.com/spf13/cobra"
)

var evalColumnsFile string

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Type-check and evaluate an expression against column data",
	Long: `eval parses <expression>, type-checks it against the schema of
--columns, runs it through the runtime against that file's data, and
prints the result: one line per row for a column result, or a single
value if every referenced column collapsed to a scalar.`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVarP(&evalColumnsFile, "columns", "c", "", "CSV-ish column file supplying the schema and data")
	evalCmd.MarkFlagRequired("columns")
}

func runEval(cmd *cobra.Command, args []string) error {
	ast, err := parseAst(args[0])
	if err != nil {
		return fmt.Errorf("parsing expression: %w", err)
	}

	schema, env, err := loadColumns(evalColumnsFile)
	if err != nil {
		return fmt.Errorf("loading columns: %w", err)
	}

	registry := function.NewRegistry()
	builtins.Register(registry)

	expr, err := checker.Check(ast, registry, schema)
	if err != nil {
		return fmt.Errorf("type check failed: %w", err)
	}

	result, err := runtime.Run(expr, env)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if col, ok := result.(column.Column); ok {
		for i := 0; i < col.Len(); i++ {
			fmt.Fprintln(out, col.Index(i).String())
		}
		return nil
	}
	fmt.Fprintln(out, result.(column.Scalar).String())
	return nil
}
