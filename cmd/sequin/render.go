package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pthm/sequin/internal/cli"
)

var (
	renderTables  string
	renderOutput  string
	renderDialect string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render generated DDL",
	Long:  `Render trigger and view DDL from tables.yaml without touching a database.`,
	Example: `  # Print DDL to stdout
  sequin render

  # Write DDL to a migration file
  sequin render --output migrations/001_triggers.sql

  # Render for a different dialect
  sequin render --dialect sqlite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tablesPath := resolveString(renderTables, cfg.Tables)
		output := resolveString(renderOutput, cfg.Render.Output)
		dialectName := resolveString(renderDialect, cfg.Dialect)

		plan, err := loadPlan(tablesPath, dialectName)
		if err != nil {
			return err
		}

		out := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return cli.GeneralError("creating output file", err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}

		for _, stmt := range plan.Statements() {
			fmt.Fprintf(out, "%s\n\n", stmt)
		}

		if output != "" && !quiet {
			fmt.Printf("Wrote %d statements to %s\n", len(plan.Statements()), output)
		}
		return nil
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&renderTables, "tables", "", "table definition file")
	f.StringVarP(&renderOutput, "output", "o", "", "write SQL to file instead of stdout")
	f.StringVar(&renderDialect, "dialect", "", "SQL dialect: postgres, sqlite, mysql")
}
