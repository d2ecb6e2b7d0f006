package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pthm/sequin/internal/cli"
	"github.com/pthm/sequin/pkg/migrator"
)

var statusDB string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long:  `Compare the plan generated from tables.yaml against the last applied migration.`,
	Example: `  # Check whether the database is up to date
  sequin status --db postgres://localhost/mydb`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(cfg.Tables, cfg.Dialect)
		if err != nil {
			return err
		}

		dsn, err := resolveDSN(statusDB)
		if err != nil {
			return err
		}

		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return cli.DBConnectError("connecting to database", err)
		}
		defer func() { _ = db.Close() }()

		rec, err := migrator.New(db).LastRecord(context.Background())
		if err != nil {
			return cli.GeneralError("reading migration status", err)
		}

		if rec == nil {
			fmt.Println("No migration has been applied.")
			return nil
		}

		if rec.Checksum == plan.Checksum() {
			fmt.Println("Up to date.")
		} else {
			fmt.Println("Out of date: the plan differs from the last applied migration.")
			fmt.Println("Run 'sequin migrate' to apply.")
		}
		if len(rec.Objects) > 0 {
			fmt.Printf("Managed objects: %s\n", strings.Join(rec.Objects, ", "))
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusDB, "db", "", "database URL")
}
