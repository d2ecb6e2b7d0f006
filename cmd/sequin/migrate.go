package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/pthm/sequin/internal/cli"
	"github.com/pthm/sequin/pkg/migrator"
)

var (
	migrateDB     string
	migrateTables string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply generated DDL to database",
	Long:  `Apply trigger and view DDL generated from tables.yaml to PostgreSQL.`,
	Example: `  # Apply DDL to database
  sequin migrate --db postgres://localhost/mydb

  # Preview migration without applying
  sequin migrate --db postgres://localhost/mydb --dry-run

  # Force re-apply even if the plan is unchanged
  sequin migrate --db postgres://localhost/mydb --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tablesPath := resolveString(migrateTables, cfg.Tables)
		dryRun := resolveBool(migrateDryRun, cfg.Migrate.DryRun)
		force := resolveBool(migrateForce, cfg.Migrate.Force)

		plan, err := loadPlan(tablesPath, cfg.Dialect)
		if err != nil {
			return err
		}

		dsn, err := resolveDSN(migrateDB)
		if err != nil {
			return err
		}

		return runMigrate(dsn, plan, dryRun, force)
	},
}

func init() {
	f := migrateCmd.Flags()
	f.StringVar(&migrateDB, "db", "", "database URL")
	f.StringVar(&migrateTables, "tables", "", "table definition file")
	f.BoolVar(&migrateDryRun, "dry-run", false, "output migration SQL without applying")
	f.BoolVar(&migrateForce, "force", false, "force migration even if the plan is unchanged")
}

// loadPlan parses the table file and builds the DDL plan for the dialect.
func loadPlan(tablesPath, dialectName string) (*migrator.Plan, error) {
	d, err := cli.DialectByName(dialectName)
	if err != nil {
		return nil, cli.ConfigError("dialect", err)
	}

	tf, err := cli.LoadTables(tablesPath)
	if err != nil {
		return nil, cli.TablesParseError("loading table definitions", err)
	}

	plan, err := cli.BuildPlan(tf, d)
	if err != nil {
		return nil, cli.TablesParseError("building DDL plan", err)
	}
	return plan, nil
}

// resolveDSN gets the database DSN from flag or config.
func resolveDSN(flagDSN string) (string, error) {
	if flagDSN != "" {
		return flagDSN, nil
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return "", cli.ConfigError("database configuration", err)
	}
	if dsn == "" {
		return "", cli.ConfigError("database URL is required (use --db or set in config)", nil)
	}
	return dsn, nil
}

func runMigrate(dsn string, plan *migrator.Plan, dryRun, force bool) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return cli.DBConnectError("connecting to database", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	opts := migrator.Options{
		Force: force,
	}

	if dryRun {
		opts.DryRun = os.Stdout
		if !quiet {
			fmt.Fprintln(os.Stderr, "-- Dry-run mode: SQL will be output but not applied")
			fmt.Fprintln(os.Stderr, "")
		}
	} else if !quiet {
		fmt.Println("Applying triggers and views...")
	}

	skipped, err := migrator.New(db).Apply(ctx, plan, opts)
	if err != nil {
		return cli.GeneralError("migration failed", err)
	}

	if dryRun {
		return nil
	}

	if !quiet {
		if skipped {
			fmt.Println("Plan unchanged, migration skipped.")
			fmt.Println("Use --force to re-apply.")
		} else {
			fmt.Println("Triggers and views applied successfully.")
		}
	}

	return nil
}
