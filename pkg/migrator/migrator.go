// Package migrator applies sequin-generated DDL (trigger functions,
// triggers, views) to a PostgreSQL database, idempotently.
//
// The migrator hashes the rendered plan and records it in a
// sequin_migrations table; re-running with an unchanged plan is a no-op
// unless forced. Use DryRun to preview the SQL without touching the
// database.
package migrator

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/lib/pq"

	"github.com/pthm/sequin"
	"github.com/pthm/sequin/trigger"
)

// Plan is an ordered list of DDL statements assembled for one apply pass.
// Functions deduplicate by name at build time: a Function shared by many
// triggers is emitted once, before the first trigger that references it.
type Plan struct {
	dialect sequin.Dialect
	stmts   []string
	objects []string
	seenFns map[string]bool
}

// NewPlan starts an empty plan rendered for the given dialect.
func NewPlan(d sequin.Dialect) *Plan {
	return &Plan{dialect: d, seenFns: make(map[string]bool)}
}

// AddFunction appends the function's CREATE statement unless a function of
// the same name is already planned.
func (p *Plan) AddFunction(fn trigger.Function) *Plan {
	if p.seenFns[fn.Name] {
		return p
	}
	p.seenFns[fn.Name] = true
	p.stmts = append(p.stmts, fn.SQL(p.dialect))
	p.objects = append(p.objects, fn.Name)
	return p
}

// AddTrigger appends the trigger's function (deduplicated) followed by a
// drop-if-exists and the CREATE TRIGGER statement. PostgreSQL has no
// CREATE OR REPLACE TRIGGER before v14, so replace is modeled as
// drop-then-create.
func (p *Plan) AddTrigger(t trigger.Trigger) *Plan {
	p.AddFunction(t.Function())
	p.stmts = append(p.stmts, t.Drop(true).SQL(p.dialect))
	p.stmts = append(p.stmts, t.SQL(p.dialect))
	p.objects = append(p.objects, t.Name())
	return p
}

// AddView appends the view's CREATE statement.
func (p *Plan) AddView(v sequin.CreateView) *Plan {
	p.stmts = append(p.stmts, v.SQL(p.dialect))
	p.objects = append(p.objects, v.Name)
	return p
}

// AddRaw appends a pre-rendered statement.
func (p *Plan) AddRaw(stmt string) *Plan {
	p.stmts = append(p.stmts, stmt)
	return p
}

// Statements returns the planned DDL in application order.
func (p *Plan) Statements() []string {
	out := make([]string, len(p.stmts))
	copy(out, p.stmts)
	return out
}

// Checksum returns the SHA256 of the rendered plan, used for the
// skip-if-unchanged optimization.
func (p *Plan) Checksum() string {
	h := sha256.Sum256([]byte(strings.Join(p.stmts, "\n")))
	return hex.EncodeToString(h[:])
}

// Options controls apply behavior.
type Options struct {
	// DryRun writes the SQL to the provided writer without applying it.
	DryRun io.Writer

	// Force re-applies even when the recorded checksum matches.
	Force bool
}

// Record is a row of the sequin_migrations table.
type Record struct {
	Checksum string
	Objects  []string
}

// Migrator applies plans to a database.
type Migrator struct {
	db Execer
}

// New creates a migrator over db.
func New(db Execer) *Migrator {
	return &Migrator{db: db}
}

// Apply runs the plan. It returns true when the plan was skipped because
// the recorded checksum matched and Force was not set.
//
// When the underlying Execer supports transactions the whole plan applies
// atomically.
func (m *Migrator) Apply(ctx context.Context, plan *Plan, opts Options) (skipped bool, err error) {
	if opts.DryRun != nil {
		for _, stmt := range plan.Statements() {
			if _, err := fmt.Fprintf(opts.DryRun, "%s\n\n", stmt); err != nil {
				return false, fmt.Errorf("writing dry-run output: %w", err)
			}
		}
		return false, nil
	}

	checksum := plan.Checksum()
	if !opts.Force {
		last, err := m.lastRecord(ctx)
		if err != nil {
			return false, err
		}
		if last != nil && last.Checksum == checksum {
			return true, nil
		}
	}

	if txer, ok := m.db.(interface {
		BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	}); ok {
		tx, err := txer.BeginTx(ctx, nil)
		if err != nil {
			return false, fmt.Errorf("starting transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if err := applyPlan(ctx, tx, plan); err != nil {
			return false, err
		}
		if err := recordMigration(ctx, tx, checksum, plan.objects); err != nil {
			return false, err
		}
		return false, tx.Commit()
	}

	if err := applyPlan(ctx, m.db, plan); err != nil {
		return false, err
	}
	return false, recordMigration(ctx, m.db, checksum, plan.objects)
}

// LastRecord returns the most recent migration record, or nil when no
// migration has run yet.
func (m *Migrator) LastRecord(ctx context.Context) (*Record, error) {
	return m.lastRecord(ctx)
}

func applyPlan(ctx context.Context, db Execer, plan *Plan) error {
	for i, stmt := range plan.Statements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying statement %d: %w", i, err)
		}
	}
	return nil
}

func recordMigration(ctx context.Context, db Execer, checksum string, objects []string) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sequin_migrations (
			id SERIAL PRIMARY KEY,
			checksum TEXT NOT NULL,
			objects TEXT[] NOT NULL DEFAULT '{}',
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`); err != nil {
		return fmt.Errorf("creating sequin_migrations table: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		INSERT INTO sequin_migrations (checksum, objects) VALUES ($1, $2)
	`, checksum, pq.Array(objects)); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}
	return nil
}

func (m *Migrator) lastRecord(ctx context.Context) (*Record, error) {
	var tableExists bool
	err := m.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pg_class c
			JOIN pg_namespace n ON n.oid = c.relnamespace
			WHERE c.relname = 'sequin_migrations'
			AND n.nspname = current_schema()
		)
	`).Scan(&tableExists)
	if err != nil {
		return nil, fmt.Errorf("checking sequin_migrations table: %w", err)
	}
	if !tableExists {
		return nil, nil
	}

	var rec Record
	err = m.db.QueryRowContext(ctx, `
		SELECT checksum, objects
		FROM sequin_migrations
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&rec.Checksum, pq.Array(&rec.Objects))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last migration: %w", err)
	}
	return &rec, nil
}
