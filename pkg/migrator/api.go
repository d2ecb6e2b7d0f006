package migrator

import (
	"context"
)

// Apply applies a plan to the database in one call.
// This is the recommended high-level API for most applications.
//
// The call is idempotent: the rendered plan is hashed and recorded in a
// sequin_migrations table, so re-running with an unchanged plan is a no-op.
// When db supports BeginTx the whole plan applies atomically.
//
// Example usage on application startup:
//
//	plan := migrator.NewPlan(sequin.Postgres)
//	plan.AddTrigger(touchTrigger)
//	plan.AddView(activeUsers)
//	if err := migrator.Apply(ctx, db, plan); err != nil {
//	    log.Fatalf("migration failed: %v", err)
//	}
//
// For dry-run output or forced re-application, use Migrator.Apply with
// Options directly.
func Apply(ctx context.Context, db Execer, plan *Plan) error {
	_, err := New(db).Apply(ctx, plan, Options{})
	return err
}
