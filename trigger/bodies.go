package trigger

import (
	"github.com/pthm/sequin"
)

// Convenience constructors for common trigger bodies. Each is a pure
// function from (target table, column selector, optional expression) to a
// Function/Trigger pair: the same inputs always produce the same DDL, so
// the output is stable across migration runs. The Function half is shared
// by value; attaching it to several tables' triggers emits one function
// definition per distinct name.

// stmt renders a statement's fragment followed by a terminating semicolon
// and newline, for embedding inside a procedural body.
func stmt(s sequin.Statement) sequin.Fragment {
	return sequin.Concat(s.Fragment(), sequin.Literal(";\n"))
}

// assignNew builds `NEW."col" := expr;`.
func assignNew(column string, expr sequin.Expr) sequin.Fragment {
	return sequin.Concat(
		NewRec(column).Fragment(),
		sequin.Literal(" := "),
		expr.Fragment(),
		sequin.Literal(";\n"),
	)
}

// TouchTimestamp builds a BEFORE UPDATE trigger that stamps column with
// expr on every update. A nil expr uses the shared current-timestamp
// source.
func TouchTimestamp(table sequin.Table, column string, expr sequin.Expr) (Function, Trigger) {
	if expr == nil {
		expr = sequin.Now()
	}
	fn := NewFunction(
		"update_"+column+"_"+table.Name,
		sequin.Concat(assignNew(column, expr), sequin.Literal("RETURN NEW;")),
	)
	return fn, New(table, Before, fn).On(OnUpdate())
}

// Audit builds an AFTER INSERT OR UPDATE OR DELETE trigger that copies a
// changed-row snapshot into auditTable as two JSON blobs plus operation
// metadata. The audit table needs columns table_name, operation, old_data,
// new_data and changed_at.
func Audit(table sequin.Table, auditTable sequin.Table) (Function, Trigger) {
	insert := sequin.InsertInto(auditTable,
		auditTable.C("table_name"),
		auditTable.C("operation"),
		auditTable.C("old_data"),
		auditTable.C("new_data"),
		auditTable.C("changed_at"),
	).Values(
		sequin.Raw("TG_TABLE_NAME"),
		sequin.Raw("TG_OP"),
		sequin.Call("row_to_json", sequin.BareIdent("OLD")),
		sequin.Call("row_to_json", sequin.BareIdent("NEW")),
		sequin.Now(),
	)
	fn := NewFunction(
		"audit_"+table.Name,
		sequin.Concat(stmt(insert), sequin.Literal("RETURN COALESCE(NEW, OLD);")),
	)
	return fn, New(table, After, fn).On(OnInsert(), OnUpdate(), OnDelete())
}

// Increment builds a BEFORE UPDATE trigger that bumps an integer column
// by one on every update, starting from zero when the old value is NULL.
func Increment(table sequin.Table, column string) (Function, Trigger) {
	bump := sequin.Add{
		Left:  sequin.Call("COALESCE", OldRec(column), sequin.Int(0)),
		Right: sequin.Int(1),
	}
	fn := NewFunction(
		"increment_"+column+"_"+table.Name,
		sequin.Concat(assignNew(column, bump), sequin.Literal("RETURN NEW;")),
	)
	return fn, New(table, Before, fn).On(OnUpdate())
}

// RaiseIf builds a BEFORE trigger that raises an exception and aborts the
// statement when cond holds. The descriptor names the rule and feeds the
// derived function and trigger names.
func RaiseIf(table sequin.Table, descriptor string, cond sequin.Expr, message string, events ...Event) (Function, Trigger) {
	if len(events) == 0 {
		events = []Event{OnInsert(), OnUpdate()}
	}
	body := sequin.Concat(
		sequin.Literal("IF "),
		cond.Fragment(),
		sequin.Literal(" THEN\n    RAISE EXCEPTION "),
		sequin.Lit(message).Fragment(),
		sequin.Literal(";\nEND IF;\nRETURN NEW;"),
	)
	fn := NewFunction("raise_"+descriptor+"_"+table.Name, body)
	return fn, New(table, Before, fn).On(events...)
}

// SoftDelete builds a BEFORE DELETE trigger that converts the delete into
// an UPDATE stamping deletedColumn, then returns NULL to suppress the
// physical delete. The table must have a registered primary key.
func SoftDelete(table sequin.Table, deletedColumn string) (Function, Trigger) {
	update := sequin.Update(table).
		Set(table.C(deletedColumn), sequin.Now()).
		Where(sequin.Eq{Left: table.C(table.PK).Unqualified(), Right: OldRec(table.PK)})
	fn := NewFunction(
		"soft_delete_"+table.Name,
		sequin.Concat(stmt(update), sequin.Literal("RETURN NULL;")),
	)
	return fn, New(table, Before, fn).On(OnDelete())
}

// OwnershipGuard builds a BEFORE UPDATE OR DELETE trigger that compares
// ownerColumn of the affected row against a caller-supplied context
// expression (a session setting, typically) and raises on mismatch.
func OwnershipGuard(table sequin.Table, ownerColumn string, caller sequin.Expr) (Function, Trigger) {
	body := sequin.Concat(
		sequin.Literal("IF "),
		OldRec(ownerColumn).Fragment(),
		sequin.Literal(" IS DISTINCT FROM "),
		caller.Fragment(),
		sequin.Literal(" THEN\n    RAISE EXCEPTION "),
		sequin.Lit("row owned by another principal").Fragment(),
		sequin.Literal(";\nEND IF;\nRETURN COALESCE(NEW, OLD);"),
	)
	fn := NewFunction("check_owner_"+table.Name, body)
	return fn, New(table, Before, fn).On(OnUpdate(), OnDelete())
}
