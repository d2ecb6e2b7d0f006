// Package sequin is a typed SQL statement builder. Application code
// describes tables, columns, predicates, joins and statements as ordinary
// Go values; sequin renders them into dialect-correct SQL text paired with
// an ordered list of bind values.
//
// # Fragments
//
// Everything rendered passes through a Fragment: an immutable run of
// literal SQL text, identifiers and bind values. Fragments concatenate
// associatively and renumber their placeholders only at render time:
//
//	f := sequin.Concat(sequin.Literal("price > "), sequin.Bind(10))
//	text, args := f.Render(sequin.Postgres) // "price > $1", [10]
//
// # Schema registration
//
// Tables are registered once, producing descriptor values that callers
// hold directly. There is no reflection and no code generation:
//
//	reminders := sequin.NewTable("reminders").
//		Column("id", sequin.TypeInt, sequin.NotNull()).
//		Column("title", sequin.TypeText, sequin.NotNull()).
//		Column("isCompleted", sequin.TypeBool).
//		PrimaryKey("id").
//		Build()
//
// # Statements
//
// Statement builders are immutable: every method returns a new value, so
// concurrent construction of independent statements needs no locking.
// Clause order in the output is fixed regardless of call order; repeated
// Where calls AND-append, while Limit overwrites (last call wins).
//
//	q := sequin.Select(reminders.C("id"), reminders.C("title")).
//		From(reminders).
//		Where(sequin.Eq{reminders.C("isCompleted"), sequin.Bool(false)}).
//		OrderBy(sequin.Asc(reminders.C("title"))).
//		Limit(10)
//	text, args := q.Render(sequin.Postgres)
//
// A statement that is structurally impossible (an INSERT with zero rows,
// a WHERE fed the always-false predicate None) renders to empty text with
// no bind values. Callers must treat an empty rendered statement as a
// no-op and not execute it.
//
// # DDL
//
// Views render through CreateView/DropView; trigger functions and trigger
// bindings live in the trigger subpackage. DDL text inlines literals
// because CREATE statements cannot carry placeholders.
package sequin
