// Package trigger builds PostgreSQL trigger DDL: reusable PL/pgSQL trigger
// functions and the trigger bindings that reference them.
//
// The model is two-tier. A Function is a named, reusable procedural body;
// a Trigger binds timing, an event set, a level and an optional WHEN
// condition to one Function. Many triggers may hold the same Function by
// value; emitting the function DDL once per distinct name is the caller's
// (or the migrator's) concern.
package trigger

import (
	"strings"

	"github.com/pthm/sequin"
)

// Function is a reusable trigger function definition. The body is a
// fragment so it can be assembled from the same expression types as
// statements; any bind values are inlined at render time, since CREATE
// FUNCTION cannot carry placeholders.
type Function struct {
	Name      string
	Body      sequin.Fragment
	OrReplace bool

	// Language defaults to plpgsql.
	Language string
}

// NewFunction builds a trigger function with OR REPLACE set, the common
// case for migration-managed functions.
func NewFunction(name string, body sequin.Fragment) Function {
	return Function{Name: name, Body: body, OrReplace: true}
}

// SQL renders the CREATE FUNCTION statement. Bodies not already wrapped in
// BEGIN/END are wrapped here.
func (f Function) SQL(d sequin.Dialect) string {
	lang := f.Language
	if lang == "" {
		lang = "plpgsql"
	}

	var sb strings.Builder
	sb.WriteString("CREATE ")
	if f.OrReplace {
		sb.WriteString("OR REPLACE ")
	}
	sb.WriteString("FUNCTION ")
	sb.WriteString(d.QuoteIdent(f.Name))
	sb.WriteString("() RETURNS TRIGGER AS $$\n")

	body := strings.TrimSpace(f.Body.RenderInline(d))
	if !strings.HasPrefix(body, "BEGIN") {
		sb.WriteString("BEGIN\n")
		for _, line := range strings.Split(body, "\n") {
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("END;")
	} else {
		sb.WriteString(body)
	}

	sb.WriteString("\n$$ LANGUAGE ")
	sb.WriteString(lang)
	sb.WriteString(";")
	return sb.String()
}

// NewRec references a column of the NEW pseudo-record. Pseudo-records are
// keywords to PostgreSQL's trigger parser, so the record name renders
// unquoted while the column still quotes normally.
func NewRec(column string) sequin.Expr {
	return sequin.Concat(sequin.BareIdent("NEW"), sequin.Literal("."), sequin.Ident(column))
}

// OldRec references a column of the OLD pseudo-record.
func OldRec(column string) sequin.Expr {
	return sequin.Concat(sequin.BareIdent("OLD"), sequin.Literal("."), sequin.Ident(column))
}
