package trigger

import (
	"strings"

	"github.com/pthm/sequin"
)

// DropTrigger renders DROP TRIGGER [IF EXISTS] name ON table [CASCADE].
type DropTrigger struct {
	Name     string
	Table    sequin.Table
	IfExists bool
	Cascade  bool
}

// SQL renders the DDL statement for the given dialect.
func (dt DropTrigger) SQL(d sequin.Dialect) string {
	var sb strings.Builder
	sb.WriteString("DROP TRIGGER ")
	if dt.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	sb.WriteString(d.QuoteIdent(dt.Name))
	sb.WriteString(" ON ")
	sb.WriteString(dt.Table.Fragment().RenderInline(d))
	if dt.Cascade {
		sb.WriteString(" CASCADE")
	}
	return sb.String()
}

// Drop returns the DROP statement paired with this trigger.
func (t Trigger) Drop(ifExists bool) DropTrigger {
	return DropTrigger{Name: t.Name(), Table: t.table, IfExists: ifExists}
}

// DropFunction renders DROP FUNCTION [IF EXISTS] name() [CASCADE].
type DropFunction struct {
	Name     string
	IfExists bool
	Cascade  bool
}

// SQL renders the DDL statement for the given dialect.
func (df DropFunction) SQL(d sequin.Dialect) string {
	var sb strings.Builder
	sb.WriteString("DROP FUNCTION ")
	if df.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	sb.WriteString(d.QuoteIdent(df.Name))
	sb.WriteString("()")
	if df.Cascade {
		sb.WriteString(" CASCADE")
	}
	return sb.String()
}

// Drop returns the DROP statement paired with this function.
func (f Function) Drop(ifExists bool) DropFunction {
	return DropFunction{Name: f.Name, IfExists: ifExists}
}
