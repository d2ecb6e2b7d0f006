package sequin

// DeleteStatement assembles a DELETE. Builder methods return new values.
// Fixed clause order: DELETE FROM, USING, WHERE, RETURNING. A WHERE fed
// the always-false predicate short-circuits the whole statement to an
// empty render.
type DeleteStatement struct {
	table     Table
	using     []Expr
	where     []Expr
	returning []Expr
	none      bool
}

// DeleteFrom starts a DELETE from t.
func DeleteFrom(t Table) DeleteStatement {
	return DeleteStatement{table: t}
}

// Using adds tables made visible to the WHERE clause (PostgreSQL
// DELETE ... USING).
func (del DeleteStatement) Using(tables ...Expr) DeleteStatement {
	del.using = appendClone(del.using, tables...)
	return del
}

// Where AND-appends a predicate; None short-circuits to an empty render.
func (del DeleteStatement) Where(cond Expr) DeleteStatement {
	if IsNone(cond) {
		del.none = true
		return del
	}
	del.where = appendClone(del.where, cond)
	return del
}

// Returning appends RETURNING expressions; with no arguments it returns
// the target table's full column list, resolved at call time.
func (del DeleteStatement) Returning(exprs ...Expr) DeleteStatement {
	if len(exprs) == 0 {
		for _, c := range del.table.Columns() {
			exprs = append(exprs, c.Unqualified())
		}
	}
	del.returning = appendClone(del.returning, exprs...)
	return del
}

// Fragment assembles the statement's clauses in fixed order.
func (del DeleteStatement) Fragment() Fragment {
	if del.none {
		return Fragment{}
	}

	clauses := []Fragment{Concat(Literal("DELETE FROM "), del.table.Fragment())}
	if len(del.using) > 0 {
		clauses = append(clauses, Concat(Literal("USING "), exprList(", ", del.using)))
	}
	if len(del.where) > 0 {
		clauses = append(clauses, Concat(Literal("WHERE "), exprList(" AND ", del.where)))
	}
	clauses = append(clauses, returningFragment(del.returning))

	return Join("\n", clauses...)
}

// Render renders the statement for the given dialect. Empty output means
// no-op: do not execute.
func (del DeleteStatement) Render(d Dialect) (string, []any) {
	return del.Fragment().Render(d)
}
