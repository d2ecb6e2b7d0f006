package sequin

// UpdateStatement assembles an UPDATE. Builder methods return new values.
// Fixed clause order: UPDATE, SET, FROM, WHERE, RETURNING. A statement
// with no assignments, or whose WHERE received the always-false predicate,
// renders empty.
type UpdateStatement struct {
	table     Table
	sets      []Assignment
	from      []Expr
	where     []Expr
	returning []Expr
	none      bool
}

// Update starts an UPDATE of t.
func Update(t Table) UpdateStatement {
	return UpdateStatement{table: t}
}

// Set appends an assignment. Non-expression values become binds.
func (u UpdateStatement) Set(col Column, value any) UpdateStatement {
	u.sets = appendClone(u.sets, Set(col, value))
	return u
}

// SetAll appends prepared assignments.
func (u UpdateStatement) SetAll(assigns ...Assignment) UpdateStatement {
	u.sets = appendClone(u.sets, assigns...)
	return u
}

// From adds extra tables made visible to the WHERE clause (PostgreSQL
// UPDATE ... FROM).
func (u UpdateStatement) From(tables ...Expr) UpdateStatement {
	u.from = appendClone(u.from, tables...)
	return u
}

// Where AND-appends a predicate; None short-circuits to an empty render.
func (u UpdateStatement) Where(cond Expr) UpdateStatement {
	if IsNone(cond) {
		u.none = true
		return u
	}
	u.where = appendClone(u.where, cond)
	return u
}

// Returning appends RETURNING expressions; with no arguments it returns
// the target table's full column list, resolved at call time.
func (u UpdateStatement) Returning(exprs ...Expr) UpdateStatement {
	if len(exprs) == 0 {
		for _, c := range u.table.Columns() {
			exprs = append(exprs, c.Unqualified())
		}
	}
	u.returning = appendClone(u.returning, exprs...)
	return u
}

// Fragment assembles the statement's clauses in fixed order.
func (u UpdateStatement) Fragment() Fragment {
	if u.none || len(u.sets) == 0 {
		return Fragment{}
	}

	clauses := []Fragment{
		Concat(Literal("UPDATE "), u.table.Fragment()),
		Concat(Literal("SET "), assignmentList(u.sets)),
	}
	if len(u.from) > 0 {
		clauses = append(clauses, Concat(Literal("FROM "), exprList(", ", u.from)))
	}
	if len(u.where) > 0 {
		clauses = append(clauses, Concat(Literal("WHERE "), exprList(" AND ", u.where)))
	}
	clauses = append(clauses, returningFragment(u.returning))

	return Join("\n", clauses...)
}

// Render renders the statement for the given dialect. Empty output means
// no-op: do not execute.
func (u UpdateStatement) Render(d Dialect) (string, []any) {
	return u.Fragment().Render(d)
}
