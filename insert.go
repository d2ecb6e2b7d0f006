package sequin

// Assignment is one SET pair: column = value. Shared by UPDATE and by
// INSERT's DO UPDATE arm. The column renders unqualified, as SQL requires
// in SET position.
type Assignment struct {
	Column Column
	Value  Expr
}

// Set builds an assignment, wrapping non-expression values as binds.
func Set(col Column, value any) Assignment {
	return Assignment{Column: col, Value: toExpr(value)}
}

func assignmentList(assigns []Assignment) Fragment {
	parts := make([]Fragment, 0, 4*len(assigns))
	for i, a := range assigns {
		if i > 0 {
			parts = append(parts, Literal(", "))
		}
		parts = append(parts, a.Column.Unqualified().Fragment(), Literal(" = "), a.Value.Fragment())
	}
	return Concat(parts...)
}

// returningFragment renders a RETURNING clause. A set flag with no
// expressions means "returning self": the caller resolved the full table
// column list at call time and passed it here.
func returningFragment(cols []Expr) Fragment {
	if len(cols) == 0 {
		return Fragment{}
	}
	return Concat(Literal("RETURNING "), exprList(", ", cols))
}

// conflictClause holds the four-part ON CONFLICT grammar: target column
// list (or none), target filter, DO NOTHING or DO UPDATE SET, and the
// update filter. Parts render in that fixed order; absent parts are
// omitted.
type conflictClause struct {
	target      []Column
	targetWhere []Expr
	doNothing   bool
	updates     []Assignment
	updateWhere []Expr
}

func (c conflictClause) fragment() Fragment {
	parts := []Fragment{Literal("ON CONFLICT")}
	if len(c.target) > 0 {
		parts = append(parts, Literal(" ("))
		for i, col := range c.target {
			if i > 0 {
				parts = append(parts, Literal(", "))
			}
			parts = append(parts, col.Unqualified().Fragment())
		}
		parts = append(parts, Literal(")"))
	}
	if len(c.targetWhere) > 0 {
		parts = append(parts, Literal(" WHERE "), exprList(" AND ", c.targetWhere))
	}
	switch {
	case c.doNothing:
		parts = append(parts, Literal("\nDO NOTHING"))
	case len(c.updates) > 0:
		parts = append(parts, Literal("\nDO UPDATE SET "), assignmentList(c.updates))
		if len(c.updateWhere) > 0 {
			parts = append(parts, Literal("\nWHERE "), exprList(" AND ", c.updateWhere))
		}
	default:
		// Conflict target declared but no action: treat as DO NOTHING
		// rather than emit a syntactically invalid clause.
		parts = append(parts, Literal("\nDO NOTHING"))
	}
	return Concat(parts...)
}

// InsertStatement assembles an INSERT. Builder methods return new values.
// An insert built from zero rows (and no SELECT source) renders empty:
// `INSERT ... VALUES` with no rows is not valid SQL, so the whole
// statement becomes a no-op the caller must not execute.
type InsertStatement struct {
	table     Table
	columns   []Column
	rows      [][]Expr
	source    *SelectStatement
	conflict  *conflictClause
	returning []Expr
}

// InsertInto starts an INSERT into t over the given columns.
func InsertInto(t Table, columns ...Column) InsertStatement {
	return InsertStatement{table: t, columns: columns}
}

// Values appends one VALUES row. Non-expression values become binds.
func (i InsertStatement) Values(values ...any) InsertStatement {
	row := make([]Expr, len(values))
	for n, v := range values {
		row[n] = toExpr(v)
	}
	i.rows = appendClone(i.rows, row)
	return i
}

// Rows appends rows built by Table.Row. The first row's column set becomes
// the statement's column list when none was declared.
func (i InsertStatement) Rows(rows ...Row) InsertStatement {
	out := i
	for _, r := range rows {
		if len(out.columns) == 0 {
			out.columns = r.Columns
		}
		out.rows = appendClone(out.rows, r.Values)
	}
	return out
}

// FromSelect uses a SELECT as the row source instead of VALUES.
func (i InsertStatement) FromSelect(s SelectStatement) InsertStatement {
	i.source = &s
	return i
}

// OnConflict declares the conflict target columns. Call with no columns
// for a bare ON CONFLICT matching any constraint.
func (i InsertStatement) OnConflict(target ...Column) InsertStatement {
	i.conflict = cloneConflict(i.conflict)
	i.conflict.target = target
	return i
}

// OnConflictWhere filters the conflict target (partial-index targets).
func (i InsertStatement) OnConflictWhere(cond Expr) InsertStatement {
	i.conflict = cloneConflict(i.conflict)
	i.conflict.targetWhere = appendClone(i.conflict.targetWhere, cond)
	return i
}

// DoNothing resolves conflicts by skipping the conflicting rows.
func (i InsertStatement) DoNothing() InsertStatement {
	i.conflict = cloneConflict(i.conflict)
	i.conflict.doNothing = true
	i.conflict.updates = nil
	return i
}

// DoUpdateSet resolves conflicts by updating the existing row.
func (i InsertStatement) DoUpdateSet(assigns ...Assignment) InsertStatement {
	i.conflict = cloneConflict(i.conflict)
	i.conflict.doNothing = false
	i.conflict.updates = appendClone(i.conflict.updates, assigns...)
	return i
}

// DoUpdateWhere filters the DO UPDATE arm.
func (i InsertStatement) DoUpdateWhere(cond Expr) InsertStatement {
	i.conflict = cloneConflict(i.conflict)
	i.conflict.updateWhere = appendClone(i.conflict.updateWhere, cond)
	return i
}

// Returning appends RETURNING expressions. With no arguments it returns
// the full column list of the target table, resolved now (at call time),
// not at render time: columns registered later are not picked up.
func (i InsertStatement) Returning(exprs ...Expr) InsertStatement {
	if len(exprs) == 0 {
		for _, c := range i.table.Columns() {
			exprs = append(exprs, c.Unqualified())
		}
	}
	i.returning = appendClone(i.returning, exprs...)
	return i
}

func cloneConflict(c *conflictClause) *conflictClause {
	if c == nil {
		return &conflictClause{}
	}
	cp := *c
	return &cp
}

// Fragment assembles the statement. The clause order is fixed: INSERT INTO,
// column list, VALUES or SELECT source, ON CONFLICT, RETURNING.
func (i InsertStatement) Fragment() Fragment {
	if len(i.rows) == 0 && i.source == nil {
		return Fragment{}
	}

	head := []Fragment{Literal("INSERT INTO "), i.table.Fragment()}
	if len(i.columns) > 0 {
		head = append(head, Literal(" ("))
		for n, c := range i.columns {
			if n > 0 {
				head = append(head, Literal(", "))
			}
			head = append(head, c.Unqualified().Fragment())
		}
		head = append(head, Literal(")"))
	}

	clauses := []Fragment{Concat(head...)}

	if i.source != nil {
		src := i.source.Fragment()
		if src.Empty() {
			return Fragment{}
		}
		clauses = append(clauses, src)
	} else {
		parts := []Fragment{Literal("VALUES ")}
		for n, row := range i.rows {
			if n > 0 {
				parts = append(parts, Literal(", "))
			}
			parts = append(parts, Literal("("), exprList(", ", row), Literal(")"))
		}
		clauses = append(clauses, Concat(parts...))
	}

	if i.conflict != nil {
		clauses = append(clauses, i.conflict.fragment())
	}
	clauses = append(clauses, returningFragment(i.returning))

	return Join("\n", clauses...)
}

// Render renders the statement for the given dialect.
func (i InsertStatement) Render(d Dialect) (string, []any) {
	return i.Fragment().Render(d)
}
