package sequin

// appendClone appends values onto a copy of s, so builder methods on value
// receivers never alias a shared backing array.
func appendClone[T any](s []T, vals ...T) []T {
	out := make([]T, len(s), len(s)+len(vals))
	copy(out, s)
	return append(out, vals...)
}

// NullsOrder controls NULLS FIRST/LAST placement in ORDER BY.
type NullsOrder int

const (
	NullsDefault NullsOrder = iota
	NullsFirst
	NullsLast
)

// OrderExpr is one ORDER BY term: an expression plus direction and nulls
// placement.
type OrderExpr struct {
	Expr  Expr
	Desc  bool
	Nulls NullsOrder
}

// Asc orders by e ascending.
func Asc(e Expr) OrderExpr { return OrderExpr{Expr: e} }

// Desc orders by e descending.
func Desc(e Expr) OrderExpr { return OrderExpr{Expr: e, Desc: true} }

// WithNulls sets the nulls placement.
func (o OrderExpr) WithNulls(n NullsOrder) OrderExpr {
	o.Nulls = n
	return o
}

// Fragment renders the ORDER BY term.
func (o OrderExpr) Fragment() Fragment {
	parts := []Fragment{o.Expr.Fragment()}
	if o.Desc {
		parts = append(parts, Literal(" DESC"))
	}
	switch o.Nulls {
	case NullsFirst:
		parts = append(parts, Literal(" NULLS FIRST"))
	case NullsLast:
		parts = append(parts, Literal(" NULLS LAST"))
	}
	return Concat(parts...)
}

// Subquery is a statement used in table position: (query) AS alias.
type Subquery struct {
	Query Statement
	Alias string
}

// Fragment renders the parenthesized subquery with its alias.
func (s Subquery) Fragment() Fragment {
	f := Concat(Literal("("), s.Query.Fragment(), Literal(")"))
	if s.Alias != "" {
		f = Concat(f, Literal(" AS "), Ident(s.Alias))
	}
	return f
}

// joinClause is one JOIN attached to a SELECT.
type joinClause struct {
	kind  string // "INNER", "LEFT", "RIGHT", "FULL", "CROSS"
	table Expr
	on    Expr // nil for CROSS JOIN
}

func (j joinClause) fragment() Fragment {
	parts := []Fragment{Literal(j.kind + " JOIN "), j.table.Fragment()}
	if j.on != nil {
		parts = append(parts, Literal(" ON "), j.on.Fragment())
	}
	return Concat(parts...)
}

// namedWindow is one entry of the statement-level WINDOW clause.
type namedWindow struct {
	name string
	def  WindowDef
}

// compound is one set operation chained after the base query.
type compound struct {
	op    string // "UNION", "UNION ALL", "INTERSECT", "EXCEPT"
	query SelectStatement
}

// SelectStatement assembles a SELECT. Each builder method returns a new
// value; a statement held by one caller is never mutated by another. The
// clause rendering order is fixed regardless of call order:
//
//	SELECT [DISTINCT [ON (...)]] columns
//	FROM ... [JOIN ...]
//	[WHERE] [GROUP BY] [HAVING] [WINDOW] [ORDER BY] [LIMIT [OFFSET]]
//
// Repeated Where calls AND-append; Limit overwrites (last call wins);
// Distinct is idempotent.
type SelectStatement struct {
	distinct   bool
	distinctOn []Expr
	columns    []Expr
	from       []Expr
	joins      []joinClause
	where      []Expr
	groupBy    []Expr
	having     []Expr
	windows    []namedWindow
	orderBy    []OrderExpr
	limit      Expr
	offset     Expr
	compounds  []compound
	none       bool
}

// Select starts a SELECT statement over the given output expressions.
// With no columns it renders SELECT *.
func Select(columns ...Expr) SelectStatement {
	return SelectStatement{columns: columns}
}

// SelectFrom is shorthand for selecting every registered column of t.
func SelectFrom(t Table) SelectStatement {
	cols := make([]Expr, 0, len(t.Cols))
	for _, c := range t.Columns() {
		cols = append(cols, c)
	}
	return Select(cols...).From(t)
}

// Distinct marks the statement DISTINCT. Setting it again is a no-op.
func (s SelectStatement) Distinct() SelectStatement {
	s.distinct = true
	return s
}

// DistinctOn marks the statement DISTINCT ON (exprs...). Implies DISTINCT.
func (s SelectStatement) DistinctOn(exprs ...Expr) SelectStatement {
	s.distinct = true
	s.distinctOn = appendClone(s.distinctOn, exprs...)
	return s
}

// From adds table expressions to the FROM clause.
func (s SelectStatement) From(tables ...Expr) SelectStatement {
	s.from = appendClone(s.from, tables...)
	return s
}

// Join adds an INNER JOIN.
func (s SelectStatement) Join(table Expr, on Expr) SelectStatement {
	s.joins = appendClone(s.joins, joinClause{kind: "INNER", table: table, on: on})
	return s
}

// LeftJoin adds a LEFT JOIN.
func (s SelectStatement) LeftJoin(table Expr, on Expr) SelectStatement {
	s.joins = appendClone(s.joins, joinClause{kind: "LEFT", table: table, on: on})
	return s
}

// RightJoin adds a RIGHT JOIN.
func (s SelectStatement) RightJoin(table Expr, on Expr) SelectStatement {
	s.joins = appendClone(s.joins, joinClause{kind: "RIGHT", table: table, on: on})
	return s
}

// FullJoin adds a FULL OUTER JOIN.
func (s SelectStatement) FullJoin(table Expr, on Expr) SelectStatement {
	s.joins = appendClone(s.joins, joinClause{kind: "FULL OUTER", table: table, on: on})
	return s
}

// CrossJoin adds a CROSS JOIN; it carries no ON condition.
func (s SelectStatement) CrossJoin(table Expr) SelectStatement {
	s.joins = appendClone(s.joins, joinClause{kind: "CROSS", table: table})
	return s
}

// Where AND-appends a predicate. The always-false predicate None
// short-circuits the whole statement: it renders empty from then on.
func (s SelectStatement) Where(cond Expr) SelectStatement {
	if IsNone(cond) {
		s.none = true
		return s
	}
	s.where = appendClone(s.where, cond)
	return s
}

// GroupBy appends grouping expressions.
func (s SelectStatement) GroupBy(exprs ...Expr) SelectStatement {
	s.groupBy = appendClone(s.groupBy, exprs...)
	return s
}

// Having AND-appends a HAVING predicate.
func (s SelectStatement) Having(cond Expr) SelectStatement {
	s.having = appendClone(s.having, cond)
	return s
}

// Window declares a named window, rendered in the statement-level WINDOW
// clause between HAVING and ORDER BY.
func (s SelectStatement) Window(name string, def WindowDef) SelectStatement {
	s.windows = appendClone(s.windows, namedWindow{name: name, def: def})
	return s
}

// OrderBy appends ORDER BY terms.
func (s SelectStatement) OrderBy(terms ...OrderExpr) SelectStatement {
	s.orderBy = appendClone(s.orderBy, terms...)
	return s
}

// Limit sets the LIMIT as a bind value. Unlike Where, repeated calls
// replace the previous value: last call wins.
func (s SelectStatement) Limit(n int) SelectStatement {
	s.limit = Value{V: n}
	return s
}

// Offset sets the OFFSET as a bind value; last call wins.
func (s SelectStatement) Offset(n int) SelectStatement {
	s.offset = Value{V: n}
	return s
}

// Union chains UNION other after the statement.
func (s SelectStatement) Union(other SelectStatement) SelectStatement {
	s.compounds = appendClone(s.compounds, compound{op: "UNION", query: other})
	return s
}

// UnionAll chains UNION ALL other.
func (s SelectStatement) UnionAll(other SelectStatement) SelectStatement {
	s.compounds = appendClone(s.compounds, compound{op: "UNION ALL", query: other})
	return s
}

// Intersect chains INTERSECT other.
func (s SelectStatement) Intersect(other SelectStatement) SelectStatement {
	s.compounds = appendClone(s.compounds, compound{op: "INTERSECT", query: other})
	return s
}

// Except chains EXCEPT other.
func (s SelectStatement) Except(other SelectStatement) SelectStatement {
	s.compounds = appendClone(s.compounds, compound{op: "EXCEPT", query: other})
	return s
}

// Fragment assembles the statement's clauses in fixed order.
func (s SelectStatement) Fragment() Fragment {
	if s.none {
		return Fragment{}
	}

	head := []Fragment{Literal("SELECT ")}
	if s.distinct {
		if len(s.distinctOn) > 0 {
			head = append(head, Literal("DISTINCT ON ("), exprList(", ", s.distinctOn), Literal(") "))
		} else {
			head = append(head, Literal("DISTINCT "))
		}
	}
	if len(s.columns) == 0 {
		head = append(head, Literal("*"))
	} else {
		head = append(head, exprList(", ", s.columns))
	}

	clauses := []Fragment{Concat(head...)}

	if len(s.from) > 0 {
		clauses = append(clauses, Concat(Literal("FROM "), exprList(", ", s.from)))
	}
	for _, j := range s.joins {
		clauses = append(clauses, j.fragment())
	}
	if len(s.where) > 0 {
		clauses = append(clauses, Concat(Literal("WHERE "), exprList(" AND ", s.where)))
	}
	if len(s.groupBy) > 0 {
		clauses = append(clauses, Concat(Literal("GROUP BY "), exprList(", ", s.groupBy)))
	}
	if len(s.having) > 0 {
		clauses = append(clauses, Concat(Literal("HAVING "), exprList(" AND ", s.having)))
	}
	if len(s.windows) > 0 {
		parts := []Fragment{Literal("WINDOW ")}
		for i, w := range s.windows {
			if i > 0 {
				parts = append(parts, Literal(", "))
			}
			parts = append(parts, Ident(w.name), Literal(" AS ("), w.def.Fragment(), Literal(")"))
		}
		clauses = append(clauses, Concat(parts...))
	}
	if len(s.orderBy) > 0 {
		parts := []Fragment{Literal("ORDER BY ")}
		for i, o := range s.orderBy {
			if i > 0 {
				parts = append(parts, Literal(", "))
			}
			parts = append(parts, o.Fragment())
		}
		clauses = append(clauses, Concat(parts...))
	}
	if s.limit != nil {
		limit := Concat(Literal("LIMIT "), s.limit.Fragment())
		if s.offset != nil {
			limit = Concat(limit, Literal(" OFFSET "), s.offset.Fragment())
		}
		clauses = append(clauses, limit)
	} else if s.offset != nil {
		clauses = append(clauses, Concat(Literal("OFFSET "), s.offset.Fragment()))
	}

	out := Join("\n", clauses...)
	for _, c := range s.compounds {
		out = Concat(out, Literal("\n"+c.op+"\n"), c.query.Fragment())
	}
	return out
}

// Render renders the statement for the given dialect. Empty output means
// the statement is a no-op and must not be executed.
func (s SelectStatement) Render(d Dialect) (string, []any) {
	return s.Fragment().Render(d)
}

// referencesTable reports whether the statement's FROM clause or joins
// reference the named table, directly or through the branches of a chained
// set operation. The CTE builder uses this on union branches to infer
// RECURSIVE.
func (s SelectStatement) referencesTable(name string) bool {
	for _, f := range s.from {
		if tableRefName(f) == name {
			return true
		}
	}
	for _, j := range s.joins {
		if tableRefName(j.table) == name {
			return true
		}
	}
	for _, c := range s.compounds {
		if c.query.referencesTable(name) {
			return true
		}
	}
	return false
}

// tableRefName extracts the underlying table name from a FROM-position
// expression, or "" when it is not a plain table reference.
func tableRefName(e Expr) string {
	if t, ok := e.(Table); ok {
		return t.Name
	}
	return ""
}
