package sequin

// Materialization is the per-CTE materialization hint.
type Materialization int

const (
	// MaterializeDefault leaves the choice to the planner.
	MaterializeDefault Materialization = iota
	// Materialized forces the CTE to be computed once.
	Materialized
	// NotMaterialized asks the planner to inline the CTE.
	NotMaterialized
)

// CTE is a single named sub-query in a WITH prologue.
//
// Recursive marks the CTE recursive explicitly. The With builder also
// infers recursion by inspecting the defining query: when the query is a
// union whose second branch selects from the CTE's own name, the WITH
// renders with the RECURSIVE keyword whether or not the flag was set.
type CTE struct {
	Name            string
	Columns         []string
	Query           Statement
	Materialization Materialization
	Recursive       bool
}

// selfReferential reports whether the CTE's defining query unions against
// the CTE's own name. Only chained union branches are inspected; a CTE
// that merely mentions its name inside a nested subquery must set
// Recursive explicitly.
func (c CTE) selfReferential() bool {
	sel, ok := c.Query.(SelectStatement)
	if !ok {
		return false
	}
	for _, comp := range sel.compounds {
		if comp.op != "UNION" && comp.op != "UNION ALL" {
			continue
		}
		if comp.query.referencesTable(c.Name) {
			return true
		}
	}
	return false
}

// fragment renders `name [(cols)] AS [MATERIALIZED|NOT MATERIALIZED] (query)`.
func (c CTE) fragment() Fragment {
	parts := []Fragment{Ident(c.Name)}
	if len(c.Columns) > 0 {
		parts = append(parts, Literal("("))
		for i, col := range c.Columns {
			if i > 0 {
				parts = append(parts, Literal(", "))
			}
			parts = append(parts, Ident(col))
		}
		parts = append(parts, Literal(")"))
	}
	parts = append(parts, Literal(" AS "))
	switch c.Materialization {
	case Materialized:
		parts = append(parts, Literal("MATERIALIZED "))
	case NotMaterialized:
		parts = append(parts, Literal("NOT MATERIALIZED "))
	}
	parts = append(parts, Literal("(\n"), c.Query.Fragment(), Literal("\n)"))
	return Concat(parts...)
}

// With is a WITH prologue wrapping a terminal query. The CTE list keeps
// its declaration order.
//
// CTEs whose defining query renders empty (an always-false source) are
// dropped from the prologue; if dropping leaves zero CTEs the whole
// statement, terminal query included, renders empty: a query that depends
// on a now-absent CTE would not be valid SQL.
type With struct {
	CTEs  []CTE
	Query Statement
}

// NewWith builds a With around the terminal query.
func NewWith(query Statement, ctes ...CTE) With {
	return With{CTEs: ctes, Query: query}
}

// Add appends a CTE, returning a new value.
func (w With) Add(cte CTE) With {
	w.CTEs = appendClone(w.CTEs, cte)
	return w
}

// Fragment renders the WITH prologue followed by the terminal query.
func (w With) Fragment() Fragment {
	if len(w.CTEs) == 0 {
		if w.Query == nil {
			return Fragment{}
		}
		return w.Query.Fragment()
	}

	recursive := false
	kept := make([]CTE, 0, len(w.CTEs))
	for _, c := range w.CTEs {
		if c.Query == nil || c.Query.Fragment().Empty() {
			continue
		}
		kept = append(kept, c)
		if c.Recursive || c.selfReferential() {
			recursive = true
		}
	}
	if len(kept) == 0 {
		return Fragment{}
	}

	parts := []Fragment{Literal("WITH ")}
	if recursive {
		parts = append(parts, Literal("RECURSIVE "))
	}
	for i, c := range kept {
		if i > 0 {
			parts = append(parts, Literal(",\n"))
		}
		parts = append(parts, c.fragment())
	}
	parts = append(parts, Literal("\n"))
	if w.Query != nil {
		parts = append(parts, w.Query.Fragment())
	}
	return Concat(parts...)
}

// Render renders the statement for the given dialect. Empty output means
// no-op: do not execute.
func (w With) Render(d Dialect) (string, []any) {
	return w.Fragment().Render(d)
}
