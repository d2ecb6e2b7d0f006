package sequin

// Comparison operators

// Eq renders left = right.
type Eq struct {
	Left  Expr
	Right Expr
}

func (e Eq) Fragment() Fragment { return infix(e.Left, " = ", e.Right) }

// Ne renders left <> right.
type Ne struct {
	Left  Expr
	Right Expr
}

func (n Ne) Fragment() Fragment { return infix(n.Left, " <> ", n.Right) }

// Lt renders left < right.
type Lt struct {
	Left  Expr
	Right Expr
}

func (l Lt) Fragment() Fragment { return infix(l.Left, " < ", l.Right) }

// Gt renders left > right.
type Gt struct {
	Left  Expr
	Right Expr
}

func (g Gt) Fragment() Fragment { return infix(g.Left, " > ", g.Right) }

// Lte renders left <= right.
type Lte struct {
	Left  Expr
	Right Expr
}

func (l Lte) Fragment() Fragment { return infix(l.Left, " <= ", l.Right) }

// Gte renders left >= right.
type Gte struct {
	Left  Expr
	Right Expr
}

func (g Gte) Fragment() Fragment { return infix(g.Left, " >= ", g.Right) }

// Like renders left LIKE right.
type Like struct {
	Left  Expr
	Right Expr
}

func (l Like) Fragment() Fragment { return infix(l.Left, " LIKE ", l.Right) }

// Arithmetic and string operators

// Add renders left + right.
type Add struct {
	Left  Expr
	Right Expr
}

func (a Add) Fragment() Fragment { return infix(a.Left, " + ", a.Right) }

// Sub renders left - right.
type Sub struct {
	Left  Expr
	Right Expr
}

func (s Sub) Fragment() Fragment { return infix(s.Left, " - ", s.Right) }

// Mul renders left * right.
type Mul struct {
	Left  Expr
	Right Expr
}

func (m Mul) Fragment() Fragment { return infix(m.Left, " * ", m.Right) }

// Div renders left / right.
type Div struct {
	Left  Expr
	Right Expr
}

func (d Div) Fragment() Fragment { return infix(d.Left, " / ", d.Right) }

// StrConcat renders its parts joined by ||.
type StrConcat struct {
	Parts []Expr
}

func (c StrConcat) Fragment() Fragment {
	if len(c.Parts) == 0 {
		return Literal("''")
	}
	return exprList(" || ", c.Parts)
}

func infix(left Expr, op string, right Expr) Fragment {
	return Concat(left.Fragment(), Literal(op), right.Fragment())
}

// Membership

// In renders expr IN (v1, v2, ...) with each value as a bind. An empty
// value list renders FALSE, the vacuous result of membership in nothing.
type In struct {
	Expr   Expr
	Values []any
}

func (i In) Fragment() Fragment {
	if len(i.Values) == 0 {
		return Literal("FALSE")
	}
	parts := []Fragment{i.Expr.Fragment(), Literal(" IN (")}
	for n, v := range i.Values {
		if n > 0 {
			parts = append(parts, Literal(", "))
		}
		parts = append(parts, toExpr(v).Fragment())
	}
	parts = append(parts, Literal(")"))
	return Concat(parts...)
}

// NotIn renders expr NOT IN (v1, v2, ...). An empty value list renders
// TRUE.
type NotIn struct {
	Expr   Expr
	Values []any
}

func (n NotIn) Fragment() Fragment {
	if len(n.Values) == 0 {
		return Literal("TRUE")
	}
	parts := []Fragment{n.Expr.Fragment(), Literal(" NOT IN (")}
	for i, v := range n.Values {
		if i > 0 {
			parts = append(parts, Literal(", "))
		}
		parts = append(parts, toExpr(v).Fragment())
	}
	parts = append(parts, Literal(")"))
	return Concat(parts...)
}

// Between renders expr BETWEEN lo AND hi.
type Between struct {
	Expr Expr
	Lo   Expr
	Hi   Expr
}

func (b Between) Fragment() Fragment {
	return Concat(b.Expr.Fragment(), Literal(" BETWEEN "), b.Lo.Fragment(), Literal(" AND "), b.Hi.Fragment())
}

// Null checks

// IsNull renders expr IS NULL.
type IsNull struct {
	Expr Expr
}

func (i IsNull) Fragment() Fragment {
	return Concat(i.Expr.Fragment(), Literal(" IS NULL"))
}

// IsNotNull renders expr IS NOT NULL.
type IsNotNull struct {
	Expr Expr
}

func (i IsNotNull) Fragment() Fragment {
	return Concat(i.Expr.Fragment(), Literal(" IS NOT NULL"))
}

// Logical operators

// filterNilExprs removes nil expressions from the slice.
func filterNilExprs(exprs []Expr) []Expr {
	filtered := make([]Expr, 0, len(exprs))
	for _, e := range exprs {
		if e != nil {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// AndExpr is a logical AND of multiple expressions.
type AndExpr struct {
	Exprs []Expr
}

func (a AndExpr) Fragment() Fragment { return joinLogical(a.Exprs, " AND ", "TRUE") }

// And creates an AND expression, dropping nil operands. If any operand is
// the always-false predicate the whole conjunction collapses to None, so
// statements fed the result still short-circuit to an empty render.
func And(exprs ...Expr) Expr {
	exprs = filterNilExprs(exprs)
	for _, e := range exprs {
		if IsNone(e) {
			return None
		}
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return AndExpr{Exprs: exprs}
}

// OrExpr is a logical OR of multiple expressions.
type OrExpr struct {
	Exprs []Expr
}

func (o OrExpr) Fragment() Fragment { return joinLogical(o.Exprs, " OR ", "FALSE") }

// Or creates an OR expression, dropping nil operands and always-false
// branches. If every branch is None the whole disjunction is None.
func Or(exprs ...Expr) Expr {
	kept := make([]Expr, 0, len(exprs))
	for _, e := range filterNilExprs(exprs) {
		if IsNone(e) {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == 0 {
		return None
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return OrExpr{Exprs: kept}
}

// NotExpr is a logical NOT of an expression.
type NotExpr struct {
	Expr Expr
}

func (n NotExpr) Fragment() Fragment {
	return Concat(Literal("NOT ("), n.Expr.Fragment(), Literal(")"))
}

// Not creates a NOT expression.
func Not(expr Expr) NotExpr { return NotExpr{Expr: expr} }

// joinLogical renders expressions joined by sep, parenthesized when more
// than one, or emptyVal for the vacuous case.
func joinLogical(exprs []Expr, sep, emptyVal string) Fragment {
	switch len(exprs) {
	case 0:
		return Literal(emptyVal)
	case 1:
		return exprs[0].Fragment()
	default:
		return Concat(Literal("("), exprList(sep, exprs), Literal(")"))
	}
}

// Subquery predicates

// Exists renders EXISTS (query).
type Exists struct {
	Query Statement
}

func (e Exists) Fragment() Fragment {
	return Concat(Literal("EXISTS ("), e.Query.Fragment(), Literal(")"))
}

// NotExists renders NOT EXISTS (query).
type NotExists struct {
	Query Statement
}

func (n NotExists) Fragment() Fragment {
	return Concat(Literal("NOT EXISTS ("), n.Query.Fragment(), Literal(")"))
}
