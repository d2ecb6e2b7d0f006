package sequin

import (
	"strconv"
)

// Expr is the interface all SQL expression types implement. An expression
// renders itself to a Fragment; dialect concerns (identifier quoting,
// placeholder style, function name mapping) are deferred to the fragment's
// render pass.
type Expr interface {
	Fragment() Fragment
}

// Statement is an assembled SQL command with a fixed clause-rendering
// order. Statements are also expressions, so they nest as subqueries.
//
// Render may produce empty text with a nil bind list; that means the
// statement is a structural no-op (zero insert rows, an always-false
// predicate) and must not be executed.
type Statement interface {
	Expr
	Render(d Dialect) (string, []any)
}

// Value wraps a Go value as a bind expression. It renders as the dialect's
// placeholder token and contributes one entry to the bind list.
type Value struct {
	V any
}

// Fragment renders the value as a single bind segment.
func (v Value) Fragment() Fragment {
	return Bind(v.V)
}

// Raw is an escape hatch for arbitrary SQL text. It carries no bind values
// and is emitted verbatim.
type Raw string

// Fragment renders the raw SQL as-is.
func (r Raw) Fragment() Fragment {
	return Literal(string(r))
}

// Lit is an inline string literal, single-quoted with embedded quotes
// doubled. Use Value for user-supplied data; Lit exists for DDL bodies
// where placeholders are unavailable.
type Lit string

// Fragment renders the quoted literal.
func (l Lit) Fragment() Fragment {
	return Literal(inlineLiteral(string(l)))
}

// Int is an inline integer literal.
type Int int

// Fragment renders the integer.
func (i Int) Fragment() Fragment {
	return Literal(strconv.Itoa(int(i)))
}

// Bool is an inline boolean literal.
type Bool bool

// Fragment renders TRUE or FALSE.
func (b Bool) Fragment() Fragment {
	if b {
		return Literal("TRUE")
	}
	return Literal("FALSE")
}

// Null is the SQL NULL literal.
type Null struct{}

// Fragment renders NULL.
func (Null) Fragment() Fragment {
	return Literal("NULL")
}

// noneExpr is the always-false predicate. Feeding it into a statement's
// WHERE clause, or using it as a CTE source, short-circuits the whole
// statement to an empty render.
type noneExpr struct{}

// None is the always-false predicate.
var None Expr = noneExpr{}

// Fragment renders FALSE; statements usually intercept None before this
// is reached.
func (noneExpr) Fragment() Fragment {
	return Literal("FALSE")
}

// IsNone reports whether e is the always-false predicate.
func IsNone(e Expr) bool {
	_, ok := e.(noneExpr)
	return ok
}

// Func is a function call. The name is canonical and resolved to the
// dialect's spelling at render time (see Dialect.FuncNames).
type Func struct {
	Name string
	Args []Expr
}

// Call is shorthand for constructing a Func.
func Call(name string, args ...Expr) Func {
	return Func{Name: name, Args: args}
}

// Fragment renders name(arg1, arg2, ...).
func (f Func) Fragment() Fragment {
	parts := make([]Fragment, 0, 2*len(f.Args)+3)
	parts = append(parts, funcName(f.Name), Literal("("))
	for i, a := range f.Args {
		if i > 0 {
			parts = append(parts, Literal(", "))
		}
		parts = append(parts, a.Fragment())
	}
	parts = append(parts, Literal(")"))
	return Concat(parts...)
}

// Cast renders expr::type (PostgreSQL cast syntax).
type Cast struct {
	Expr Expr
	Type string
}

// Fragment renders the cast.
func (c Cast) Fragment() Fragment {
	return Concat(c.Expr.Fragment(), Literal("::"+c.Type))
}

// Alias wraps an expression with an output name (expr AS name).
type Alias struct {
	Expr Expr
	Name string
}

// As is shorthand for constructing an Alias.
func As(e Expr, name string) Alias {
	return Alias{Expr: e, Name: name}
}

// Fragment renders the aliased expression.
func (a Alias) Fragment() Fragment {
	return Concat(a.Expr.Fragment(), Literal(" AS "), Ident(a.Name))
}

// Paren wraps an expression in parentheses.
type Paren struct {
	Expr Expr
}

// Fragment renders the parenthesized expression.
func (p Paren) Fragment() Fragment {
	return Concat(Literal("("), p.Expr.Fragment(), Literal(")"))
}

// CaseWhen is a single WHEN arm of a CASE expression.
type CaseWhen struct {
	Cond   Expr
	Result Expr
}

// Case is a searched CASE expression with zero or more WHEN arms and an
// optional ELSE.
type Case struct {
	Whens []CaseWhen
	Else  Expr
}

// Fragment renders the CASE expression. With no WHEN arms it degenerates
// to the ELSE value, or NULL when that is absent too.
func (c Case) Fragment() Fragment {
	if len(c.Whens) == 0 {
		if c.Else != nil {
			return c.Else.Fragment()
		}
		return Literal("NULL")
	}
	parts := []Fragment{Literal("CASE")}
	for _, w := range c.Whens {
		parts = append(parts, Literal(" WHEN "), w.Cond.Fragment(), Literal(" THEN "), w.Result.Fragment())
	}
	if c.Else != nil {
		parts = append(parts, Literal(" ELSE "), c.Else.Fragment())
	}
	parts = append(parts, Literal(" END"))
	return Concat(parts...)
}

// exprList renders expressions joined by sep.
func exprList(sep string, exprs []Expr) Fragment {
	parts := make([]Fragment, 0, 2*len(exprs))
	for i, e := range exprs {
		if i > 0 {
			parts = append(parts, Literal(sep))
		}
		parts = append(parts, e.Fragment())
	}
	return Concat(parts...)
}

// toExpr converts common Go values into expressions: an Expr passes
// through, everything else becomes a bind Value. This keeps call sites
// like Eq{col, 5} out of the API; helpers accept any and normalize here.
func toExpr(v any) Expr {
	switch x := v.(type) {
	case Expr:
		return x
	case nil:
		return Null{}
	default:
		return Value{V: v}
	}
}
