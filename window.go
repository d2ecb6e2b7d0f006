package sequin

import (
	"fmt"
	"strconv"
)

// FrameMode selects the window frame unit.
type FrameMode int

const (
	FrameRows FrameMode = iota
	FrameRange
	FrameGroups
)

func (m FrameMode) keyword() string {
	switch m {
	case FrameRange:
		return "RANGE"
	case FrameGroups:
		return "GROUPS"
	default:
		return "ROWS"
	}
}

// frameBoundKind orders the five bound shapes by evaluation position, so
// BETWEEN validation is a rank comparison.
type frameBoundKind int

const (
	boundUnboundedPreceding frameBoundKind = iota
	boundPreceding
	boundCurrentRow
	boundFollowing
	boundUnboundedFollowing
)

// FrameBound is one endpoint of a window frame.
type FrameBound struct {
	kind   frameBoundKind
	offset int
}

// UnboundedPreceding is the UNBOUNDED PRECEDING bound.
func UnboundedPreceding() FrameBound {
	return FrameBound{kind: boundUnboundedPreceding}
}

// Preceding is the `n PRECEDING` bound.
func Preceding(n int) FrameBound {
	return FrameBound{kind: boundPreceding, offset: n}
}

// CurrentRow is the CURRENT ROW bound.
func CurrentRow() FrameBound {
	return FrameBound{kind: boundCurrentRow}
}

// Following is the `n FOLLOWING` bound.
func Following(n int) FrameBound {
	return FrameBound{kind: boundFollowing, offset: n}
}

// UnboundedFollowing is the UNBOUNDED FOLLOWING bound.
func UnboundedFollowing() FrameBound {
	return FrameBound{kind: boundUnboundedFollowing}
}

func (b FrameBound) fragment() Fragment {
	switch b.kind {
	case boundUnboundedPreceding:
		return Literal("UNBOUNDED PRECEDING")
	case boundPreceding:
		return Literal(strconv.Itoa(b.offset) + " PRECEDING")
	case boundCurrentRow:
		return Literal("CURRENT ROW")
	case boundFollowing:
		return Literal(strconv.Itoa(b.offset) + " FOLLOWING")
	default:
		return Literal("UNBOUNDED FOLLOWING")
	}
}

// FrameSpec is a window frame: a mode plus either a single starting bound
// or a BETWEEN pair.
type FrameSpec struct {
	mode  FrameMode
	start FrameBound
	end   *FrameBound
}

// Frame builds a single-bound frame: `<MODE> <bound>`.
func Frame(mode FrameMode, bound FrameBound) FrameSpec {
	return FrameSpec{mode: mode, start: bound}
}

// FrameBetween builds a BETWEEN frame: `<MODE> BETWEEN <lo> AND <hi>`.
// Reversed bounds (a start that would evaluate after the end, such as
// FOLLOWING before PRECEDING) are rejected here with ErrInvalidFrame
// rather than left for the server to refuse.
func FrameBetween(mode FrameMode, lo, hi FrameBound) (FrameSpec, error) {
	if lo.kind > hi.kind {
		return FrameSpec{}, fmt.Errorf("%w: start %s after end %s",
			ErrInvalidFrame, boundName(lo.kind), boundName(hi.kind))
	}
	return FrameSpec{mode: mode, start: lo, end: &hi}, nil
}

func boundName(k frameBoundKind) string {
	switch k {
	case boundUnboundedPreceding:
		return "UNBOUNDED PRECEDING"
	case boundPreceding:
		return "PRECEDING"
	case boundCurrentRow:
		return "CURRENT ROW"
	case boundFollowing:
		return "FOLLOWING"
	default:
		return "UNBOUNDED FOLLOWING"
	}
}

func (f FrameSpec) fragment() Fragment {
	if f.end == nil {
		return Concat(Literal(f.mode.keyword()+" "), f.start.fragment())
	}
	return Concat(
		Literal(f.mode.keyword()+" BETWEEN "),
		f.start.fragment(),
		Literal(" AND "),
		f.end.fragment(),
	)
}

// WindowDef is a window specification: PARTITION BY, then ORDER BY, then
// an optional frame, accumulated in that fixed order regardless of call
// order. It renders inside OVER (...) or as the body of a named WINDOW
// clause; both paths share this one rendering.
type WindowDef struct {
	partitionBy []Expr
	orderBy     []OrderExpr
	frame       *FrameSpec
}

// NewWindow starts an empty window specification.
func NewWindow() WindowDef {
	return WindowDef{}
}

// PartitionBy appends partitioning expressions.
func (w WindowDef) PartitionBy(exprs ...Expr) WindowDef {
	w.partitionBy = appendClone(w.partitionBy, exprs...)
	return w
}

// OrderBy appends ordering terms.
func (w WindowDef) OrderBy(terms ...OrderExpr) WindowDef {
	w.orderBy = appendClone(w.orderBy, terms...)
	return w
}

// Frame sets the frame specification; last call wins.
func (w WindowDef) Frame(f FrameSpec) WindowDef {
	w.frame = &f
	return w
}

// Fragment renders the specification body (without the OVER keyword or
// surrounding parentheses).
func (w WindowDef) Fragment() Fragment {
	var clauses []Fragment
	if len(w.partitionBy) > 0 {
		clauses = append(clauses, Concat(Literal("PARTITION BY "), exprList(", ", w.partitionBy)))
	}
	if len(w.orderBy) > 0 {
		parts := []Fragment{Literal("ORDER BY ")}
		for i, o := range w.orderBy {
			if i > 0 {
				parts = append(parts, Literal(", "))
			}
			parts = append(parts, o.Fragment())
		}
		clauses = append(clauses, Concat(parts...))
	}
	if w.frame != nil {
		clauses = append(clauses, w.frame.fragment())
	}
	return Join(" ", clauses...)
}

// Over wraps a function call with an inline window: fn OVER (spec).
type Over struct {
	Fn  Expr
	Def WindowDef
}

// Fragment renders the windowed function reference.
func (o Over) Fragment() Fragment {
	return Concat(o.Fn.Fragment(), Literal(" OVER ("), o.Def.Fragment(), Literal(")"))
}

// OverNamed wraps a function call with a reference to a window declared in
// the statement's WINDOW clause: fn OVER name.
type OverNamed struct {
	Fn   Expr
	Name string
}

// Fragment renders the windowed function reference.
func (o OverNamed) Fragment() Fragment {
	return Concat(o.Fn.Fragment(), Literal(" OVER "), Ident(o.Name))
}
