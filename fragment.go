package sequin

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// segKind discriminates the three segment shapes a Fragment can hold.
type segKind uint8

const (
	segText  segKind = iota // literal SQL text, emitted verbatim
	segBind                 // a bind placeholder owning one value
	segIdent                // an identifier, quoted per dialect at render time
	segFunc                 // a function name, mapped per dialect at render time
)

// segment is one unit of a Fragment. Only the fields relevant to its kind
// are set: text for segText, name/bare for segIdent, value for segBind.
type segment struct {
	kind  segKind
	text  string
	name  string
	bare  bool
	value any
}

// Fragment is an immutable run of SQL text, identifiers and bind values.
// Fragments concatenate associatively; placeholder numbering happens only
// when the final fragment is rendered, so intermediate fragments never need
// renumbering. The zero value is the empty fragment.
type Fragment struct {
	segs []segment
}

// Literal returns a fragment holding raw SQL text with no bind values.
func Literal(text string) Fragment {
	if text == "" {
		return Fragment{}
	}
	return Fragment{segs: []segment{{kind: segText, text: text}}}
}

// Bind returns a fragment holding a single placeholder carrying value.
func Bind(value any) Fragment {
	return Fragment{segs: []segment{{kind: segBind, value: value}}}
}

// Ident returns a fragment holding one identifier, quoted per dialect when
// rendered.
func Ident(name string) Fragment {
	return Fragment{segs: []segment{{kind: segIdent, name: name}}}
}

// BareIdent returns an identifier fragment that is never quoted, regardless
// of dialect. Trigger pseudo-records (NEW, OLD) use this: PostgreSQL treats
// them as keywords and rejects the quoted form.
func BareIdent(name string) Fragment {
	return Fragment{segs: []segment{{kind: segIdent, name: name, bare: true}}}
}

// funcName returns a fragment holding a canonical function name, resolved
// to the dialect's spelling at render time.
func funcName(name string) Fragment {
	return Fragment{segs: []segment{{kind: segFunc, name: name}}}
}

// Concat returns a fragment whose segments are the segments of each input
// in order. Concatenation is associative: grouping does not change the
// rendered text or bind order.
func Concat(frags ...Fragment) Fragment {
	n := 0
	for _, f := range frags {
		n += len(f.segs)
	}
	if n == 0 {
		return Fragment{}
	}
	segs := make([]segment, 0, n)
	for _, f := range frags {
		segs = append(segs, f.segs...)
	}
	return Fragment{segs: segs}
}

// Join concatenates frags with sep between non-empty neighbours. Empty
// fragments are skipped entirely so separators never double up.
func Join(sep string, frags ...Fragment) Fragment {
	var parts []Fragment
	for _, f := range frags {
		if f.Empty() {
			continue
		}
		if len(parts) > 0 {
			parts = append(parts, Literal(sep))
		}
		parts = append(parts, f)
	}
	return Concat(parts...)
}

// Empty reports whether the fragment holds no segments at all.
func (f Fragment) Empty() bool {
	return len(f.segs) == 0
}

// Render walks the fragment once, emitting literal text verbatim, quoting
// identifiers per dialect, and replacing each bind segment with the
// dialect's placeholder token. It returns the final SQL text and the bind
// values in emission order.
//
// Render is pure: calling it twice on the same fragment yields identical
// output, and the number of placeholders in the text always equals
// len(args).
func (f Fragment) Render(d Dialect) (string, []any) {
	var sb strings.Builder
	var args []any
	n := 0
	for _, s := range f.segs {
		switch s.kind {
		case segText:
			sb.WriteString(s.text)
		case segIdent:
			sb.WriteString(d.RenderIdent(s.name, s.bare))
		case segFunc:
			sb.WriteString(d.FuncName(s.name))
		case segBind:
			n++
			sb.WriteString(d.placeholder(n))
			args = append(args, s.value)
		}
	}
	return sb.String(), args
}

// RenderInline renders the fragment with bind values interpolated as SQL
// literals instead of placeholders. DDL bodies (trigger functions, view
// definitions) cannot carry placeholders, so anything destined for CREATE
// statements goes through this path.
func (f Fragment) RenderInline(d Dialect) string {
	var sb strings.Builder
	for _, s := range f.segs {
		switch s.kind {
		case segText:
			sb.WriteString(s.text)
		case segIdent:
			sb.WriteString(d.RenderIdent(s.name, s.bare))
		case segFunc:
			sb.WriteString(d.FuncName(s.name))
		case segBind:
			sb.WriteString(inlineLiteral(s.value))
		}
	}
	return sb.String()
}

// inlineLiteral renders a Go value as a SQL literal. Strings escape embedded
// single quotes by doubling them.
func inlineLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		return "'" + x.UTC().Format("2006-01-02 15:04:05.999999-07") + "'"
	case fmt.Stringer:
		return "'" + strings.ReplaceAll(x.String(), "'", "''") + "'"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(x), "'", "''") + "'"
	}
}

// Fragment implements Expr, so fragments compose directly into expression
// positions.
func (f Fragment) Fragment() Fragment {
	return f
}
