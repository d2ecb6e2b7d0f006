package sequin

import (
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderStyle selects the bind placeholder token a dialect emits.
type PlaceholderStyle int

const (
	// PlaceholderQuestion emits ? for every bind (SQLite, MySQL).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar emits $1, $2, ... (PostgreSQL).
	PlaceholderDollar
	// PlaceholderColon emits :1, :2, ... (Oracle-style named/numbered).
	PlaceholderColon
)

// Dialect describes the rendering rules for one SQL dialect: identifier
// quoting, placeholder style, the set of names that must never be quoted
// even in identifier position, and per-function name mappings for scalar
// functions whose names differ across engines.
//
// Dialects are plain values; the package-level Postgres, SQLite and MySQL
// variables cover the common cases and custom dialects can be built by
// copying and adjusting one of them.
type Dialect struct {
	Name        string
	Quote       rune
	Placeholder PlaceholderStyle

	// BareNames lists identifiers emitted without quoting even though they
	// appear in identifier position. PostgreSQL's trigger pseudo-records
	// (NEW, OLD) are the canonical members: the server rejects the quoted
	// form because it parses them as keywords.
	BareNames map[string]bool

	// FuncNames maps canonical function names to this dialect's spelling.
	// Lookups are by lower-cased canonical name; absent entries pass
	// through unchanged.
	FuncNames map[string]string
}

// Postgres renders double-quoted identifiers and $N placeholders.
var Postgres = Dialect{
	Name:        "postgres",
	Quote:       '"',
	Placeholder: PlaceholderDollar,
	BareNames:   map[string]bool{"NEW": true, "OLD": true},
	FuncNames: map[string]string{
		"ifnull": "COALESCE",
	},
}

// SQLite renders double-quoted identifiers and ? placeholders.
var SQLite = Dialect{
	Name:        "sqlite",
	Quote:       '"',
	Placeholder: PlaceholderQuestion,
	BareNames:   map[string]bool{"NEW": true, "OLD": true},
	FuncNames: map[string]string{
		"now":    "CURRENT_TIMESTAMP",
		"random": "RANDOM",
	},
}

// MySQL renders backtick-quoted identifiers and ? placeholders.
var MySQL = Dialect{
	Name:        "mysql",
	Quote:       '`',
	Placeholder: PlaceholderQuestion,
	BareNames:   map[string]bool{"NEW": true, "OLD": true},
	FuncNames: map[string]string{
		"random": "RAND",
	},
}

// EscapeIdent escapes embedded quote characters in name by doubling them.
// It does not add the surrounding quotes; see QuoteIdent.
func (d Dialect) EscapeIdent(name string) string {
	q := string(d.Quote)
	return strings.ReplaceAll(name, q, q+q)
}

// UnescapeIdent reverses EscapeIdent, recovering the original name. It
// returns an error when the input contains an unpaired quote character,
// which cannot have been produced by EscapeIdent.
func (d Dialect) UnescapeIdent(escaped string) (string, error) {
	q := string(d.Quote)
	var sb strings.Builder
	for i := 0; i < len(escaped); {
		j := strings.Index(escaped[i:], q)
		if j < 0 {
			sb.WriteString(escaped[i:])
			break
		}
		sb.WriteString(escaped[i : i+j])
		rest := escaped[i+j:]
		if !strings.HasPrefix(rest, q+q) {
			return "", fmt.Errorf("sequin: unpaired quote in identifier %q", escaped)
		}
		sb.WriteString(q)
		i += j + 2*len(q)
	}
	return sb.String(), nil
}

// QuoteIdent renders name as a quoted identifier, escaping embedded quotes.
func (d Dialect) QuoteIdent(name string) string {
	return string(d.Quote) + d.EscapeIdent(name) + string(d.Quote)
}

// RenderIdent renders name in identifier position. Names flagged bare, or
// listed in the dialect's BareNames set, are emitted without quoting.
func (d Dialect) RenderIdent(name string, bare bool) string {
	if bare || d.BareNames[name] {
		return name
	}
	return d.QuoteIdent(name)
}

// FuncName resolves a canonical function name to the dialect's spelling.
func (d Dialect) FuncName(canonical string) string {
	if d.FuncNames != nil {
		if mapped, ok := d.FuncNames[strings.ToLower(canonical)]; ok {
			return mapped
		}
	}
	return canonical
}

// placeholder returns the dialect's token for the nth bind (1-based).
func (d Dialect) placeholder(n int) string {
	switch d.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(n)
	case PlaceholderColon:
		return ":" + strconv.Itoa(n)
	default:
		return "?"
	}
}
