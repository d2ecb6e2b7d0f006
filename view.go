package sequin

import "strings"

// CreateView renders CREATE [OR REPLACE] [TEMP] VIEW ... AS <query> as DDL
// text. DDL carries no placeholders, so any bind values in the defining
// query are inlined as SQL literals.
type CreateView struct {
	Name      string
	Temp      bool
	OrReplace bool
	Columns   []string
	Query     Statement
}

// SQL renders the DDL statement for the given dialect.
func (v CreateView) SQL(d Dialect) string {
	var sb strings.Builder
	sb.WriteString("CREATE ")
	if v.OrReplace {
		sb.WriteString("OR REPLACE ")
	}
	if v.Temp {
		sb.WriteString("TEMP ")
	}
	sb.WriteString("VIEW ")
	sb.WriteString(d.QuoteIdent(v.Name))
	if len(v.Columns) > 0 {
		sb.WriteString(" (")
		for i, c := range v.Columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(d.QuoteIdent(c))
		}
		sb.WriteString(")")
	}
	sb.WriteString(" AS\n")
	sb.WriteString(v.Query.Fragment().RenderInline(d))
	return sb.String()
}

// DropView renders DROP VIEW [IF EXISTS] ... [CASCADE].
type DropView struct {
	Name     string
	IfExists bool
	Cascade  bool
}

// SQL renders the DDL statement for the given dialect.
func (v DropView) SQL(d Dialect) string {
	var sb strings.Builder
	sb.WriteString("DROP VIEW ")
	if v.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	sb.WriteString(d.QuoteIdent(v.Name))
	if v.Cascade {
		sb.WriteString(" CASCADE")
	}
	return sb.String()
}
