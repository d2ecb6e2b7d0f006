package sequin

import (
	"fmt"
	"sync"
)

// ColType is a coarse semantic tag for a column. The builder does not use
// it to restrict operations; it travels with the descriptor so callers and
// code generators can make their own decisions.
type ColType string

const (
	TypeText      ColType = "text"
	TypeInt       ColType = "integer"
	TypeBigInt    ColType = "bigint"
	TypeBool      ColType = "boolean"
	TypeFloat     ColType = "double precision"
	TypeTimestamp ColType = "timestamptz"
	TypeJSON      ColType = "jsonb"
	TypeUUID      ColType = "uuid"
)

// Column is an explicit column descriptor: name, owning table, semantic
// type tag, and constraint metadata. Callers hold these values directly;
// there is no reflection anywhere in the rendering engine.
type Column struct {
	Table   string
	Name    string
	Type    ColType
	NotNull bool
	Default Expr
}

// Fragment renders "table"."name", or just "name" when the descriptor has
// no owning table.
func (c Column) Fragment() Fragment {
	if c.Table == "" {
		return Ident(c.Name)
	}
	return Concat(Ident(c.Table), Literal("."), Ident(c.Name))
}

// Unqualified returns a copy of the column without its table prefix, for
// positions where SQL forbids qualification (INSERT column lists, SET
// targets, conflict targets).
func (c Column) Unqualified() Column {
	c.Table = ""
	return c
}

// Table is a table descriptor produced by an explicit schema-registration
// step. It is a plain value: copying or aliasing it never affects other
// holders.
type Table struct {
	Schema  string
	Name    string
	AliasAs string
	Cols    []Column
	PK      string
}

// NewTable starts registration of a table descriptor.
func NewTable(name string) *TableBuilder {
	return &TableBuilder{t: Table{Name: name}}
}

// TableBuilder accumulates column descriptors for one table. Build returns
// the finished value; the builder itself is single-use.
type TableBuilder struct {
	t Table
}

// InSchema sets the schema the table lives in.
func (b *TableBuilder) InSchema(schema string) *TableBuilder {
	b.t.Schema = schema
	return b
}

// Column registers a column with the given name and type tag.
func (b *TableBuilder) Column(name string, typ ColType, opts ...ColumnOption) *TableBuilder {
	col := Column{Table: b.t.Name, Name: name, Type: typ}
	for _, opt := range opts {
		opt(&col)
	}
	b.t.Cols = append(b.t.Cols, col)
	return b
}

// PrimaryKey names the primary key column. It must already be registered.
func (b *TableBuilder) PrimaryKey(name string) *TableBuilder {
	b.t.PK = name
	return b
}

// Build returns the finished descriptor.
func (b *TableBuilder) Build() Table {
	return b.t
}

// ColumnOption configures a column descriptor during registration.
type ColumnOption func(*Column)

// NotNull marks the column as required: row construction fails with
// ErrMissingColumn when no value and no default is available.
func NotNull() ColumnOption {
	return func(c *Column) { c.NotNull = true }
}

// Default sets the column's default expression, used during row
// construction when no value is supplied.
func Default(e Expr) ColumnOption {
	return func(c *Column) { c.Default = e }
}

// DefaultNow defaults the column to the process-wide current-timestamp
// source.
func DefaultNow() ColumnOption {
	return func(c *Column) { c.Default = Now() }
}

// C returns the descriptor for the named column. Unregistered names yield
// a bare descriptor carrying only the table and column name, so ad-hoc
// references (computed columns, columns of external tables) still render.
func (t Table) C(name string) Column {
	for _, c := range t.Cols {
		if c.Name == name {
			if t.AliasAs != "" {
				c.Table = t.AliasAs
			}
			return c
		}
	}
	return Column{Table: t.refName(), Name: name}
}

// Columns returns descriptors for every registered column, in registration
// order. RETURNING-self resolves against this list at call time.
func (t Table) Columns() []Column {
	cols := make([]Column, len(t.Cols))
	copy(cols, t.Cols)
	if t.AliasAs != "" {
		for i := range cols {
			cols[i].Table = t.AliasAs
		}
	}
	return cols
}

// As returns a copy of the table under an alias. Column descriptors
// obtained from the copy qualify against the alias.
func (t Table) As(alias string) Table {
	t.AliasAs = alias
	return t
}

// refName is the name columns qualify against: the alias when present.
func (t Table) refName() string {
	if t.AliasAs != "" {
		return t.AliasAs
	}
	return t.Name
}

// Fragment renders the table in FROM position: [schema.]name [AS alias].
func (t Table) Fragment() Fragment {
	parts := make([]Fragment, 0, 5)
	if t.Schema != "" {
		parts = append(parts, Ident(t.Schema), Literal("."))
	}
	parts = append(parts, Ident(t.Name))
	if t.AliasAs != "" {
		parts = append(parts, Literal(" AS "), Ident(t.AliasAs))
	}
	return Concat(parts...)
}

// Row is an ordered set of column/value pairs produced by Table.Row,
// consumed by InsertInto(...).Rows.
type Row struct {
	Columns []Column
	Values  []Expr
}

// Row constructs a row for insertion from a name→value map, walking the
// table's registered columns in order. Missing values fall back to the
// column default; a required column with neither value nor default fails
// with ErrMissingColumn. Columns that are nullable, defaultless and absent
// are omitted from the row.
func (t Table) Row(values map[string]any) (Row, error) {
	var row Row
	for _, c := range t.Cols {
		v, ok := values[c.Name]
		switch {
		case ok:
			row.Columns = append(row.Columns, c)
			row.Values = append(row.Values, toExpr(v))
		case c.Default != nil:
			row.Columns = append(row.Columns, c)
			row.Values = append(row.Values, c.Default)
		case c.NotNull:
			return Row{}, fmt.Errorf("%w: %s.%s", ErrMissingColumn, t.Name, c.Name)
		}
	}
	return row, nil
}

// Process-wide current-timestamp source used by insert/update defaults.
// Initialized lazily on first use and read-only afterwards, so concurrent
// reads are safe.
var (
	nowOnce sync.Once
	nowExpr Expr
)

// Now returns the shared current-timestamp expression.
func Now() Expr {
	nowOnce.Do(func() {
		nowExpr = Raw("CURRENT_TIMESTAMP")
	})
	return nowExpr
}
