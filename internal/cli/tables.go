package cli

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/pthm/sequin"
	"github.com/pthm/sequin/pkg/migrator"
	"github.com/pthm/sequin/trigger"
)

// TableFile is the parsed form of tables.yaml: the tables the project
// manages plus the triggers and views to generate for them.
type TableFile struct {
	Schema string     `json:"schema,omitempty"`
	Tables []TableDef `json:"tables"`
	Views  []ViewDef  `json:"views,omitempty"`
}

// TableDef describes one table and the triggers attached to it.
type TableDef struct {
	Name       string       `json:"name"`
	Columns    []ColumnDef  `json:"columns"`
	PrimaryKey string       `json:"primary_key,omitempty"`
	Triggers   []TriggerDef `json:"triggers,omitempty"`
}

// ColumnDef describes one column.
type ColumnDef struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	NotNull bool   `json:"not_null,omitempty"`
	// Default is a raw SQL default expression. The value "now" maps to the
	// current-timestamp default.
	Default string `json:"default,omitempty"`
}

// TriggerDef selects one of the built-in trigger templates.
//
// Kinds: touch (Column = timestamp column), audit (Into = audit table),
// increment (Column = counter column), soft_delete (Column = deleted-at
// column; the table needs a primary_key).
type TriggerDef struct {
	Kind   string `json:"kind"`
	Column string `json:"column,omitempty"`
	Into   string `json:"into,omitempty"`
}

// ViewDef describes a view over one table with an optional raw predicate.
type ViewDef struct {
	Name      string   `json:"name"`
	From      string   `json:"from"`
	Columns   []string `json:"columns,omitempty"`
	Where     string   `json:"where,omitempty"`
	OrReplace bool     `json:"or_replace,omitempty"`
}

// LoadTables reads and parses a tables.yaml file.
func LoadTables(path string) (*TableFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var tf TableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(tf.Tables) == 0 {
		return nil, fmt.Errorf("%s defines no tables", path)
	}
	return &tf, nil
}

// DialectByName maps a config dialect name to its definition.
func DialectByName(name string) (sequin.Dialect, error) {
	switch name {
	case "", "postgres":
		return sequin.Postgres, nil
	case "sqlite":
		return sequin.SQLite, nil
	case "mysql":
		return sequin.MySQL, nil
	default:
		return sequin.Dialect{}, fmt.Errorf("unknown dialect %q", name)
	}
}

// BuildPlan turns a parsed table file into an ordered DDL plan.
func BuildPlan(tf *TableFile, d sequin.Dialect) (*migrator.Plan, error) {
	tables := make(map[string]sequin.Table, len(tf.Tables))
	for _, td := range tf.Tables {
		t, err := buildTable(tf.Schema, td)
		if err != nil {
			return nil, err
		}
		tables[td.Name] = t
	}

	plan := migrator.NewPlan(d)

	for _, td := range tf.Tables {
		t := tables[td.Name]
		for _, tr := range td.Triggers {
			trg, err := buildTrigger(t, tr, tables)
			if err != nil {
				return nil, fmt.Errorf("table %s: %w", td.Name, err)
			}
			plan.AddTrigger(trg)
		}
	}

	for _, vd := range tf.Views {
		v, err := buildView(vd, tables)
		if err != nil {
			return nil, err
		}
		plan.AddView(v)
	}

	return plan, nil
}

func buildTable(schema string, td TableDef) (sequin.Table, error) {
	b := sequin.NewTable(td.Name)
	if schema != "" {
		b = b.InSchema(schema)
	}
	for _, cd := range td.Columns {
		typ, err := parseColType(cd.Type)
		if err != nil {
			return sequin.Table{}, fmt.Errorf("table %s column %s: %w", td.Name, cd.Name, err)
		}
		var opts []sequin.ColumnOption
		if cd.NotNull {
			opts = append(opts, sequin.NotNull())
		}
		switch cd.Default {
		case "":
		case "now":
			opts = append(opts, sequin.DefaultNow())
		default:
			opts = append(opts, sequin.Default(sequin.Raw(cd.Default)))
		}
		b = b.Column(cd.Name, typ, opts...)
	}
	if td.PrimaryKey != "" {
		b = b.PrimaryKey(td.PrimaryKey)
	}
	return b.Build(), nil
}

func parseColType(s string) (sequin.ColType, error) {
	switch s {
	case "text", "string":
		return sequin.TypeText, nil
	case "int", "integer":
		return sequin.TypeInt, nil
	case "bigint":
		return sequin.TypeBigInt, nil
	case "bool", "boolean":
		return sequin.TypeBool, nil
	case "float", "double":
		return sequin.TypeFloat, nil
	case "timestamp", "timestamptz":
		return sequin.TypeTimestamp, nil
	case "json", "jsonb":
		return sequin.TypeJSON, nil
	case "uuid":
		return sequin.TypeUUID, nil
	default:
		return "", fmt.Errorf("unknown column type %q", s)
	}
}

func buildTrigger(t sequin.Table, tr TriggerDef, tables map[string]sequin.Table) (trigger.Trigger, error) {
	switch tr.Kind {
	case "touch":
		if tr.Column == "" {
			return trigger.Trigger{}, fmt.Errorf("touch trigger needs a column")
		}
		_, trg := trigger.TouchTimestamp(t, tr.Column, nil)
		return trg, nil
	case "audit":
		if tr.Into == "" {
			return trigger.Trigger{}, fmt.Errorf("audit trigger needs a target table (into)")
		}
		audit, ok := tables[tr.Into]
		if !ok {
			return trigger.Trigger{}, fmt.Errorf("audit target table %q is not defined", tr.Into)
		}
		_, trg := trigger.Audit(t, audit)
		return trg, nil
	case "increment":
		if tr.Column == "" {
			return trigger.Trigger{}, fmt.Errorf("increment trigger needs a column")
		}
		_, trg := trigger.Increment(t, tr.Column)
		return trg, nil
	case "soft_delete":
		if tr.Column == "" {
			return trigger.Trigger{}, fmt.Errorf("soft_delete trigger needs a column")
		}
		if t.PK == "" {
			return trigger.Trigger{}, fmt.Errorf("soft_delete trigger needs a primary_key on the table")
		}
		_, trg := trigger.SoftDelete(t, tr.Column)
		return trg, nil
	default:
		return trigger.Trigger{}, fmt.Errorf("unknown trigger kind %q", tr.Kind)
	}
}

func buildView(vd ViewDef, tables map[string]sequin.Table) (sequin.CreateView, error) {
	t, ok := tables[vd.From]
	if !ok {
		return sequin.CreateView{}, fmt.Errorf("view %s: table %q is not defined", vd.Name, vd.From)
	}

	var q sequin.SelectStatement
	if len(vd.Columns) > 0 {
		cols := make([]sequin.Expr, 0, len(vd.Columns))
		for _, name := range vd.Columns {
			cols = append(cols, t.C(name))
		}
		q = sequin.Select(cols...).From(t)
	} else {
		q = sequin.SelectFrom(t)
	}
	if vd.Where != "" {
		q = q.Where(sequin.Raw(vd.Where))
	}

	return sequin.CreateView{
		Name:      vd.Name,
		OrReplace: vd.OrReplace,
		Query:     q,
	}, nil
}
