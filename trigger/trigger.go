package trigger

import (
	"strings"

	"github.com/pthm/sequin"
)

// Timing is the trigger firing time relative to the triggering statement.
type Timing int

const (
	Before Timing = iota
	After
	InsteadOf
)

func (t Timing) keyword() string {
	switch t {
	case After:
		return "AFTER"
	case InsteadOf:
		return "INSTEAD OF"
	default:
		return "BEFORE"
	}
}

// nameWord is the lower-cased form used in derived trigger names.
func (t Timing) nameWord() string {
	switch t {
	case After:
		return "after"
	case InsteadOf:
		return "instead_of"
	default:
		return "before"
	}
}

// Level selects row-level or statement-level firing.
type Level int

const (
	Row Level = iota
	StatementLevel
)

func (l Level) keyword() string {
	if l == StatementLevel {
		return "FOR EACH STATEMENT"
	}
	return "FOR EACH ROW"
}

// EventKind is the statement kind a trigger fires on.
type EventKind int

const (
	EventInsert EventKind = iota
	EventUpdate
	EventDelete
	EventTruncate
)

func (k EventKind) keyword() string {
	switch k {
	case EventUpdate:
		return "UPDATE"
	case EventDelete:
		return "DELETE"
	case EventTruncate:
		return "TRUNCATE"
	default:
		return "INSERT"
	}
}

func (k EventKind) nameWord() string {
	return strings.ToLower(k.keyword())
}

// Event is one entry in a trigger's event set. Columns narrows UPDATE
// events to `UPDATE OF col1, col2`.
type Event struct {
	Kind    EventKind
	Columns []string
}

// OnInsert is the INSERT event.
func OnInsert() Event { return Event{Kind: EventInsert} }

// OnUpdate is the UPDATE event, optionally narrowed to columns.
func OnUpdate(columns ...string) Event { return Event{Kind: EventUpdate, Columns: columns} }

// OnDelete is the DELETE event.
func OnDelete() Event { return Event{Kind: EventDelete} }

// OnTruncate is the TRUNCATE event.
func OnTruncate() Event { return Event{Kind: EventTruncate} }

func (e Event) fragment() sequin.Fragment {
	if len(e.Columns) == 0 {
		return sequin.Literal(e.Kind.keyword())
	}
	parts := []sequin.Fragment{sequin.Literal(e.Kind.keyword() + " OF ")}
	for i, c := range e.Columns {
		if i > 0 {
			parts = append(parts, sequin.Literal(", "))
		}
		parts = append(parts, sequin.Ident(c))
	}
	return sequin.Concat(parts...)
}

// Trigger binds a Function to a table with timing, an event set, a level
// and an optional WHEN condition. Triggers are values; builder methods
// return new values.
type Trigger struct {
	name     string
	table    sequin.Table
	timing   Timing
	level    Level
	events   []Event
	when     sequin.Expr
	function Function
}

// New starts a row-level trigger on table executing fn.
func New(table sequin.Table, timing Timing, fn Function) Trigger {
	return Trigger{table: table, timing: timing, function: fn}
}

// Named sets an explicit trigger name, overriding derivation.
func (t Trigger) Named(name string) Trigger {
	t.name = name
	return t
}

// ForEachStatement switches the trigger to statement level.
func (t Trigger) ForEachStatement() Trigger {
	t.level = StatementLevel
	return t
}

// On appends events to the trigger's event set.
func (t Trigger) On(events ...Event) Trigger {
	out := t
	out.events = make([]Event, len(t.events), len(t.events)+len(events))
	copy(out.events, t.events)
	out.events = append(out.events, events...)
	return out
}

// When attaches the trigger's WHEN condition. A trigger carries exactly
// one condition: attaching a second, different condition fails with
// ErrConflictingWhen instead of silently dropping it. Attach events
// needing different conditions to separate triggers.
func (t Trigger) When(cond sequin.Expr) (Trigger, error) {
	if t.when != nil && !sameCondition(t.when, cond) {
		return t, sequin.ErrConflictingWhen
	}
	t.when = cond
	return t, nil
}

// OnWhen appends an event that carries a WHEN condition, subject to the
// same single-condition rule as When.
func (t Trigger) OnWhen(event Event, cond sequin.Expr) (Trigger, error) {
	out, err := t.When(cond)
	if err != nil {
		return t, err
	}
	return out.On(event), nil
}

// sameCondition compares two predicates by their rendered form.
func sameCondition(a, b sequin.Expr) bool {
	return a.Fragment().RenderInline(sequin.Postgres) == b.Fragment().RenderInline(sequin.Postgres)
}

// Function returns the function the trigger executes.
func (t Trigger) Function() Function {
	return t.function
}

// Name returns the explicit name, or derives
// `<table>_<timing>_<event>_<descriptor>` where descriptor is the function
// name with its table-name suffix stripped. Derivation uses no counters or
// source locations, so the same inputs always produce the same name,
// safe for use in migrations.
func (t Trigger) Name() string {
	if t.name != "" {
		return t.name
	}
	event := "insert"
	if len(t.events) > 0 {
		event = t.events[0].Kind.nameWord()
	}
	descriptor := strings.TrimSuffix(t.function.Name, "_"+t.table.Name)
	return t.table.Name + "_" + t.timing.nameWord() + "_" + event + "_" + descriptor
}

// SQL renders the CREATE TRIGGER statement:
//
//	CREATE TRIGGER name <timing> <e1> OR <e2> ON table
//	<level> [WHEN (cond)] EXECUTE FUNCTION fn()
func (t Trigger) SQL(d sequin.Dialect) string {
	var sb strings.Builder
	sb.WriteString("CREATE TRIGGER ")
	sb.WriteString(d.QuoteIdent(t.Name()))
	sb.WriteString("\n")
	sb.WriteString(t.timing.keyword())
	sb.WriteString(" ")

	events := t.events
	if len(events) == 0 {
		events = []Event{OnInsert()}
	}
	for i, e := range events {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		sb.WriteString(e.fragment().RenderInline(d))
	}

	sb.WriteString(" ON ")
	sb.WriteString(t.table.Fragment().RenderInline(d))
	sb.WriteString("\n")
	sb.WriteString(t.level.keyword())
	if t.when != nil {
		sb.WriteString("\nWHEN (")
		sb.WriteString(t.when.Fragment().RenderInline(d))
		sb.WriteString(")")
	}
	sb.WriteString("\nEXECUTE FUNCTION ")
	sb.WriteString(d.QuoteIdent(t.function.Name))
	sb.WriteString("();")
	return sb.String()
}
