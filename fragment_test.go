package sequin

import (
	"reflect"
	"strings"
	"testing"
)

func TestConcatAssociativity(t *testing.T) {
	a := Literal("SELECT ")
	b := Bind(1)
	c := Literal(" + ")
	d := Bind(2)

	left := Concat(Concat(a, b), Concat(c, d))
	right := Concat(a, Concat(b, Concat(c, d)))
	flat := Concat(a, b, c, d)

	wantSQL, wantArgs := flat.Render(Postgres)
	for _, f := range []Fragment{left, right} {
		sql, args := f.Render(Postgres)
		if sql != wantSQL {
			t.Errorf("Render() = %q, want %q", sql, wantSQL)
		}
		if !reflect.DeepEqual(args, wantArgs) {
			t.Errorf("Render() args = %v, want %v", args, wantArgs)
		}
	}
}

func TestRenderPurity(t *testing.T) {
	f := Concat(
		Literal("SELECT "),
		Ident("name"),
		Literal(" FROM "),
		Ident("users"),
		Literal(" WHERE "),
		Ident("id"),
		Literal(" = "),
		Bind(42),
	)

	sql1, args1 := f.Render(Postgres)
	sql2, args2 := f.Render(Postgres)

	if sql1 != sql2 {
		t.Errorf("second Render() = %q, want %q", sql2, sql1)
	}
	if !reflect.DeepEqual(args1, args2) {
		t.Errorf("second Render() args = %v, want %v", args2, args1)
	}
}

func TestRenderPlaceholderCount(t *testing.T) {
	f := Concat(
		Literal("a = "), Bind("x"),
		Literal(" AND b = "), Bind(7),
		Literal(" AND c = "), Bind(true),
	)

	sql, args := f.Render(Postgres)
	if got := strings.Count(sql, "$"); got != len(args) {
		t.Errorf("placeholder count = %d, want %d (sql %q)", got, len(args), sql)
	}
	want := []any{"x", 7, true}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
	if sql != "a = $1 AND b = $2 AND c = $3" {
		t.Errorf("sql = %q", sql)
	}
}

func TestRenderPlaceholderStyles(t *testing.T) {
	f := Concat(Bind(1), Literal(", "), Bind(2))

	tests := []struct {
		dialect Dialect
		want    string
	}{
		{Postgres, "$1, $2"},
		{SQLite, "?, ?"},
		{MySQL, "?, ?"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect.Name, func(t *testing.T) {
			sql, _ := f.Render(tt.dialect)
			if sql != tt.want {
				t.Errorf("Render() = %q, want %q", sql, tt.want)
			}
		})
	}
}

func TestJoinSkipsEmpty(t *testing.T) {
	got, _ := Join("\n", Literal("SELECT 1"), Fragment{}, Literal("LIMIT 1")).Render(Postgres)
	want := "SELECT 1\nLIMIT 1"
	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}

	if !Join("\n", Fragment{}, Fragment{}).Empty() {
		t.Error("Join of empty fragments should be empty")
	}
}

func TestIdentQuoting(t *testing.T) {
	tests := []struct {
		name string
		frag Fragment
		want string
	}{
		{"plain ident", Ident("users"), `"users"`},
		{"bare ident", BareIdent("NEW"), "NEW"},
		{"dialect bare name", Ident("OLD"), "OLD"},
		{"embedded quote", Ident(`we"ird`), `"we""ird"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := tt.frag.Render(Postgres)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderInline(t *testing.T) {
	tests := []struct {
		name string
		frag Fragment
		want string
	}{
		{"string escapes quotes", Bind("o'brien"), "'o''brien'"},
		{"bool", Concat(Bind(true), Literal(" "), Bind(false)), "TRUE FALSE"},
		{"int", Bind(42), "42"},
		{"int64", Bind(int64(-7)), "-7"},
		{"float", Bind(2.5), "2.5"},
		{"nil", Bind(nil), "NULL"},
		{"mixed", Concat(Literal("x = "), Bind("a"), Literal(" AND "), Ident("y"), Literal(" = "), Bind(3)), `x = 'a' AND "y" = 3`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.frag.RenderInline(Postgres); got != tt.want {
				t.Errorf("RenderInline() = %q, want %q", got, tt.want)
			}
		})
	}
}
