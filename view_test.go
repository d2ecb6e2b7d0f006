package sequin

import (
	"strings"
	"testing"
)

func TestCreateViewSQL(t *testing.T) {
	users := testUsers()
	q := Select(users.C("id"), users.C("email")).From(users).Where(IsNotNull{users.C("name")})

	v := CreateView{Name: "named_users", Query: q}
	got := v.SQL(Postgres)
	want := `CREATE VIEW "named_users" AS
SELECT "users"."id", "users"."email"
FROM "users"
WHERE "users"."name" IS NOT NULL`
	if got != want {
		t.Errorf("SQL() = %q, want %q", got, want)
	}
}

func TestCreateViewModifiers(t *testing.T) {
	users := testUsers()
	q := Select(users.C("id")).From(users)

	v := CreateView{
		Name:      "ids",
		OrReplace: true,
		Temp:      true,
		Columns:   []string{"user_id"},
		Query:     q,
	}
	got := v.SQL(Postgres)
	if !strings.HasPrefix(got, `CREATE OR REPLACE TEMP VIEW "ids" ("user_id") AS`) {
		t.Errorf("SQL() = %q", got)
	}
}

func TestCreateViewInlinesBinds(t *testing.T) {
	users := testUsers()
	q := Select(users.C("id")).From(users).Where(Eq{users.C("email"), Value{V: "a@b.c"}})

	got := CreateView{Name: "v", Query: q}.SQL(Postgres)
	if strings.Contains(got, "$1") {
		t.Errorf("view DDL must not carry placeholders: %q", got)
	}
	if !strings.Contains(got, "'a@b.c'") {
		t.Errorf("bind value not inlined: %q", got)
	}
}

func TestDropViewSQL(t *testing.T) {
	tests := []struct {
		name string
		v    DropView
		want string
	}{
		{"plain", DropView{Name: "v"}, `DROP VIEW "v"`},
		{"if exists", DropView{Name: "v", IfExists: true}, `DROP VIEW IF EXISTS "v"`},
		{"cascade", DropView{Name: "v", Cascade: true}, `DROP VIEW "v" CASCADE`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.SQL(Postgres); got != tt.want {
				t.Errorf("SQL() = %q, want %q", got, tt.want)
			}
		})
	}
}
