package sequin

import (
	"reflect"
	"strings"
	"testing"
)

func TestUpdateClauseOrder(t *testing.T) {
	users := testUsers()
	teams := NewTable("teams").
		Column("id", TypeBigInt, NotNull()).
		Column("ownerId", TypeUUID, NotNull()).
		Build()

	q := Update(users).
		Set(users.C("name"), "renamed").
		From(teams).
		Where(Eq{teams.C("ownerId"), users.C("id")}).
		Returning(users.C("id").Unqualified())

	sql, args := q.Render(Postgres)
	want := `UPDATE "users"
SET "name" = $1
FROM "teams"
WHERE "teams"."ownerId" = "users"."id"
RETURNING "id"`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"renamed"}) {
		t.Errorf("args = %v", args)
	}
}

func TestUpdateSetAll(t *testing.T) {
	users := testUsers()
	q := Update(users).SetAll(
		Set(users.C("name"), "a"),
		Set(users.C("email"), "b@c.d"),
	)
	sql, _ := q.Render(Postgres)
	if !strings.Contains(sql, `SET "name" = $1, "email" = $2`) {
		t.Errorf("sql = %q", sql)
	}
}

func TestUpdateWithoutAssignmentsIsNoOp(t *testing.T) {
	users := testUsers()
	sql, args := Update(users).Where(Eq{users.C("id"), Value{V: "u1"}}).Render(Postgres)
	if sql != "" || len(args) != 0 {
		t.Errorf("Render() = (%q, %v), want empty no-op", sql, args)
	}
}

func TestUpdateWhereNoneIsNoOp(t *testing.T) {
	users := testUsers()
	sql, args := Update(users).Set(users.C("name"), "x").Where(None).Render(Postgres)
	if sql != "" || len(args) != 0 {
		t.Errorf("Render() = (%q, %v), want empty no-op", sql, args)
	}
}

func TestUpdateReturningSelf(t *testing.T) {
	users := testUsers()
	sql, _ := Update(users).Set(users.C("name"), "x").Returning().Render(Postgres)
	want := `RETURNING "id", "email", "name", "createdAt"`
	if !strings.HasSuffix(sql, want) {
		t.Errorf("sql = %q, want suffix %q", sql, want)
	}
}
