package sequin

import (
	"reflect"
	"strings"
	"testing"
)

func TestSelectClauseOrder(t *testing.T) {
	users := testUsers()

	q := Select(users.C("email"), As(Call("count", Raw("*")), "n")).
		From(users).
		Where(IsNotNull{users.C("name")}).
		GroupBy(users.C("email")).
		Having(Gt{Call("count", Raw("*")), Value{V: 1}}).
		OrderBy(Desc(Raw("n"))).
		Limit(10).
		Offset(20)

	sql, args := q.Render(Postgres)
	want := `SELECT "users"."email", count(*) AS "n"
FROM "users"
WHERE "users"."name" IS NOT NULL
GROUP BY "users"."email"
HAVING count(*) > $1
ORDER BY "n" DESC
LIMIT $2 OFFSET $3`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{1, 10, 20}) {
		t.Errorf("args = %v", args)
	}
}

func TestSelectStar(t *testing.T) {
	users := testUsers()
	sql, _ := Select().From(users).Render(Postgres)
	if sql != "SELECT *\nFROM \"users\"" {
		t.Errorf("sql = %q", sql)
	}
}

func TestSelectFromAllColumns(t *testing.T) {
	users := testUsers()
	sql, _ := SelectFrom(users).Render(Postgres)
	want := `SELECT "users"."id", "users"."email", "users"."name", "users"."createdAt"
FROM "users"`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestDistinctIdempotent(t *testing.T) {
	users := testUsers()
	q := Select(users.C("email")).From(users).Distinct().Distinct()
	sql, _ := q.Render(Postgres)
	if strings.Count(sql, "DISTINCT") != 1 {
		t.Errorf("DISTINCT emitted more than once: %q", sql)
	}
	if !strings.HasPrefix(sql, `SELECT DISTINCT "users"."email"`) {
		t.Errorf("sql = %q", sql)
	}
}

func TestDistinctOn(t *testing.T) {
	users := testUsers()
	sql, _ := Select(users.C("email")).From(users).DistinctOn(users.C("email")).Render(Postgres)
	if !strings.HasPrefix(sql, `SELECT DISTINCT ON ("users"."email") `) {
		t.Errorf("sql = %q", sql)
	}
}

func TestLimitLastWins(t *testing.T) {
	users := testUsers()
	q := Select(users.C("id")).From(users).Limit(10).Limit(5)

	sql, args := q.Render(Postgres)
	if !strings.HasSuffix(sql, "LIMIT $1") {
		t.Errorf("sql = %q", sql)
	}
	// Only the surviving limit contributes a bind.
	if !reflect.DeepEqual(args, []any{5}) {
		t.Errorf("args = %v, want [5]", args)
	}
}

func TestWhereAppendsWithAnd(t *testing.T) {
	users := testUsers()
	q := Select(users.C("id")).From(users).
		Where(Eq{users.C("email"), Value{V: "a@b.c"}}).
		Where(IsNull{users.C("name")})

	sql, _ := q.Render(Postgres)
	if !strings.Contains(sql, `WHERE "users"."email" = $1 AND "users"."name" IS NULL`) {
		t.Errorf("sql = %q", sql)
	}
}

func TestWhereNoneShortCircuits(t *testing.T) {
	users := testUsers()
	q := Select(users.C("id")).From(users).Where(None).Limit(10)

	sql, args := q.Render(Postgres)
	if sql != "" || len(args) != 0 {
		t.Errorf("Render() = (%q, %v), want empty no-op", sql, args)
	}
}

func TestJoins(t *testing.T) {
	users := testUsers()
	posts := NewTable("posts").
		Column("id", TypeBigInt, NotNull()).
		Column("authorId", TypeUUID, NotNull()).
		Build()
	on := Eq{posts.C("authorId"), users.C("id")}

	tests := []struct {
		name string
		q    SelectStatement
		want string
	}{
		{"inner", Select().From(users).Join(posts, on), `INNER JOIN "posts" ON "posts"."authorId" = "users"."id"`},
		{"left", Select().From(users).LeftJoin(posts, on), `LEFT JOIN "posts" ON`},
		{"right", Select().From(users).RightJoin(posts, on), `RIGHT JOIN "posts" ON`},
		{"full", Select().From(users).FullJoin(posts, on), `FULL OUTER JOIN "posts" ON`},
		{"cross", Select().From(users).CrossJoin(posts), `CROSS JOIN "posts"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := tt.q.Render(Postgres)
			if !strings.Contains(sql, tt.want) {
				t.Errorf("sql = %q, want to contain %q", sql, tt.want)
			}
		})
	}
}

func TestOrderByNulls(t *testing.T) {
	users := testUsers()
	q := Select(users.C("id")).From(users).OrderBy(
		Desc(users.C("createdAt")).WithNulls(NullsLast),
		Asc(users.C("email")).WithNulls(NullsFirst),
	)
	sql, _ := q.Render(Postgres)
	want := `ORDER BY "users"."createdAt" DESC NULLS LAST, "users"."email" NULLS FIRST`
	if !strings.Contains(sql, want) {
		t.Errorf("sql = %q, want to contain %q", sql, want)
	}
}

func TestSetOperations(t *testing.T) {
	a := Select(Raw("1"))
	b := Select(Raw("2"))

	tests := []struct {
		name string
		q    SelectStatement
		want string
	}{
		{"union", a.Union(b), "SELECT 1\nUNION\nSELECT 2"},
		{"union all", a.UnionAll(b), "SELECT 1\nUNION ALL\nSELECT 2"},
		{"intersect", a.Intersect(b), "SELECT 1\nINTERSECT\nSELECT 2"},
		{"except", a.Except(b), "SELECT 1\nEXCEPT\nSELECT 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := tt.q.Render(Postgres)
			if sql != tt.want {
				t.Errorf("sql = %q, want %q", sql, tt.want)
			}
		})
	}
}

func TestSubqueryInFrom(t *testing.T) {
	users := testUsers()
	inner := Select(users.C("email")).From(users)
	sql, _ := Select(Raw("*")).From(Subquery{Query: inner, Alias: "emails"}).Render(Postgres)
	want := "SELECT *\nFROM (SELECT \"users\".\"email\"\nFROM \"users\") AS \"emails\""
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
}

func TestNamedWindowClause(t *testing.T) {
	users := testUsers()
	q := Select(
		users.C("email"),
		OverNamed{Fn: Call("row_number"), Name: "w"},
	).From(users).
		Window("w", NewWindow().PartitionBy(users.C("email")).OrderBy(Asc(users.C("createdAt")))).
		OrderBy(Asc(users.C("email")))

	sql, _ := q.Render(Postgres)
	wantWindow := `WINDOW "w" AS (PARTITION BY "users"."email" ORDER BY "users"."createdAt")`
	if !strings.Contains(sql, wantWindow) {
		t.Errorf("sql = %q, want to contain %q", sql, wantWindow)
	}
	// WINDOW sits between HAVING position and ORDER BY.
	if strings.Index(sql, "WINDOW ") > strings.Index(sql, "ORDER BY") {
		t.Errorf("WINDOW clause rendered after ORDER BY: %q", sql)
	}
	if !strings.Contains(sql, `row_number() OVER "w"`) {
		t.Errorf("sql = %q, want named OVER reference", sql)
	}
}

func TestBuilderImmutability(t *testing.T) {
	users := testUsers()
	base := Select(users.C("id")).From(users)

	short := base.Limit(1)
	filtered := base.Where(Eq{users.C("email"), Value{V: "x"}})

	baseSQL, _ := base.Render(Postgres)
	if strings.Contains(baseSQL, "LIMIT") || strings.Contains(baseSQL, "WHERE") {
		t.Errorf("base statement mutated by derived builders: %q", baseSQL)
	}

	shortSQL, _ := short.Render(Postgres)
	if strings.Contains(shortSQL, "WHERE") {
		t.Errorf("sibling builder leaked into derived statement: %q", shortSQL)
	}

	filteredSQL, _ := filtered.Render(Postgres)
	if !strings.Contains(filteredSQL, "WHERE") {
		t.Errorf("derived statement missing its own clause: %q", filteredSQL)
	}
}

// End-to-end rendering of the flag-update flow over a reminders table.
func TestReminderUpdateEndToEnd(t *testing.T) {
	reminders := NewTable("reminders").
		Column("id", TypeBigInt, NotNull()).
		Column("title", TypeText, NotNull()).
		Column("isFlagged", TypeBool, NotNull()).
		Column("isCompleted", TypeBool, NotNull()).
		PrimaryKey("id").
		Build()

	q := Update(reminders).
		Set(reminders.C("isFlagged"), Bool(true)).
		Where(reminders.C("isCompleted")).
		Returning(reminders.C("id").Unqualified(), reminders.C("title").Unqualified())

	sql, args := q.Render(Postgres)
	want := `UPDATE "reminders"
SET "isFlagged" = TRUE
WHERE "reminders"."isCompleted"
RETURNING "id", "title"`
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}
