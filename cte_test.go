package sequin

import (
	"strings"
	"testing"
)

func cteFixtures() (categories, tree Table) {
	categories = NewTable("categories").
		Column("id", TypeBigInt, NotNull()).
		Column("parentId", TypeBigInt).
		PrimaryKey("id").
		Build()
	// A table descriptor standing in for the CTE's own name, so the
	// recursive branch can select from it.
	tree = NewTable("tree").
		Column("id", TypeBigInt).
		Column("parentId", TypeBigInt).
		Build()
	return categories, tree
}

func TestWithSimpleCTE(t *testing.T) {
	categories, _ := cteFixtures()

	base := Select(categories.C("id")).From(categories).Where(IsNull{categories.C("parentId")})
	w := NewWith(
		Select(Raw("*")).From(Raw(`"roots"`)),
		CTE{Name: "roots", Query: base},
	)

	sql, args := w.Render(Postgres)
	wantPrefix := "WITH \"roots\" AS (\n"
	if !strings.HasPrefix(sql, wantPrefix) {
		t.Errorf("sql = %q, want prefix %q", sql, wantPrefix)
	}
	if strings.Contains(sql, "RECURSIVE") {
		t.Errorf("non-recursive CTE rendered RECURSIVE: %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v", args)
	}
}

func TestWithInfersRecursive(t *testing.T) {
	categories, tree := cteFixtures()

	// Base branch from categories, recursive branch unioning against the
	// CTE's own name.
	defn := Select(categories.C("id"), categories.C("parentId")).
		From(categories).
		Where(IsNull{categories.C("parentId")}).
		UnionAll(
			Select(categories.C("id"), categories.C("parentId")).
				From(categories).
				Join(tree, Eq{categories.C("parentId"), tree.C("id")}),
		)

	w := NewWith(
		Select(Raw("*")).From(tree),
		CTE{Name: "tree", Columns: []string{"id", "parentId"}, Query: defn},
	)

	sql, _ := w.Render(Postgres)
	if !strings.HasPrefix(sql, "WITH RECURSIVE ") {
		t.Errorf("self-unioning CTE should render RECURSIVE: %q", sql)
	}
	if !strings.Contains(sql, `"tree"("id", "parentId") AS (`) {
		t.Errorf("sql = %q, want declared column list", sql)
	}
}

func TestWithTwoDifferentTablesNotRecursive(t *testing.T) {
	categories, _ := cteFixtures()
	archived := NewTable("archived_categories").
		Column("id", TypeBigInt).
		Build()

	defn := Select(categories.C("id")).From(categories).
		Union(Select(archived.C("id")).From(archived))

	w := NewWith(
		Select(Raw("*")).From(Raw(`"all_categories"`)),
		CTE{Name: "all_categories", Query: defn},
	)

	sql, _ := w.Render(Postgres)
	if strings.Contains(sql, "RECURSIVE") {
		t.Errorf("union of two distinct tables must not render RECURSIVE: %q", sql)
	}
}

func TestWithExplicitRecursiveFlag(t *testing.T) {
	categories, _ := cteFixtures()

	w := NewWith(
		Select(Raw("*")).From(Raw(`"c"`)),
		CTE{Name: "c", Query: Select(categories.C("id")).From(categories), Recursive: true},
	)
	sql, _ := w.Render(Postgres)
	if !strings.HasPrefix(sql, "WITH RECURSIVE ") {
		t.Errorf("explicit Recursive flag ignored: %q", sql)
	}
}

func TestWithMaterialization(t *testing.T) {
	categories, _ := cteFixtures()
	defn := Select(categories.C("id")).From(categories)

	tests := []struct {
		name string
		m    Materialization
		want string
	}{
		{"materialized", Materialized, `"c" AS MATERIALIZED (`},
		{"not materialized", NotMaterialized, `"c" AS NOT MATERIALIZED (`},
		{"default", MaterializeDefault, `"c" AS (`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWith(
				Select(Raw("*")).From(Raw(`"c"`)),
				CTE{Name: "c", Query: defn, Materialization: tt.m},
			)
			sql, _ := w.Render(Postgres)
			if !strings.Contains(sql, tt.want) {
				t.Errorf("sql = %q, want to contain %q", sql, tt.want)
			}
		})
	}
}

func TestWithDropsEmptyCTE(t *testing.T) {
	categories, _ := cteFixtures()

	live := Select(categories.C("id")).From(categories)
	dead := Select(categories.C("id")).From(categories).Where(None)

	w := NewWith(
		Select(Raw("*")).From(Raw(`"live"`)),
		CTE{Name: "live", Query: live},
		CTE{Name: "dead", Query: dead},
	)

	sql, _ := w.Render(Postgres)
	if strings.Contains(sql, `"dead"`) {
		t.Errorf("empty-rendering CTE not dropped: %q", sql)
	}
	if !strings.Contains(sql, `"live" AS (`) {
		t.Errorf("live CTE missing: %q", sql)
	}
}

func TestWithAllCTEsEmptyIsNoOp(t *testing.T) {
	categories, _ := cteFixtures()
	dead := Select(categories.C("id")).From(categories).Where(None)

	w := NewWith(
		Select(Raw("*")).From(Raw(`"dead"`)),
		CTE{Name: "dead", Query: dead},
	)

	sql, args := w.Render(Postgres)
	if sql != "" || len(args) != 0 {
		t.Errorf("Render() = (%q, %v), want empty no-op", sql, args)
	}
}

func TestWithMultipleCTEs(t *testing.T) {
	categories, _ := cteFixtures()
	defn := Select(categories.C("id")).From(categories)

	w := NewWith(
		Select(Raw("*")).From(Raw(`"b"`)),
		CTE{Name: "a", Query: defn},
		CTE{Name: "b", Query: Select(Raw("*")).From(Raw(`"a"`))},
	)
	sql, _ := w.Render(Postgres)
	if !strings.Contains(sql, "),\n\"b\" AS (") {
		t.Errorf("CTE list separator wrong: %q", sql)
	}
}
