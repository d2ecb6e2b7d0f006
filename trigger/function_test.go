package trigger

import (
	"strings"
	"testing"

	"github.com/pthm/sequin"
)

func TestFunctionSQLWrapsBody(t *testing.T) {
	fn := NewFunction("update_updatedAt_users", sequin.Concat(
		assignNew("updatedAt", sequin.Now()),
		sequin.Literal("RETURN NEW;"),
	))

	got := fn.SQL(sequin.Postgres)
	want := `CREATE OR REPLACE FUNCTION "update_updatedAt_users"() RETURNS TRIGGER AS $$
BEGIN
    NEW."updatedAt" := CURRENT_TIMESTAMP;
    RETURN NEW;
END;
$$ LANGUAGE plpgsql;`
	if got != want {
		t.Errorf("SQL() = %q, want %q", got, want)
	}
}

func TestFunctionSQLKeepsExplicitBlock(t *testing.T) {
	body := sequin.Literal("BEGIN\n    RETURN NEW;\nEND;")
	fn := NewFunction("noop", body)

	got := fn.SQL(sequin.Postgres)
	if strings.Count(got, "BEGIN") != 1 {
		t.Errorf("pre-wrapped body wrapped again: %q", got)
	}
}

func TestFunctionSQLWithoutOrReplace(t *testing.T) {
	fn := Function{Name: "f", Body: sequin.Literal("RETURN NEW;")}
	got := fn.SQL(sequin.Postgres)
	if strings.HasPrefix(got, "CREATE OR REPLACE") {
		t.Errorf("OrReplace not set but emitted: %q", got)
	}
	if !strings.HasPrefix(got, `CREATE FUNCTION "f"()`) {
		t.Errorf("SQL() = %q", got)
	}
}

func TestFunctionLanguageOverride(t *testing.T) {
	fn := Function{Name: "f", Body: sequin.Literal("RETURN NEW;"), Language: "plv8"}
	got := fn.SQL(sequin.Postgres)
	if !strings.HasSuffix(got, "$$ LANGUAGE plv8;") {
		t.Errorf("SQL() = %q", got)
	}
}

func TestPseudoRecordRefs(t *testing.T) {
	tests := []struct {
		name string
		expr sequin.Expr
		want string
	}{
		{"new", NewRec("updatedAt"), `NEW."updatedAt"`},
		{"old", OldRec("id"), `OLD."id"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.Fragment().RenderInline(sequin.Postgres); got != tt.want {
				t.Errorf("render = %q, want %q", got, tt.want)
			}
		})
	}
}
