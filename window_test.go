package sequin

import (
	"errors"
	"testing"
)

func TestFrameBoundRendering(t *testing.T) {
	tests := []struct {
		name string
		spec FrameSpec
		want string
	}{
		{"rows unbounded preceding", Frame(FrameRows, UnboundedPreceding()), "ROWS UNBOUNDED PRECEDING"},
		{"rows n preceding", Frame(FrameRows, Preceding(3)), "ROWS 3 PRECEDING"},
		{"range current row", Frame(FrameRange, CurrentRow()), "RANGE CURRENT ROW"},
		{"groups following", Frame(FrameGroups, Following(2)), "GROUPS 2 FOLLOWING"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := tt.spec.fragment().Render(Postgres)
			if got != tt.want {
				t.Errorf("fragment = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFrameBetween(t *testing.T) {
	spec, err := FrameBetween(FrameRows, UnboundedPreceding(), CurrentRow())
	if err != nil {
		t.Fatalf("FrameBetween() error: %v", err)
	}
	got, _ := spec.fragment().Render(Postgres)
	want := "ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW"
	if got != want {
		t.Errorf("fragment = %q, want %q", got, want)
	}
}

func TestFrameBetweenRejectsReversedBounds(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi FrameBound
	}{
		{"following before preceding", Following(1), Preceding(1)},
		{"current row before unbounded preceding", CurrentRow(), UnboundedPreceding()},
		{"unbounded following before current row", UnboundedFollowing(), CurrentRow()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FrameBetween(FrameRows, tt.lo, tt.hi)
			if err == nil {
				t.Fatal("FrameBetween() = nil error, want ErrInvalidFrame")
			}
			if !errors.Is(err, ErrInvalidFrame) {
				t.Errorf("errors.Is(err, ErrInvalidFrame) = false for %v", err)
			}
			if !IsInvalidFrameErr(err) {
				t.Errorf("IsInvalidFrameErr(%v) = false", err)
			}
		})
	}
}

func TestWindowDefOrder(t *testing.T) {
	users := testUsers()
	frame, err := FrameBetween(FrameRows, UnboundedPreceding(), CurrentRow())
	if err != nil {
		t.Fatalf("FrameBetween() error: %v", err)
	}

	// Calls out of clause order still render PARTITION BY, ORDER BY, frame.
	def := NewWindow().
		Frame(frame).
		OrderBy(Desc(users.C("createdAt"))).
		PartitionBy(users.C("email"))

	got, _ := def.Fragment().Render(Postgres)
	want := `PARTITION BY "users"."email" ORDER BY "users"."createdAt" DESC ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW`
	if got != want {
		t.Errorf("fragment = %q, want %q", got, want)
	}
}

func TestOverInline(t *testing.T) {
	users := testUsers()
	e := Over{
		Fn:  Call("row_number"),
		Def: NewWindow().PartitionBy(users.C("email")),
	}
	if got := renderSQL(t, e); got != `row_number() OVER (PARTITION BY "users"."email")` {
		t.Errorf("render = %q", got)
	}
}

func TestOverNamed(t *testing.T) {
	e := OverNamed{Fn: Call("rank"), Name: "w"}
	if got := renderSQL(t, e); got != `rank() OVER "w"` {
		t.Errorf("render = %q", got)
	}
}
