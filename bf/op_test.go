package bf

import "testing"

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func TestOpKindFoldable(t *testing.T) {
	foldable := []OpKind{Inc, Dec, Left, Right, Input, Output}
	for _, k := range foldable {
		assert(t, k.Foldable(), "expected %s to be foldable", k)
		assert(t, !k.IsBracket(), "expected %s to not be a bracket", k)
	}

	brackets := []OpKind{JmpFwdIfZero, JmpBackIfNonZero}
	for _, k := range brackets {
		assert(t, !k.Foldable(), "expected %s to not be foldable", k)
		assert(t, k.IsBracket(), "expected %s to be a bracket", k)
	}
}

func TestOpKindString(t *testing.T) {
	cases := map[OpKind]string{
		Inc:              "inc",
		Dec:              "dec",
		Left:             "left",
		Right:            "right",
		Input:            "input",
		Output:           "output",
		JmpFwdIfZero:     "jfz",
		JmpBackIfNonZero: "jnz",
	}
	for k, want := range cases {
		assert(t, k.String() == want, "OpKind(%d).String() = %q, want %q", k, k.String(), want)
	}
}
