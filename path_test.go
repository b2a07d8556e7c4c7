package jsondiff

import "testing"

func TestPathString(t *testing.T) {
	cases := []struct {
		p      Path
		expect string
	}{
		{Path{}, ""},
		{path("a"), "a"},
		{path("a", 0, "b"), "a/0/b"},
		{path(Index{3, 5}), "3->5"},
		{path(Index{3, NoIndex}), "3"},
		{path(Index{NoIndex, 5}), "5"},
		{path("routes", Index{1, 0}, "via"), "routes/1->0/via"},
	}

	for _, c := range cases {
		if got := c.p.String(); got != c.expect {
			t.Errorf("expected: %q, got: %q", c.expect, got)
		}
	}
}

func TestPathAppend(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = Key("a")

	x := base.Append(Key("x"))
	y := base.Append(Key("y"))

	if x.String() != "a/x" || y.String() != "a/y" {
		t.Errorf("appends share backing storage: %q, %q", x, y)
	}
	if len(base) != 1 {
		t.Errorf("base path was modified: %q", base)
	}
}
