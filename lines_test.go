package jsondiff

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLines(t *testing.T) {
	RunTestCases(t, []TestCase{
		{
			"identical",
			`{"b":[1,2],"a":null}`,
			`{"a":null,"b":[1,2]}`,
			nil,
		},
		{
			"changed line",
			`{"a":1,"b":2}`,
			`{"a":1,"b":3}`,
			Edits{
				{Kind: KindChg, Path: path(Index{2, 2}), Left: String(`    "b": 2`), Right: String(`    "b": 3`)},
			},
		},
		{
			"added key changes the line before it",
			`{"a":1}`,
			`{"a":1,"b":2}`,
			Edits{
				{Kind: KindAdd, Path: path(Index{NoIndex, 2}), Right: String(`    "b": 2`)},
				{Kind: KindChg, Path: path(Index{1, 1}), Left: String(`    "a": 1`), Right: String(`    "a": 1,`)},
			},
		},
	}, OptionStrategy(NewLines()))
}

func TestLinesOrderMatters(t *testing.T) {
	recs, err := NewLines().Compare(context.Background(), mustJSON(t, `[1,2]`), mustJSON(t, `[2,1]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) == 0 {
		t.Error("expected reordered sequences to produce line records")
	}
	for _, r := range recs {
		if r.Hint != HintLineAdded && r.Hint != HintLineRemoved && r.Hint != HintLineChanged {
			t.Errorf("unexpected hint: %s", r.Hint)
		}
	}

	var zero Lines
	zrecs, err := zero.Compare(context.Background(), mustJSON(t, `[1,2]`), mustJSON(t, `[2,1]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(zrecs) != len(recs) {
		t.Errorf("zero value Lines: expected %d records, got %d", len(recs), len(zrecs))
	}

	if _, err := NewLines().Compare(context.Background(), nil, Null()); err == nil {
		t.Error("expected an error for a nil root")
	}
}

func TestIndentJSON(t *testing.T) {
	got, err := IndentJSON(mustJSON(t, `{"b":"<&>","a":[1,{}]}`))
	if err != nil {
		t.Fatal(err)
	}
	expect := `{
    "a": [
        1,
        {}
    ],
    "b": "<&>"
}
`
	if diff := cmp.Diff(expect, got, cmpopts.AcyclicTransformer("lines", func(s string) []string { return strings.Split(s, "\n") })); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}
