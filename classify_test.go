package jsondiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestClassify(t *testing.T) {
	records := []Record{
		{Path: path("c"), Hint: HintValueChanged, Left: Number(1), Right: Number(2)},
		{Path: path("d"), Hint: HintMappingRemoved, Left: Number(3)},
		{Path: path("s", Index{1, NoIndex}), Hint: HintRepetitionRemoved, Left: Number(4), Right: Number(4)},
		{Path: path("s"), Hint: HintDepthExceeded, Left: Number(3)},
		{Path: path("e"), Hint: HintMappingAdded, Left: Number(9), Right: Number(5)},
		{Path: path("f"), Hint: HintTypeChanged, Left: Number(1), Right: String("1")},
		{Path: path("s", Index{NoIndex, 0}), Hint: HintSequenceAdded, Right: Bool(true)},
	}

	edits, warnings := Classify(records)

	expect := Edits{
		{Kind: KindAdd, Path: path("e"), Right: Number(5)},
		{Kind: KindAdd, Path: path("s", Index{NoIndex, 0}), Right: Bool(true)},
		{Kind: KindDel, Path: path("d"), Left: Number(3)},
		{Kind: KindDel, Path: path("s", Index{1, NoIndex}), Left: Number(4)},
		{Kind: KindChg, Path: path("c"), Left: Number(1), Right: Number(2)},
		{Kind: KindChg, Path: path("f"), Left: Number(1), Right: String("1")},
	}
	if diff := cmp.Diff(expect, edits, compareValues); diff != "" {
		t.Errorf("edits mismatch (-want +got):\n%s", diff)
	}

	expectWarnings := []MatchDepthExceededWarning{{Path: path("s"), MaxDepth: 3}}
	if diff := cmp.Diff(expectWarnings, warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}

	for _, e := range edits {
		switch e.Kind {
		case KindAdd:
			if e.Left != nil {
				t.Errorf("%s: addition has a left value", e)
			}
		case KindDel:
			if e.Right != nil {
				t.Errorf("%s: deletion has a right value", e)
			}
		}
	}
}

func TestClassifyEmpty(t *testing.T) {
	edits, warnings := Classify(nil)
	if diff := cmp.Diff(Edits{}, edits, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("edits mismatch (-want +got):\n%s", diff)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got: %v", warnings)
	}
}

func TestClassifyUnknownHint(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected Classify to panic on an unknown hint")
		}
	}()
	Classify([]Record{{Path: path("a"), Hint: Hint("dictionary_item_moved")}})
}

func TestEditsFilter(t *testing.T) {
	edits := Edits{
		{Kind: KindAdd, Path: path("a")},
		{Kind: KindChg, Path: path("b")},
		{Kind: KindAdd, Path: path("c")},
	}

	if n := edits.Count(KindAdd); n != 2 {
		t.Errorf("expected 2 additions, got: %d", n)
	}
	if n := edits.Count(KindDel); n != 0 {
		t.Errorf("expected 0 deletions, got: %d", n)
	}
	got := edits.Filter(KindAdd)
	if len(got) != 2 || got[0].Path.String() != "a" || got[1].Path.String() != "c" {
		t.Errorf("unexpected filter result: %v", got)
	}
}

func TestEditMarshalJSON(t *testing.T) {
	e := Edit{Kind: KindDel, Path: path("a", Index{2, NoIndex}), Left: NewMapping(Pair{Key: "x", Value: String("<y>")})}
	data, err := e.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	expect := `["DEL","a/2",{"x":"<y>"},null]`
	if string(data) != expect {
		t.Errorf("want: %s\ngot:  %s", expect, data)
	}
}
