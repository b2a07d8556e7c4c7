package jsondiff

import (
	"fmt"
	"sort"
)

// hintKinds collapses strategy-specific record hints into edit kinds
var hintKinds = map[Hint]Kind{
	HintMappingAdded:      KindAdd,
	HintSequenceAdded:     KindAdd,
	HintRepetitionAdded:   KindAdd,
	HintLineAdded:         KindAdd,
	HintMappingRemoved:    KindDel,
	HintSequenceRemoved:   KindDel,
	HintRepetitionRemoved: KindDel,
	HintLineRemoved:       KindDel,
	HintValueChanged:      KindChg,
	HintTypeChanged:       KindChg,
	HintLineChanged:       KindChg,
}

// Classify converts raw strategy records into canonical edits, grouped by kind
// in the order ADD, DEL, CHG. Within a kind, edits keep the order records were
// produced in. Depth limit records become warnings. Classify panics on a hint
// it doesn't know, which only a broken Strategy can produce
func Classify(records []Record) (Edits, []MatchDepthExceededWarning) {
	var (
		edits    = make(Edits, 0, len(records))
		warnings []MatchDepthExceededWarning
	)

	for _, rec := range records {
		if rec.Hint == HintDepthExceeded {
			w := MatchDepthExceededWarning{Path: rec.Path}
			if n, ok := rec.Left.(*Scalar); ok && n.kind == ScalarNumber {
				w.MaxDepth = int(n.num)
			}
			warnings = append(warnings, w)
			continue
		}

		kind, ok := hintKinds[rec.Hint]
		if !ok {
			panic(fmt.Sprintf("jsondiff: unknown record hint %q at %q", rec.Hint, rec.Path.String()))
		}

		e := Edit{Kind: kind, Path: rec.Path, Left: rec.Left, Right: rec.Right}
		switch kind {
		case KindAdd:
			e.Left = nil
		case KindDel:
			e.Right = nil
		}
		edits = append(edits, e)
	}

	sort.SliceStable(edits, func(i, j int) bool {
		return kindOrder[edits[i].Kind] < kindOrder[edits[j].Kind]
	})
	return edits, warnings
}
