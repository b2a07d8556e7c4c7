package jsondiff

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"znkr.io/diff"
	"znkr.io/diff/textdiff"
)

// Lines is a text diff strategy. Both documents are written as indented JSON
// with sorted keys & compared line by line. Each record's path is a single
// Index of zero-based line numbers. The zero value is ready to use
type Lines struct{}

var _ Strategy = (*Lines)(nil)

// NewLines creates a line based diff strategy
func NewLines() *Lines {
	return &Lines{}
}

// Compare implements the Strategy interface. Removed & added lines between two
// matching lines are paired up into changes, in order, with any overhang
// reported as removals or additions
func (l *Lines) Compare(ctx context.Context, left, right Value) ([]Record, error) {
	if err := checkRoot("left", left); err != nil {
		return nil, err
	}
	if err := checkRoot("right", right); err != nil {
		return nil, err
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	a, err := IndentJSON(left)
	if err != nil {
		return nil, err
	}
	b, err := IndentJSON(right)
	if err != nil {
		return nil, err
	}

	var (
		records    []Record
		x, y       int
		dels, adds []lineAt
	)

	flush := func() {
		n := len(dels)
		if len(adds) < n {
			n = len(adds)
		}
		for k := 0; k < n; k++ {
			records = append(records, Record{
				Path:  Path{Index{Left: dels[k].no, Right: adds[k].no}},
				Hint:  HintLineChanged,
				Left:  String(dels[k].text),
				Right: String(adds[k].text),
			})
		}
		for _, d := range dels[n:] {
			records = append(records, Record{Path: Path{Index{Left: d.no, Right: NoIndex}}, Hint: HintLineRemoved, Left: String(d.text)})
		}
		for _, a := range adds[n:] {
			records = append(records, Record{Path: Path{Index{Left: NoIndex, Right: a.no}}, Hint: HintLineAdded, Right: String(a.text)})
		}
		dels, adds = nil, nil
	}

	for _, edit := range textdiff.Edits(a, b, textdiff.IndentHeuristic()) {
		line := strings.TrimSuffix(edit.Line, "\n")
		switch edit.Op {
		case diff.Match:
			flush()
			x++
			y++
		case diff.Delete:
			dels = append(dels, lineAt{no: x, text: line})
			x++
		case diff.Insert:
			adds = append(adds, lineAt{no: y, text: line})
			y++
		}
	}
	flush()

	return records, nil
}

type lineAt struct {
	no   int
	text string
}

// IndentJSON writes v as JSON indented with four spaces, mapping keys sorted
func IndentJSON(v Value) (string, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	// Interface() produces go maps, which encoding/json writes in key order
	if err := enc.Encode(v.Interface()); err != nil {
		return "", err
	}
	return buf.String(), nil
}
