// Package render writes jsondiff results for people: a unified line diff of
// the two documents, or a table of edits as Markdown or HTML
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/qri-io/jsondiff"
)

// rootPath stands in for the empty path of a whole-document edit
const rootPath = "(root)"

// Markdown writes edits as a GitHub flavoured Markdown table with one row per
// edit. Paths & values are code spans, absent values are empty cells
func Markdown(w io.Writer, edits jsondiff.Edits) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("| Kind | Path | Left | Right |\n")
	bw.WriteString("| --- | --- | --- | --- |\n")
	for _, e := range edits {
		p := e.Path.String()
		if p == "" {
			p = rootPath
		}
		left, err := valueCell(e.Left)
		if err != nil {
			return err
		}
		right, err := valueCell(e.Right)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "| %s | %s | %s | %s |\n", e.Kind, codeSpan(p), left, right)
	}
	return bw.Flush()
}

func valueCell(v jsondiff.Value) (string, error) {
	if jsondiff.VariantOf(v) == jsondiff.VariantUnknown {
		return "", nil
	}
	data, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	return codeSpan(string(data)), nil
}

// codeSpan wraps s in backticks, using a longer fence when s holds backticks
// itself. Pipes are escaped so they can't end the table cell
func codeSpan(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.Contains(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}
