package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pkg/errors"
	"github.com/qri-io/jsondiff"
	"znkr.io/diff"
	"znkr.io/diff/textdiff"
)

// UnifiedOptions configures unified diff output
type UnifiedOptions struct {
	// LeftName & RightName label the "---" and "+++" header lines, they
	// default to "left" & "right"
	LeftName, RightName string
	// Color highlights the diff with ANSI escapes
	Color bool
}

// Unified writes edits as a unified style diff. Each edit is a hunk headed by
// its kind & path, with the left value as removed lines & the right value as
// added lines, both rendered as indented JSON. Changed values are diffed line
// by line so unchanged lines within them show as context. Nothing is written
// when there are no edits
func Unified(w io.Writer, edits jsondiff.Edits, opts UnifiedOptions) error {
	if len(edits) == 0 {
		return nil
	}
	if opts.LeftName == "" {
		opts.LeftName = "left"
	}
	if opts.RightName == "" {
		opts.RightName = "right"
	}

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "--- %s\n+++ %s\n", opts.LeftName, opts.RightName)
	for _, e := range edits {
		if err := writeHunk(buf, e); err != nil {
			return err
		}
	}

	if opts.Color {
		colored := &bytes.Buffer{}
		if err := highlight(colored, buf.String()); err != nil {
			return err
		}
		buf = colored
	}

	if _, err := buf.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing diff")
	}
	return nil
}

func writeHunk(buf *bytes.Buffer, e jsondiff.Edit) error {
	p := e.Path.String()
	if p == "" {
		p = "(root)"
	}
	fmt.Fprintf(buf, "@@ %s %s @@\n", e.Kind, p)

	a, err := indented(e.Left)
	if err != nil {
		return err
	}
	b, err := indented(e.Right)
	if err != nil {
		return err
	}

	for _, ed := range textdiff.Edits(a, b, textdiff.IndentHeuristic()) {
		switch ed.Op {
		case diff.Match:
			buf.WriteByte(' ')
		case diff.Delete:
			buf.WriteByte('-')
		case diff.Insert:
			buf.WriteByte('+')
		}
		buf.WriteString(ed.Line)
	}
	return nil
}

// indented renders v as indented JSON, absent values have no lines
func indented(v jsondiff.Value) (string, error) {
	if v == nil {
		return "", nil
	}
	return jsondiff.IndentJSON(v)
}

// highlight writes a unified diff to w with terminal colors
func highlight(w io.Writer, diff string) error {
	lexer := lexers.Get("diff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	formatter := formatters.Get("terminal256")

	it, err := lexer.Tokenise(nil, diff)
	if err != nil {
		return errors.Wrap(err, "tokenising diff")
	}
	return errors.Wrap(formatter.Format(w, style, it), "formatting diff")
}
