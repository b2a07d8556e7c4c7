package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/qri-io/jsondiff"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTMLOptions configures HTML output
type HTMLOptions struct {
	// Title is rendered as a heading above the table when set
	Title string
	// Minify strips whitespace & optional tags from the output
	Minify bool
}

// HTML writes edits as an HTML table fragment. The table is the Markdown
// table rendered through goldmark
func HTML(w io.Writer, edits jsondiff.Edits, opts HTMLOptions) error {
	md := &bytes.Buffer{}
	if opts.Title != "" {
		fmt.Fprintf(md, "# %s\n\n", opts.Title)
	}
	if err := Markdown(md, edits); err != nil {
		return err
	}

	conv := goldmark.New(goldmark.WithExtensions(extension.Table))
	out := &bytes.Buffer{}
	if err := conv.Convert(md.Bytes(), out); err != nil {
		return errors.Wrap(err, "rendering markdown")
	}

	if opts.Minify {
		m := minify.New()
		m.AddFunc("text/html", html.Minify)
		minified := &bytes.Buffer{}
		if err := m.Minify("text/html", minified, out); err != nil {
			return errors.Wrap(err, "minifying html")
		}
		out = minified
	}

	if _, err := out.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing html")
	}
	return nil
}
