package main

import (
	"io"

	"github.com/qri-io/jsondiff"
	"github.com/qri-io/jsondiff/render"
)

// outputInput is everything a renderer may need besides the edits
type outputInput struct {
	leftName, rightName string
	color               bool
	minify              bool
}

func writeOutput(w io.Writer, output string, edits jsondiff.Edits, in outputInput) error {
	switch output {
	case "unified":
		return render.Unified(w, edits, render.UnifiedOptions{
			LeftName:  in.leftName,
			RightName: in.rightName,
			Color:     in.color,
		})
	case "markdown":
		return render.Markdown(w, edits)
	case "html":
		return render.HTML(w, edits, render.HTMLOptions{
			Title:  in.leftName + " vs " + in.rightName,
			Minify: in.minify,
		})
	case "json":
		return render.JSON(w, edits)
	default:
		return jsondiff.FormatPretty(w, edits, in.color)
	}
}
