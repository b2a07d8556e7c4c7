package render

import (
	"encoding/json"
	"io"

	"github.com/qri-io/jsondiff"
)

// JSON writes edits as a JSON array of compact [kind, path, left, right]
// arrays, followed by a newline. No edits write an empty array
func JSON(w io.Writer, edits jsondiff.Edits) error {
	if edits == nil {
		edits = jsondiff.Edits{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(edits)
}
