package jsondiff

import "fmt"

// Kind is the classification of an Edit
type Kind string

const (
	// KindAdd is a value present only in the right document
	KindAdd = Kind("ADD")
	// KindDel is a value present only in the left document
	KindDel = Kind("DEL")
	// KindChg is a value present on both sides that differs
	KindChg = Kind("CHG")
)

// kindOrder is the order kinds are grouped in
var kindOrder = map[Kind]int{
	KindAdd: 0,
	KindDel: 1,
	KindChg: 2,
}

// Edit is a single classified difference between two documents.
// Left is nil for additions, Right is nil for deletions
type Edit struct {
	Kind  Kind
	Path  Path
	Left  Value
	Right Value
}

func (e Edit) String() string {
	return fmt.Sprintf("%s %s", e.Kind, e.Path)
}

// MarshalJSON writes an edit in compact array form:
// [kind, path, left, right]
func (e Edit) MarshalJSON() ([]byte, error) {
	return marshalNoEscape([]interface{}{e.Kind, e.Path.String(), jsonValue(e.Left), jsonValue(e.Right)})
}

// jsonValue keeps a nil Value from encoding as a nil json.Marshaler
func jsonValue(v Value) interface{} {
	if isNil(v) {
		return nil
	}
	return v
}

// Edits is an ordered collection of edits
type Edits []Edit

// Count returns the number of edits of kind k
func (es Edits) Count(k Kind) (n int) {
	for _, e := range es {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns the edits of kind k, keeping order
func (es Edits) Filter(k Kind) Edits {
	var filtered Edits
	for _, e := range es {
		if e.Kind == k {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
