package jsondiff

import (
	"strconv"
	"strings"
)

// NoIndex marks a sequence position that has no slot on one side of a diff
const NoIndex = -1

// Segment is a single step in a Path, either a Key or an Index
type Segment interface {
	String() string
	segment()
}

// Key addresses a mapping entry
type Key string

func (k Key) segment()       {}
func (k Key) String() string { return string(k) }

// Index addresses a sequence element on both sides of a diff. Left is the
// element position in the left document, Right the position of its match in
// the right document. Either is NoIndex when the element exists on one side
// only
type Index struct {
	Left, Right int
}

func (i Index) segment() {}

// String renders the index. matched elements that moved render as "L->R"
func (i Index) String() string {
	switch {
	case i.Left == NoIndex:
		return strconv.Itoa(i.Right)
	case i.Right == NoIndex || i.Left == i.Right:
		return strconv.Itoa(i.Left)
	default:
		return strconv.Itoa(i.Left) + "->" + strconv.Itoa(i.Right)
	}
}

// Path is a location in a document tree, starting from the root
type Path []Segment

// Append returns a new path with s added to the end. p is never modified
func (p Path) Append(s Segment) Path {
	np := make(Path, len(p), len(p)+1)
	copy(np, p)
	return append(np, s)
}

// Strings renders each path segment
func (p Path) Strings() []string {
	strs := make([]string, len(p))
	for i, s := range p {
		strs[i] = s.String()
	}
	return strs
}

// String joins path segments with a slash. The root path is the empty string
func (p Path) String() string {
	return strings.Join(p.Strings(), "/")
}
