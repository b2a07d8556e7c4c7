package jsondiff

// Stats holds statistical metadata about a diff
type Stats struct {
	Left  int `json:"leftNodes"`  // count of nodes in the left tree
	Right int `json:"rightNodes"` // count of nodes in the right tree

	LeftWeight  int `json:"leftWeight"`  // byte-ish count of left tree
	RightWeight int `json:"rightWeight"` // byte-ish count of right tree

	Adds int `json:"adds,omitempty"` // number of nodes added
	Dels int `json:"dels,omitempty"` // number of nodes deleted
	Chgs int `json:"chgs,omitempty"` // number of changed values
}

// NodeChange returns a count of the shift between left & right trees
func (s Stats) NodeChange() int {
	return s.Right - s.Left
}

// PctWeightChange returns a value from -1.0 to max(float64) representing the size shift
// between left & right trees
func (s Stats) PctWeightChange() float64 {
	if s.RightWeight == 0 {
		return 0
	}
	return float64(s.LeftWeight) / float64(s.RightWeight)
}

// calc resets s & fills it from a finished diff. added & deleted subtrees
// count every node they contain
func (s *Stats) calc(left, right Value, edits Edits) {
	*s = Stats{
		Left:        nodeCount(left),
		Right:       nodeCount(right),
		LeftWeight:  left.Weight(),
		RightWeight: right.Weight(),
	}
	for _, e := range edits {
		switch e.Kind {
		case KindAdd:
			s.Adds += nodeCount(e.Right)
		case KindDel:
			s.Dels += nodeCount(e.Left)
		case KindChg:
			s.Chgs++
		}
	}
}
