package jsondiff

import "fmt"

// IncomparableInputError is returned when a root value handed to a diff is not
// a Scalar, Sequence or Mapping. No partial result accompanies it
type IncomparableInputError struct {
	// Side is "left" or "right", empty when converting a single value
	Side  string
	Value interface{}
}

func (e *IncomparableInputError) Error() string {
	if e.Side == "" {
		return fmt.Sprintf("incomparable input of type %T", e.Value)
	}
	return fmt.Sprintf("%s input is not comparable: %T", e.Side, e.Value)
}

// MatchDepthExceededWarning signals that similarity scoring for the sequence
// at Path stopped at MaxDepth and fell back to exact equality below it.
// It is not fatal, the diff is still complete
type MatchDepthExceededWarning struct {
	Path     Path
	MaxDepth int
}

func (w MatchDepthExceededWarning) String() string {
	return fmt.Sprintf("match depth %d exceeded at %q, deeper values compared by exact equality", w.MaxDepth, w.Path.String())
}

// checkRoot ensures v is usable as a diff root
func checkRoot(side string, v Value) error {
	if isNil(v) {
		return &IncomparableInputError{Side: side, Value: v}
	}
	return nil
}
