package jsondiff

import "context"

// Strategy compares two documents, producing raw records that Classify turns
// into Edits. Strategies differ in how they pair up values, the records they
// return all share one shape so renderers never see matching internals
type Strategy interface {
	Compare(ctx context.Context, left, right Value) ([]Record, error)
}

// Hint records why a strategy emitted a Record
type Hint string

const (
	HintMappingAdded      = Hint("mapping_item_added")
	HintMappingRemoved    = Hint("mapping_item_removed")
	HintSequenceAdded     = Hint("sequence_item_added")
	HintSequenceRemoved   = Hint("sequence_item_removed")
	HintRepetitionAdded   = Hint("repetition_added")
	HintRepetitionRemoved = Hint("repetition_removed")
	HintValueChanged      = Hint("values_changed")
	HintTypeChanged       = Hint("type_changed")
	HintLineAdded         = Hint("line_added")
	HintLineRemoved       = Hint("line_removed")
	HintLineChanged       = Hint("line_changed")
	// HintDepthExceeded is metadata, not a difference. Classify turns it
	// into a MatchDepthExceededWarning. Left holds the depth limit as a Number
	HintDepthExceeded = Hint("match_depth_exceeded")
)

// Record is an unclassified comparison result
type Record struct {
	Path  Path
	Hint  Hint
	Left  Value
	Right Value
}
