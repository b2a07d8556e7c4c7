// Package jsondiff compares two semi-structured documents (JSON, or XML & YAML
// loaded into the same shape) and reports the structural differences between
// them as a flat list of classified edits: additions, deletions & changes,
// each anchored to a path into the document tree.
//
// Documents are trees of three kinds of Value:
//	*Mapping   keyed values, key order is ignored
//	*Sequence  lists, order is ignored by default
//	*Scalar    string, number, bool or null
//
// The interesting case is a sequence whose order carries no meaning, like an
// unordered list of routes, interfaces or ACL entries. Every value carries an
// order-insensitive content hash, so identical elements pair off first. Each
// remaining left element is then scored against each remaining right element:
// scalars score 1 when equal & 0 otherwise, mappings score the share of keys
// whose values match (weighted by their own score), sequences score the best
// matching one level down. Pairs are picked greedily, highest score first, ties
// going to the lowest left index & then the lowest right index. A pair scoring
// 0 is never matched. Matched pairs are diffed recursively, unmatched elements
// are reported as added or removed. The greedy pick is not guaranteed to find
// the smallest possible edit set.
//
// Matching runs behind the Strategy interface, alongside a positional strategy
// and a line based one. All strategies produce Records which Classify
// collapses into Edits, so output formatting never depends on how values were
// paired.
package jsondiff
