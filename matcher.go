package jsondiff

import (
	"context"
	"sort"

	"github.com/go-kit/kit/log"
)

// Matcher is the structural diff strategy. Mappings are compared key by key.
// Sequences are compared either by position, or (when IgnoreOrder is set) as
// unordered collections: every left element is scored against every right
// element & pairs are picked greedily from the highest score down
type Matcher struct {
	cfg *Config
}

var _ Strategy = (*Matcher)(nil)

// NewMatcher creates a structural diff strategy
func NewMatcher(opts ...Option) *Matcher {
	return &Matcher{cfg: newConfig(opts)}
}

// NewPositional creates a structural diff strategy that pairs sequence
// elements by index
func NewPositional(opts ...Option) *Matcher {
	return NewMatcher(append(opts, OptionIgnoreOrder(false))...)
}

// Compare implements the Strategy interface
func (m *Matcher) Compare(ctx context.Context, left, right Value) ([]Record, error) {
	if err := checkRoot("left", left); err != nil {
		return nil, err
	}
	if err := checkRoot("right", right); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := m.cfg
	if cfg == nil {
		cfg = DefaultConfig()
	}

	st := &matchState{
		ctx:    ctx,
		cfg:    cfg,
		logger: cfg.Logger,
	}
	if st.logger == nil {
		st.logger = log.NewNopLogger()
	}
	if !cfg.DisableCache {
		st.cache = map[simKey]simEntry{}
	}

	st.compare(Path{}, left, right)
	if st.err != nil {
		return nil, st.err
	}
	return st.records, nil
}

// matchState holds everything needed for a single Compare call
type matchState struct {
	ctx     context.Context
	cfg     *Config
	logger  log.Logger
	cache   map[simKey]simEntry
	records []Record
	// set when similarity scoring hit MaxMatchDepth
	exceeded bool
	err      error
}

// simKey identifies a similarity computation by the identity of both values.
// Hashes may collide, so they never stand in for the values themselves
type simKey struct {
	left, right Value
	depth       int
}

type simEntry struct {
	score    float64
	exceeded bool
}

func (st *matchState) emit(p Path, hint Hint, left, right Value) {
	st.records = append(st.records, Record{Path: p, Hint: hint, Left: left, Right: right})
}

// compare emits records for every difference between l & r, both located at p
func (st *matchState) compare(p Path, l, r Value) {
	if st.err != nil || st.equal(l, r) {
		return
	}

	if l.Variant() != r.Variant() {
		st.emit(p, HintTypeChanged, l, r)
		return
	}

	switch lv := l.(type) {
	case *Scalar:
		st.emit(p, HintValueChanged, l, r)
	case *Mapping:
		st.compareMappings(p, lv, r.(*Mapping))
	case *Sequence:
		if st.cfg.IgnoreOrder {
			st.matchSequences(p, lv, r.(*Sequence))
		} else {
			st.pairSequences(p, lv, r.(*Sequence))
		}
	}
}

// equal is the equality compare stops at, positional comparison needs
// sequences in the same order
func (st *matchState) equal(l, r Value) bool {
	if st.cfg.IgnoreOrder {
		return Equal(l, r)
	}
	return EqualOrdered(l, r)
}

func (st *matchState) compareMappings(p Path, l, r *Mapping) {
	for _, k := range l.keys {
		rv, ok := r.vals[k]
		if !ok {
			st.emit(p.Append(Key(k)), HintMappingRemoved, l.vals[k], nil)
			continue
		}
		st.compare(p.Append(Key(k)), l.vals[k], rv)
	}
	for _, k := range r.keys {
		if _, ok := l.vals[k]; !ok {
			st.emit(p.Append(Key(k)), HintMappingAdded, nil, r.vals[k])
		}
	}
}

// pairSequences compares elements index by index, any overhang is added or
// removed
func (st *matchState) pairSequences(p Path, l, r *Sequence) {
	n := len(l.items)
	if len(r.items) < n {
		n = len(r.items)
	}
	for i := 0; i < n; i++ {
		st.compare(p.Append(Index{Left: i, Right: i}), l.items[i], r.items[i])
	}
	for i := n; i < len(l.items); i++ {
		st.emit(p.Append(Index{Left: i, Right: NoIndex}), HintSequenceRemoved, l.items[i], nil)
	}
	for j := n; j < len(r.items); j++ {
		st.emit(p.Append(Index{Left: NoIndex, Right: j}), HintSequenceAdded, nil, r.items[j])
	}
}

// matchSequences pairs elements by similarity, recursing into matched pairs
// & reporting the leftovers
func (st *matchState) matchSequences(p Path, l, r *Sequence) {
	if err := st.ctx.Err(); err != nil {
		st.err = err
		return
	}

	st.exceeded = false
	pg := st.pair(l.items, r.items, 1)
	if st.exceeded {
		st.exceeded = false
		st.emit(p, HintDepthExceeded, Number(float64(st.cfg.MaxMatchDepth)), nil)
		st.logger.Log("warn", "match depth exceeded", "path", p.String(), "max_depth", st.cfg.MaxMatchDepth)
	}

	for i, lv := range l.items {
		if j := pg.left[i]; j != NoIndex {
			st.compare(p.Append(Index{Left: i, Right: j}), lv, r.items[j])
			continue
		}
		hint := HintSequenceRemoved
		if pg.rightHashes.contains(lv) {
			if !st.cfg.ReportRepetition {
				continue
			}
			hint = HintRepetitionRemoved
		}
		st.emit(p.Append(Index{Left: i, Right: NoIndex}), hint, lv, nil)
	}

	for j, rv := range r.items {
		if pg.right[j] != NoIndex {
			continue
		}
		hint := HintSequenceAdded
		if pg.leftHashes.contains(rv) {
			if !st.cfg.ReportRepetition {
				continue
			}
			hint = HintRepetitionAdded
		}
		st.emit(p.Append(Index{Left: NoIndex, Right: j}), hint, nil, rv)
	}
}

// pairing is the result of matching two lists of values
type pairing struct {
	// left[i] is the right index matched to left element i, or NoIndex
	left []int
	// right[j] is the left index matched to right element j, or NoIndex
	right []int
	// sum of the scores of all matched pairs
	total float64

	leftHashes, rightHashes hashIndex
}

func (pg *pairing) link(i, j int, score float64) {
	pg.left[i] = j
	pg.right[j] = i
	pg.total += score
}

// hashIndex groups list positions by value hash
type hashIndex struct {
	vals    []Value
	buckets map[string][]int
}

func newHashIndex(vals []Value) hashIndex {
	idx := hashIndex{vals: vals, buckets: make(map[string][]int, len(vals))}
	for i, v := range vals {
		k := string(v.Hash())
		idx.buckets[k] = append(idx.buckets[k], i)
	}
	return idx
}

func (idx hashIndex) contains(v Value) bool {
	for _, i := range idx.buckets[string(v.Hash())] {
		if Equal(v, idx.vals[i]) {
			return true
		}
	}
	return false
}

// candidate is a potential match between left element i & right element j
type candidate struct {
	i, j  int
	score float64
}

// pair matches elements of ls to elements of rs. Candidates are taken in
// descending score order, ties broken by ascending left index, then ascending
// right index. Pairs scoring 0 are never matched. Identical elements score 1,
// the maximum, so they're linked up front in that same order before scoring
// the remainder
func (st *matchState) pair(ls, rs []Value, depth int) *pairing {
	pg := &pairing{
		left:        make([]int, len(ls)),
		right:       make([]int, len(rs)),
		leftHashes:  newHashIndex(ls),
		rightHashes: newHashIndex(rs),
	}
	for i := range pg.left {
		pg.left[i] = NoIndex
	}
	for j := range pg.right {
		pg.right[j] = NoIndex
	}

	for i, lv := range ls {
		for _, j := range pg.rightHashes.buckets[string(lv.Hash())] {
			if pg.right[j] == NoIndex && Equal(lv, rs[j]) {
				pg.link(i, j, 1)
				break
			}
		}
	}

	var cands []candidate
	for i, lv := range ls {
		if pg.left[i] != NoIndex {
			continue
		}
		for j, rv := range rs {
			if pg.right[j] != NoIndex {
				continue
			}
			if score := st.similarity(lv, rv, depth); score > 0 {
				cands = append(cands, candidate{i: i, j: j, score: score})
			}
		}
	}

	sort.Slice(cands, func(a, b int) bool {
		ca, cb := cands[a], cands[b]
		if ca.score != cb.score {
			return ca.score > cb.score
		}
		if ca.i != cb.i {
			return ca.i < cb.i
		}
		return ca.j < cb.j
	})

	for _, c := range cands {
		if pg.left[c.i] == NoIndex && pg.right[c.j] == NoIndex {
			pg.link(c.i, c.j, c.score)
		}
	}
	return pg
}

// similarity scores how alike a & b are in the range [0,1]. depth is the
// number of levels below the sequence being matched
func (st *matchState) similarity(a, b Value, depth int) float64 {
	if a.Variant() != b.Variant() {
		return 0
	}
	if Equal(a, b) {
		return 1
	}
	if a.Variant() == VariantScalar {
		return 0
	}
	if st.cfg.MaxMatchDepth > 0 && depth > st.cfg.MaxMatchDepth {
		// past the limit values are opaque, and these aren't equal
		st.exceeded = true
		return 0
	}

	key := simKey{left: a, right: b, depth: depth}
	if st.cache != nil {
		if e, ok := st.cache[key]; ok {
			st.exceeded = st.exceeded || e.exceeded
			return e.score
		}
	}

	prev := st.exceeded
	st.exceeded = false

	var score float64
	switch x := a.(type) {
	case *Mapping:
		score = st.mappingSimilarity(x, b.(*Mapping), depth)
	case *Sequence:
		score = st.sequenceSimilarity(x, b.(*Sequence), depth)
	}

	if st.cache != nil {
		st.cache[key] = simEntry{score: score, exceeded: st.exceeded}
	}
	st.exceeded = prev || st.exceeded
	return score
}

// mappingSimilarity is the sum of shared key similarities over the number of
// distinct keys on both sides
func (st *matchState) mappingSimilarity(a, b *Mapping, depth int) float64 {
	keys := len(a.keys)
	var sum float64
	for _, k := range a.keys {
		if bv, ok := b.vals[k]; ok {
			sum += st.similarity(a.vals[k], bv, depth+1)
		}
	}
	for _, k := range b.keys {
		if _, ok := a.vals[k]; !ok {
			keys++
		}
	}
	if keys == 0 {
		return 1
	}
	return sum / float64(keys)
}

// sequenceSimilarity matches the two sequences one level deeper & scores
// the total of matched pairs over the longer length
func (st *matchState) sequenceSimilarity(a, b *Sequence, depth int) float64 {
	longest := len(a.items)
	if len(b.items) > longest {
		longest = len(b.items)
	}
	if longest == 0 {
		return 1
	}
	pg := st.pair(a.items, b.items, depth+1)
	return pg.total / float64(longest)
}
