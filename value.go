package jsondiff

import (
	"bytes"
	"encoding/json"
	"hash"
	"hash/fnv"
	"math"
	"sort"
	"strconv"
)

// Variant distinguishes the three shapes a Value can take
type Variant uint8

const (
	// VariantUnknown is the variant of a nil value. It should never be
	// encountered inside a well-formed tree
	VariantUnknown Variant = iota
	// VariantScalar is a string, number, boolean or null
	VariantScalar
	// VariantSequence is an ordered list of values
	VariantSequence
	// VariantMapping is a set of uniquely keyed values
	VariantMapping
)

func (v Variant) String() string {
	switch v {
	case VariantScalar:
		return "Scalar"
	case VariantSequence:
		return "Sequence"
	case VariantMapping:
		return "Mapping"
	default:
		return "Unknown"
	}
}

// Value is an immutable document tree node. The only implementations are
// *Scalar, *Sequence and *Mapping
type Value interface {
	Variant() Variant
	// Hash is an order-insensitive digest of this value & all descendants.
	// Equal values always have equal hashes
	Hash() []byte
	// Weight is a byte-ish measure of value size, compounds weigh 1 plus the
	// weight of their children
	Weight() int
	// Interface returns the plain go value this node represents:
	// map[string]interface{}, []interface{}, string, float64, bool or nil
	Interface() interface{}
	MarshalJSON() ([]byte, error)

	value()
}

// VariantOf returns the variant of v, VariantUnknown for nil
func VariantOf(v Value) Variant {
	if isNil(v) {
		return VariantUnknown
	}
	return v.Variant()
}

// NewHash returns a new hash interface, wrapped in a function for easy
// hash algorithm switching, package consumers can override NewHash
// with their own desired hash.Hash implementation if the value space is
// particularly large. default is 64-bit FNV 1 for fast, cheap,
// (non-cryptographic) hashing
var NewHash = func() hash.Hash {
	return fnv.New64()
}

// ScalarKind is the primitive type held by a Scalar
type ScalarKind uint8

const (
	ScalarNull ScalarKind = iota
	ScalarString
	ScalarNumber
	ScalarBool
)

// Scalar is a leaf value
type Scalar struct {
	kind ScalarKind
	str  string
	num  float64
	b    bool
	// canonical text, scalars of the same kind are equal iff their reprs are
	repr string
	hash []byte
}

// String creates a string scalar
func String(s string) *Scalar {
	return newScalar(&Scalar{kind: ScalarString, str: s, repr: s})
}

// Number creates a number scalar. All numbers are float64, so 1 and 1.0 are
// the same value
func Number(f float64) *Scalar {
	if f == 0 {
		// fold negative zero
		f = 0
	}
	return newScalar(&Scalar{kind: ScalarNumber, num: f, repr: strconv.FormatFloat(f, 'g', -1, 64)})
}

// Bool creates a boolean scalar
func Bool(b bool) *Scalar {
	return newScalar(&Scalar{kind: ScalarBool, b: b, repr: strconv.FormatBool(b)})
}

// Null creates a null scalar
func Null() *Scalar {
	return newScalar(&Scalar{kind: ScalarNull, repr: "null"})
}

func newScalar(s *Scalar) *Scalar {
	h := NewHash()
	h.Write([]byte{byte(VariantScalar), byte(s.kind)})
	h.Write([]byte(s.repr))
	s.hash = h.Sum(nil)
	return s
}

func (s *Scalar) value()           {}
func (s *Scalar) Variant() Variant { return VariantScalar }
func (s *Scalar) Kind() ScalarKind { return s.kind }
func (s *Scalar) Hash() []byte     { return s.hash }
func (s *Scalar) String() string   { return s.repr }

func (s *Scalar) Weight() int {
	if s.kind == ScalarNull {
		return 1
	}
	return len(s.repr)
}

// Interface returns nil, string, float64 or bool
func (s *Scalar) Interface() interface{} {
	switch s.kind {
	case ScalarString:
		return s.str
	case ScalarNumber:
		return s.num
	case ScalarBool:
		return s.b
	default:
		return nil
	}
}

// MarshalJSON implements the json.Marshaler interface
func (s *Scalar) MarshalJSON() ([]byte, error) {
	if s.kind == ScalarNumber && (math.IsNaN(s.num) || math.IsInf(s.num, 0)) {
		// not representable in JSON, fall back to a quoted repr
		return json.Marshal(s.repr)
	}
	return marshalNoEscape(s.Interface())
}

// Sequence is an ordered list of values. Order is kept for rendering positions
// but carries no meaning when diffing with ignore order enabled
type Sequence struct {
	items  []Value
	hash   []byte
	weight int
}

// NewSequence creates a sequence from items. nil items become Null scalars
func NewSequence(items ...Value) *Sequence {
	seq := &Sequence{items: make([]Value, len(items)), weight: 1}
	sums := make([][]byte, len(items))
	for i, it := range items {
		if isNil(it) {
			it = Null()
		}
		seq.items[i] = it
		seq.weight += it.Weight()
		sums[i] = it.Hash()
	}

	// hash children in sorted order so permutations hash the same
	sort.Slice(sums, func(i, j int) bool { return bytes.Compare(sums[i], sums[j]) < 0 })
	h := NewHash()
	h.Write([]byte{byte(VariantSequence)})
	for _, sum := range sums {
		h.Write(sum)
	}
	seq.hash = h.Sum(nil)
	return seq
}

func (s *Sequence) value()           {}
func (s *Sequence) Variant() Variant { return VariantSequence }
func (s *Sequence) Hash() []byte     { return s.hash }
func (s *Sequence) Weight() int      { return s.weight }
func (s *Sequence) Len() int         { return len(s.items) }
func (s *Sequence) Index(i int) Value {
	return s.items[i]
}

// Items returns a copy of the sequence elements
func (s *Sequence) Items() []Value {
	return append([]Value(nil), s.items...)
}

// Interface returns a []interface{}
func (s *Sequence) Interface() interface{} {
	vs := make([]interface{}, len(s.items))
	for i, it := range s.items {
		vs[i] = it.Interface()
	}
	return vs
}

// MarshalJSON implements the json.Marshaler interface
func (s *Sequence) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('[')
	for i, it := range s.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := it.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Pair is a single mapping entry
type Pair struct {
	Key   string
	Value Value
}

// Mapping is a set of uniquely keyed values. Key order is preserved for
// rendering & ignored for comparison
type Mapping struct {
	keys   []string
	vals   map[string]Value
	hash   []byte
	weight int
}

// NewMapping creates a mapping from pairs. A repeated key keeps its first
// position & takes the last value, nil values become Null scalars
func NewMapping(pairs ...Pair) *Mapping {
	m := &Mapping{
		keys:   make([]string, 0, len(pairs)),
		vals:   make(map[string]Value, len(pairs)),
		weight: 1,
	}
	for _, p := range pairs {
		v := p.Value
		if isNil(v) {
			v = Null()
		}
		if _, exists := m.vals[p.Key]; !exists {
			m.keys = append(m.keys, p.Key)
		}
		m.vals[p.Key] = v
	}

	// sort keys for consistent hashing
	sorted := append([]string(nil), m.keys...)
	sort.Strings(sorted)
	h := NewHash()
	h.Write([]byte{byte(VariantMapping)})
	for _, k := range sorted {
		v := m.vals[k]
		h.Write([]byte(strconv.Itoa(len(k))))
		h.Write([]byte(k))
		h.Write(v.Hash())
		m.weight += v.Weight()
	}
	m.hash = h.Sum(nil)
	return m
}

func (m *Mapping) value()           {}
func (m *Mapping) Variant() Variant { return VariantMapping }
func (m *Mapping) Hash() []byte     { return m.hash }
func (m *Mapping) Weight() int      { return m.weight }
func (m *Mapping) Len() int         { return len(m.keys) }

// Keys returns mapping keys in insertion order
func (m *Mapping) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Get returns the value stored at key
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Interface returns a map[string]interface{}
func (m *Mapping) Interface() interface{} {
	vs := make(map[string]interface{}, len(m.keys))
	for k, v := range m.vals {
		vs[k] = v.Interface()
	}
	return vs
}

// MarshalJSON implements the json.Marshaler interface, keys are written in
// insertion order
func (m *Mapping) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		data, err := m.vals[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Equal reports deep equality of two values. Mappings compare by key set,
// sequences compare as multisets & scalars by kind and value
func Equal(a, b Value) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.Variant() != b.Variant() || !bytes.Equal(a.Hash(), b.Hash()) {
		return false
	}

	switch x := a.(type) {
	case *Scalar:
		y := b.(*Scalar)
		return x.kind == y.kind && x.repr == y.repr
	case *Mapping:
		y := b.(*Mapping)
		if len(x.keys) != len(y.keys) {
			return false
		}
		for k, v := range x.vals {
			w, ok := y.vals[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	case *Sequence:
		y := b.(*Sequence)
		if len(x.items) != len(y.items) {
			return false
		}
		used := make([]bool, len(y.items))
	ITEMS:
		for _, v := range x.items {
			for j, w := range y.items {
				if !used[j] && Equal(v, w) {
					used[j] = true
					continue ITEMS
				}
			}
			return false
		}
		return true
	}
	return false
}

// EqualOrdered is Equal with sequences compared position by position
func EqualOrdered(a, b Value) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	if a.Variant() != b.Variant() || !bytes.Equal(a.Hash(), b.Hash()) {
		return false
	}

	switch x := a.(type) {
	case *Mapping:
		y := b.(*Mapping)
		if len(x.keys) != len(y.keys) {
			return false
		}
		for k, v := range x.vals {
			w, ok := y.vals[k]
			if !ok || !EqualOrdered(v, w) {
				return false
			}
		}
		return true
	case *Sequence:
		y := b.(*Sequence)
		if len(x.items) != len(y.items) {
			return false
		}
		for i := range x.items {
			if !EqualOrdered(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	}
	return Equal(a, b)
}

// Walk visits v & all descendants in top-down (prefix) order. Returning false
// from fn skips the children of the visited value
func Walk(v Value, fn func(p Path, v Value) bool) {
	if isNil(v) {
		return
	}
	walk(v, Path{}, fn)
}

func walk(v Value, p Path, fn func(p Path, v Value) bool) {
	if !fn(p, v) {
		return
	}
	switch x := v.(type) {
	case *Mapping:
		for _, k := range x.keys {
			walk(x.vals[k], p.Append(Key(k)), fn)
		}
	case *Sequence:
		for i, it := range x.items {
			walk(it, p.Append(Index{Left: i, Right: i}), fn)
		}
	}
}

// nodeCount is the number of values in the tree rooted at v
func nodeCount(v Value) (n int) {
	Walk(v, func(Path, Value) bool {
		n++
		return true
	})
	return n
}

func isNil(v Value) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *Scalar:
		return x == nil
	case *Sequence:
		return x == nil
	case *Mapping:
		return x == nil
	}
	return false
}

func marshalNoEscape(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
