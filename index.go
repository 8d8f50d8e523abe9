package img2ascii

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// RoundingPolicy selects the glyph returned when a brightness sample falls
// between two normalized keys.
type RoundingPolicy int

const (
	// RoundNearest picks the closer neighbour, preferring the darker one on
	// an exact tie.
	RoundNearest RoundingPolicy = iota
	// RoundUp picks the smallest key above the sample.
	RoundUp
	// RoundDown picks the largest key below the sample.
	RoundDown
)

// String returns the policy's name as accepted by ParseRoundingPolicy.
func (p RoundingPolicy) String() string {
	switch p {
	case RoundUp:
		return "up"
	case RoundDown:
		return "down"
	default:
		return "abs"
	}
}

// ParseRoundingPolicy parses "up", "down", and "abs" (or "nearest").
func ParseRoundingPolicy(s string) (RoundingPolicy, error) {
	switch strings.ToLower(s) {
	case "up":
		return RoundUp, nil
	case "down":
		return RoundDown, nil
	case "abs", "nearest":
		return RoundNearest, nil
	}
	return RoundNearest, fmt.Errorf("%q: %w", s, ErrUnknownRoundingPolicy)
}

// CharacterSet is a set of glyphs. The zero value is an empty set.
type CharacterSet struct {
	members map[Glyph]struct{}
}

// NewCharacterSet returns a set holding glyphs.
func NewCharacterSet(glyphs ...Glyph) CharacterSet {
	var cs CharacterSet
	for _, g := range glyphs {
		cs.Add(g)
	}
	return cs
}

// Add inserts g, reporting whether the set changed.
func (cs *CharacterSet) Add(g Glyph) bool {
	if cs.members == nil {
		cs.members = make(map[Glyph]struct{})
	}
	if _, ok := cs.members[g]; ok {
		return false
	}
	cs.members[g] = struct{}{}
	return true
}

// Remove deletes g, reporting whether the set changed.
func (cs *CharacterSet) Remove(g Glyph) bool {
	if _, ok := cs.members[g]; !ok {
		return false
	}
	delete(cs.members, g)
	return true
}

func (cs CharacterSet) Contains(g Glyph) bool {
	_, ok := cs.members[g]
	return ok
}

func (cs CharacterSet) Len() int {
	return len(cs.members)
}

// Glyphs returns the members in ascending code order.
func (cs CharacterSet) Glyphs() []Glyph {
	glyphs := make([]Glyph, 0, len(cs.members))
	for g := range cs.members {
		glyphs = append(glyphs, g)
	}
	sort.Slice(glyphs, func(i, j int) bool { return glyphs[i] < glyphs[j] })
	return glyphs
}

// Equal reports whether both sets have exactly the same members.
func (cs CharacterSet) Equal(other CharacterSet) bool {
	if cs.Len() != other.Len() {
		return false
	}
	for g := range cs.members {
		if !other.Contains(g) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (cs CharacterSet) Clone() CharacterSet {
	clone := CharacterSet{members: make(map[Glyph]struct{}, len(cs.members))}
	for g := range cs.members {
		clone.members[g] = struct{}{}
	}
	return clone
}

// NormalizedIndex is an immutable mapping from normalized brightness to
// glyph built from one character set.
type NormalizedIndex struct {
	keys       brightnessMap
	size       int
	min, max   float64
	degenerate bool
}

// BuildNormalizedIndex rescales the intrinsic brightness of every glyph in
// set to [0,1] relative to the set's darkest and brightest glyph.
//
// Glyphs are inserted in ascending code order, so when two glyphs normalize
// to the same key the lower code keeps it and the other becomes unreachable.
// When every glyph has the same intrinsic brightness all of them map to 0.0
// and the index is marked degenerate.
func BuildNormalizedIndex(set CharacterSet, model *BrightnessModel) (*NormalizedIndex, error) {
	glyphs := set.Glyphs()
	intrinsic := make([]float64, len(glyphs))
	idx := &NormalizedIndex{size: len(glyphs), min: math.Inf(1), max: math.Inf(-1)}

	for i, g := range glyphs {
		v, err := model.Intrinsic(g)
		if err != nil {
			return nil, err
		}
		intrinsic[i] = v
		idx.min = math.Min(idx.min, v)
		idx.max = math.Max(idx.max, v)
	}
	if len(glyphs) == 0 {
		idx.min, idx.max = 0, 0
	}

	span := idx.max - idx.min
	idx.degenerate = span == 0
	for i, g := range glyphs {
		key := 0.0
		if !idx.degenerate {
			key = (intrinsic[i] - idx.min) / span
		}
		idx.keys.PutIfAbsent(key, g)
	}
	return idx, nil
}

// Len returns the number of glyphs the index was built from, including
// glyphs that lost a key collision.
func (idx *NormalizedIndex) Len() int {
	return idx.size
}

// Reachable returns the number of distinct keys.
func (idx *NormalizedIndex) Reachable() int {
	return idx.keys.Len()
}

// Entries returns the key to glyph mapping in ascending key order.
func (idx *NormalizedIndex) Entries() []IndexEntry {
	return idx.keys.Entries()
}

// Lookup returns the glyph stored under exactly b.
func (idx *NormalizedIndex) Lookup(b float64) (Glyph, bool) {
	return idx.keys.Get(b)
}

// Degenerate reports whether all glyphs shared one intrinsic brightness.
func (idx *NormalizedIndex) Degenerate() bool {
	return idx.degenerate
}

// Range returns the intrinsic brightness bounds used for normalization,
// with ErrDegenerateBrightnessRange when they are equal.
func (idx *NormalizedIndex) Range() (min, max float64, err error) {
	if idx.degenerate {
		err = fmt.Errorf("all %d glyphs at %.4f: %w", idx.size, idx.min, ErrDegenerateBrightnessRange)
	}
	return idx.min, idx.max, err
}

// Query returns the glyph best matching brightness b under policy. An exact
// key match wins regardless of policy.
func (idx *NormalizedIndex) Query(b float64, policy RoundingPolicy) (Glyph, error) {
	if idx.size < 2 {
		return 0, ErrTooSmallSet
	}
	if math.IsNaN(b) {
		return 0, ErrInvalidBrightness
	}
	if g, ok := idx.keys.Get(b); ok {
		return g, nil
	}

	pred, hasPred := idx.keys.Lower(b)
	succ, hasSucc := idx.keys.Higher(b)
	switch {
	case !hasPred:
		return succ.Glyph, nil
	case !hasSucc:
		return pred.Glyph, nil
	}

	switch policy {
	case RoundUp:
		return succ.Glyph, nil
	case RoundDown:
		return pred.Glyph, nil
	default:
		if b-pred.Key <= succ.Key-b {
			return pred.Glyph, nil
		}
		return succ.Glyph, nil
	}
}

// CharIndex is the mutable character brightness index of one session. It
// owns the active character set and rebuilds its normalized index lazily:
// any number of Add and Remove calls cost a single rebuild on the next
// query.
type CharIndex struct {
	set      CharacterSet
	model    *BrightnessModel
	current  *NormalizedIndex
	dirty    bool
	rebuilds int
}

// NewCharIndex returns an index over glyphs using model for intrinsic
// brightness.
func NewCharIndex(model *BrightnessModel, glyphs ...Glyph) (*CharIndex, error) {
	ci := &CharIndex{model: model, dirty: true}
	for _, g := range glyphs {
		if err := ci.Add(rune(g)); err != nil {
			return nil, err
		}
	}
	return ci, nil
}

// Add inserts the character r. Adding a present character is a no-op.
func (ci *CharIndex) Add(r rune) error {
	g, err := ValidateGlyph(r)
	if err != nil {
		return err
	}
	if ci.set.Add(g) {
		ci.dirty = true
	}
	return nil
}

// Remove deletes the character r. Removing an absent character is a no-op.
func (ci *CharIndex) Remove(r rune) error {
	g, err := ValidateGlyph(r)
	if err != nil {
		return err
	}
	if ci.set.Remove(g) {
		ci.dirty = true
	}
	return nil
}

// Size returns the number of active glyphs.
func (ci *CharIndex) Size() int {
	return ci.Len()
}

// Len is Size, satisfying Querier.
func (ci *CharIndex) Len() int {
	return ci.set.Len()
}

// Set returns a copy of the active character set.
func (ci *CharIndex) Set() CharacterSet {
	return ci.set.Clone()
}

// Dirty reports whether the set changed since the last rebuild.
func (ci *CharIndex) Dirty() bool {
	return ci.dirty || ci.current == nil
}

// Rebuilds returns how many times the normalized index was rebuilt.
func (ci *CharIndex) Rebuilds() int {
	return ci.rebuilds
}

// Rebuild normalizes the current set and makes the result current.
func (ci *CharIndex) Rebuild() (*NormalizedIndex, error) {
	idx, err := BuildNormalizedIndex(ci.set, ci.model)
	if err != nil {
		return nil, err
	}
	ci.current = idx
	ci.dirty = false
	ci.rebuilds++
	return idx, nil
}

// Query returns the glyph for brightness b, rebuilding first if the set
// changed since the last rebuild.
func (ci *CharIndex) Query(b float64, policy RoundingPolicy) (Glyph, error) {
	if ci.Size() < 2 {
		return 0, ErrTooSmallSet
	}
	if ci.Dirty() {
		if _, err := ci.Rebuild(); err != nil {
			return 0, err
		}
	}
	return ci.current.Query(b, policy)
}
