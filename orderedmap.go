package img2ascii

import "sort"

// IndexEntry pairs a normalized brightness key with the glyph that owns it.
type IndexEntry struct {
	Key   float64
	Glyph Glyph
}

// brightnessMap is a map from normalized brightness to glyph that keeps its
// keys in ascending order, supporting exact and strict neighbour lookups.
type brightnessMap struct {
	entries []IndexEntry
}

// search returns the position of the first key >= key.
func (bm *brightnessMap) search(key float64) int {
	return sort.Search(len(bm.entries), func(i int) bool {
		return bm.entries[i].Key >= key
	})
}

// PutIfAbsent inserts key unless it is already present, in which case the
// existing glyph is kept. It reports whether the entry was inserted.
func (bm *brightnessMap) PutIfAbsent(key float64, g Glyph) bool {
	i := bm.search(key)
	if i < len(bm.entries) && bm.entries[i].Key == key {
		return false
	}
	bm.entries = append(bm.entries, IndexEntry{})
	copy(bm.entries[i+1:], bm.entries[i:])
	bm.entries[i] = IndexEntry{Key: key, Glyph: g}
	return true
}

// Get retrieves the glyph stored under exactly key.
func (bm *brightnessMap) Get(key float64) (Glyph, bool) {
	i := bm.search(key)
	if i < len(bm.entries) && bm.entries[i].Key == key {
		return bm.entries[i].Glyph, true
	}
	return 0, false
}

// Lower returns the entry with the largest key strictly below key.
func (bm *brightnessMap) Lower(key float64) (IndexEntry, bool) {
	i := bm.search(key)
	if i == 0 {
		return IndexEntry{}, false
	}
	return bm.entries[i-1], true
}

// Higher returns the entry with the smallest key strictly above key.
func (bm *brightnessMap) Higher(key float64) (IndexEntry, bool) {
	i := sort.Search(len(bm.entries), func(i int) bool {
		return bm.entries[i].Key > key
	})
	if i == len(bm.entries) {
		return IndexEntry{}, false
	}
	return bm.entries[i], true
}

// Entries returns a copy of the entries in ascending key order.
func (bm *brightnessMap) Entries() []IndexEntry {
	return append([]IndexEntry(nil), bm.entries...)
}

// Len returns the number of keys in the map
func (bm *brightnessMap) Len() int {
	return len(bm.entries)
}
