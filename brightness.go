package img2ascii

import "fmt"

// BrightnessModel maps a glyph to its intrinsic brightness: the fraction of
// lit pixels in its bitmap. Results are memoized for the lifetime of the
// model since the mapping never changes; removing a glyph from a character
// set does not evict it.
type BrightnessModel struct {
	rasterizer GlyphRasterizer
	intrinsic  map[Glyph]float64
	calls      int
}

// NewBrightnessModel returns a model backed by r.
func NewBrightnessModel(r GlyphRasterizer) *BrightnessModel {
	return &BrightnessModel{
		rasterizer: r,
		intrinsic:  make(map[Glyph]float64),
	}
}

// Intrinsic returns the brightness of g in [0,1], rasterizing it on first
// use.
func (m *BrightnessModel) Intrinsic(g Glyph) (float64, error) {
	if v, ok := m.intrinsic[g]; ok {
		return v, nil
	}
	m.calls++
	bitmap, err := m.rasterizer.Rasterize(g)
	if err != nil {
		return 0, fmt.Errorf("rasterize %q: %w", rune(g), err)
	}
	v := bitmap.Coverage()
	m.intrinsic[g] = v
	return v, nil
}

// Calls returns how many times the rasterizer has been invoked.
func (m *BrightnessModel) Calls() int {
	return m.calls
}
