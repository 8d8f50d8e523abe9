package img2ascii

import (
	"fmt"

	"github.com/wbrown/img2ascii/imageutil"
)

// bitmapWithBits returns a bitmap with the lowest n pixels lit.
func bitmapWithBits(n int) GlyphBitmap {
	if n >= GlyphWidth*GlyphHeight {
		return ^GlyphBitmap(0)
	}
	return GlyphBitmap(1)<<n - 1
}

// fakeRasterizer serves bitmaps with a fixed pixel count per glyph and
// counts how often each glyph is rasterized.
type fakeRasterizer struct {
	lit   map[Glyph]int
	calls map[Glyph]int
	fail  map[Glyph]error
}

func newFakeRasterizer(lit map[Glyph]int) *fakeRasterizer {
	return &fakeRasterizer{lit: lit, calls: make(map[Glyph]int), fail: make(map[Glyph]error)}
}

func (f *fakeRasterizer) Rasterize(g Glyph) (GlyphBitmap, error) {
	f.calls[g]++
	if err, ok := f.fail[g]; ok {
		return 0, err
	}
	n, ok := f.lit[g]
	if !ok {
		return 0, fmt.Errorf("%q: %w", rune(g), ErrMissingGlyph)
	}
	return bitmapWithBits(n), nil
}

// countingSampler returns a constant matrix and counts invocations.
type countingSampler struct {
	matrix Matrix
	calls  int
	err    error
}

func (s *countingSampler) Sample(img *imageutil.RGBAImage, resolution int) (Matrix, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.matrix, nil
}

// scenarioLit approximates intrinsic brightness B=0.2, A=0.6, C=0.9 in 64ths.
var scenarioLit = map[Glyph]int{'A': 38, 'B': 13, 'C': 58}

// evenLit gives exact normalized keys 0, 0.5 and 1.
var evenLit = map[Glyph]int{'a': 16, 'b': 32, 'c': 48}

func newTestIndex(lit map[Glyph]int) (*CharIndex, *fakeRasterizer) {
	raster := newFakeRasterizer(lit)
	glyphs := make([]Glyph, 0, len(lit))
	for g := range lit {
		glyphs = append(glyphs, g)
	}
	ci, err := NewCharIndex(NewBrightnessModel(raster), glyphs...)
	if err != nil {
		panic(err)
	}
	return ci, raster
}
