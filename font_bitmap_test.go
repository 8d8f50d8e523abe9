package img2ascii

import (
	"compress/gzip"
	"encoding/gob"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGlyphBitmapBitOperations tests basic bit operations on GlyphBitmap
func TestGlyphBitmapBitOperations(t *testing.T) {
	var bitmap GlyphBitmap

	bitmap.setBit(0, 0, true)
	if !bitmap.getBit(0, 0) {
		t.Error("Expected bit at (0,0) to be set")
	}

	bitmap.setBit(7, 7, true)
	if !bitmap.getBit(7, 7) {
		t.Error("Expected bit at (7,7) to be set")
	}

	bitmap.setBit(0, 0, false)
	if bitmap.getBit(0, 0) {
		t.Error("Expected bit at (0,0) to be clear")
	}

	// Out of bounds
	bitmap.setBit(8, 8, true)
	if bitmap.getBit(8, 8) {
		t.Error("Out of bounds bit should return false")
	}
}

func TestGlyphBitmapCoverage(t *testing.T) {
	if c := GlyphBitmap(0).Coverage(); c != 0 {
		t.Errorf("Empty bitmap coverage should be 0, got %v", c)
	}
	if c := (^GlyphBitmap(0)).Coverage(); c != 1 {
		t.Errorf("Full bitmap coverage should be 1, got %v", c)
	}
	if c := bitmapWithBits(16).Coverage(); c != 0.25 {
		t.Errorf("Quarter bitmap coverage should be 0.25, got %v", c)
	}
}

func TestBasicFontBitmaps(t *testing.T) {
	fb := NewBasicFontBitmaps()

	space, err := fb.Rasterize(' ')
	require.NoError(t, err)
	assert.Zero(t, space.Coverage(), "space has no ink")

	for _, g := range []Glyph{'#', '@', 'M', '8'} {
		bitmap, err := fb.Rasterize(g)
		require.NoError(t, err)
		assert.Greater(t, bitmap.Coverage(), 0.0, "glyph %q", rune(g))
	}

	dot, err := fb.Rasterize('.')
	require.NoError(t, err)
	hash, err := fb.Rasterize('#')
	require.NoError(t, err)
	assert.Less(t, dot.Coverage(), hash.Coverage())

	for _, g := range AllGlyphs() {
		_, err := fb.Rasterize(g)
		assert.NoError(t, err, "glyph %q", rune(g))
	}
}

func TestFontBitmapsRasterizeErrors(t *testing.T) {
	fb := NewFontBitmaps("partial", map[Glyph]GlyphBitmap{'a': 1})

	_, err := fb.Rasterize('b')
	assert.ErrorIs(t, err, ErrMissingGlyph)

	_, err = fb.Rasterize(127)
	assert.ErrorIs(t, err, ErrOutOfRangeGlyph)
}

func TestLoadGlyphTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.glyphs")
	data := FontGlyphData{
		FontName: "test",
		Glyphs:   map[Glyph]GlyphBitmap{'a': bitmapWithBits(10), 'b': bitmapWithBits(40)},
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	require.NoError(t, gob.NewEncoder(gw).Encode(data))
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	fb, err := LoadFontBitmaps(path)
	require.NoError(t, err)
	assert.Equal(t, "test", fb.Name())

	bitmap, err := fb.Rasterize('b')
	require.NoError(t, err)
	assert.Equal(t, bitmapWithBits(40), bitmap)
}

func TestSaveGlyphTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basic.glyphs")
	fb := NewBasicFontBitmaps()
	require.NoError(t, fb.SaveGlyphTable(path))

	loaded, err := LoadFontBitmaps(path)
	require.NoError(t, err)
	assert.Equal(t, fb.Name(), loaded.Name())
	assert.Equal(t, len(AllGlyphs()), loaded.Len())

	want, err := fb.Rasterize('@')
	require.NoError(t, err)
	got, err := loaded.Rasterize('@')
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFontBitmapsMissingFile(t *testing.T) {
	_, err := LoadFontBitmaps(filepath.Join(t.TempDir(), "nope.ttf"))
	assert.Error(t, err)
	_, err = LoadFontBitmaps(filepath.Join(t.TempDir(), "nope.glyphs"))
	assert.Error(t, err)
}

// TestRenderGrid tests drawing a glyph grid with font bitmaps
func TestRenderGrid(t *testing.T) {
	var top GlyphBitmap
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			top.setBit(x, y, true)
		}
	}
	fb := NewFontBitmaps("test", map[Glyph]GlyphBitmap{
		'#': ^GlyphBitmap(0),
		'-': top,
		' ': 0,
	})
	grid := [][]Glyph{
		{'#', '-'},
		{' ', 'x'},
	}
	fg := color.RGBA{R: 255, A: 255}
	bg := color.RGBA{B: 255, A: 255}

	img := fb.RenderGrid(grid, 1, fg, bg)
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Fatalf("Expected 16x16 image, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	img2 := fb.RenderGrid(grid, 2, fg, bg)
	if img2.Bounds().Dx() != 32 || img2.Bounds().Dy() != 32 {
		t.Errorf("Expected 32x32 image, got %dx%d", img2.Bounds().Dx(), img2.Bounds().Dy())
	}

	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, fg},   // full block
		{8, 0, fg},   // top half of '-'
		{8, 7, bg},   // bottom half of '-'
		{0, 8, bg},   // space
		{15, 15, bg}, // unknown glyph renders as background
	}
	for _, c := range checks {
		if got := img.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("Pixel (%d,%d): expected %v, got %v", c.x, c.y, c.want, got)
		}
	}

	if empty := fb.RenderGrid(nil, 1, fg, bg); !empty.Bounds().Empty() {
		t.Error("Empty grid should render an empty image")
	}
}
