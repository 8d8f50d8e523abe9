package img2ascii

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"image"
	"image/color"
	"math/bits"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	// GlyphWidth and GlyphHeight define the fixed rasterization cell size
	GlyphWidth  = 8
	GlyphHeight = 8
)

// GlyphBitmap represents an 8x8 character as a 64-bit integer
// Each bit represents a pixel: 1 = foreground, 0 = background
type GlyphBitmap uint64

// FontBitmaps holds pre-rendered bitmaps for the printable ASCII range of a
// font. It implements GlyphRasterizer.
type FontBitmaps struct {
	glyphs map[Glyph]GlyphBitmap
	name   string
}

// FontGlyphData represents pre-computed glyph bitmaps for a font (for serialization)
type FontGlyphData struct {
	FontName string
	Glyphs   map[Glyph]GlyphBitmap
}

// getBit checks if a specific bit is set in the bitmap
func (g GlyphBitmap) getBit(x, y int) bool {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return false
	}
	return g&(1<<(y*GlyphWidth+x)) != 0
}

// setBit sets a specific bit in the bitmap
func (g *GlyphBitmap) setBit(x, y int, value bool) {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return
	}
	pos := y*GlyphWidth + x
	if value {
		*g |= 1 << pos
	} else {
		*g &= ^(1 << pos)
	}
}

// Coverage returns the fraction of set pixels, in [0,1].
func (g GlyphBitmap) Coverage() float64 {
	return float64(bits.OnesCount64(uint64(g))) / float64(GlyphWidth*GlyphHeight)
}

// NewFontBitmaps wraps an already computed glyph table.
func NewFontBitmaps(name string, glyphs map[Glyph]GlyphBitmap) *FontBitmaps {
	return &FontBitmaps{glyphs: glyphs, name: name}
}

// LoadFontBitmaps loads font bitmaps from a TrueType file or from a
// precomputed .glyphs table written by cmd/compute_glyphs.
func LoadFontBitmaps(path string) (*FontBitmaps, error) {
	if strings.HasSuffix(strings.ToLower(path), ".glyphs") {
		return loadGlyphTable(path)
	}
	return loadFontBitmapsFromTTF(path)
}

// loadGlyphTable loads pre-computed glyph data (gzip compressed gob)
func loadGlyphTable(path string) (*FontBitmaps, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read glyph table: %w", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gr.Close()

	var glyphData FontGlyphData
	if err := gob.NewDecoder(gr).Decode(&glyphData); err != nil {
		return nil, fmt.Errorf("failed to decode glyph data: %w", err)
	}

	return NewFontBitmaps(glyphData.FontName, glyphData.Glyphs), nil
}

// SaveGlyphTable writes the bitmaps as a gzip compressed gob table that
// LoadFontBitmaps reads back.
func (fb *FontBitmaps) SaveGlyphTable(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create glyph table: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	data := FontGlyphData{FontName: fb.name, Glyphs: fb.glyphs}
	if err := gob.NewEncoder(gz).Encode(&data); err != nil {
		gz.Close()
		return fmt.Errorf("failed to encode glyph data: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to close gzip: %w", err)
	}
	return f.Close()
}

// Len returns the number of glyphs with a bitmap.
func (fb *FontBitmaps) Len() int {
	return len(fb.glyphs)
}

// loadFontBitmapsFromTTF pre-renders a TrueType font to bitmaps
func loadFontBitmapsFromTTF(path string) (*FontBitmaps, error) {
	ttfFont, err := loadFont(path)
	if err != nil {
		return nil, err
	}
	return RenderFontBitmaps(filepath.Base(path), ttfFont), nil
}

// RenderFontBitmaps rasterizes the printable ASCII range of a parsed font.
func RenderFontBitmaps(name string, ttfFont *truetype.Font) *FontBitmaps {
	fb := NewFontBitmaps(name, make(map[Glyph]GlyphBitmap))
	for _, g := range AllGlyphs() {
		fb.glyphs[g] = renderGlyphToBitmap(ttfFont, g)
	}
	return fb
}

// loadFont loads a TrueType font from file
func loadFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}

	ttfFont, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}

	return ttfFont, nil
}

// renderGlyphToBitmap renders a single glyph to an 8x8 bitmap.
//
// The glyph is drawn into an alpha image so anti-aliased edge pixels keep
// their partial coverage, then thresholded at 25% (64/255). A higher
// threshold drops thin strokes such as the dot on 'i'. The baseline comes
// from the face metrics so descenders are not clipped.
func renderGlyphToBitmap(ttfFont *truetype.Font, g Glyph) GlyphBitmap {
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    float64(GlyphHeight),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	img := image.NewAlpha(image.Rect(0, 0, GlyphWidth, GlyphHeight))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttfFont)
	ctx.SetFontSize(float64(GlyphHeight))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	metrics := face.Metrics()
	ascent := metrics.Ascent >> 6   // 26.6 fixed point to pixels
	descent := metrics.Descent >> 6 // Descent is typically negative
	baselineY := (GlyphHeight + int(ascent) - int(descent)) / 2

	pt := freetype.Pt(0, baselineY)
	ctx.DrawString(g.String(), pt)

	return thresholdAlpha(img)
}

// thresholdAlpha converts an 8x8 alpha image into a bitmap using a 25%
// coverage threshold.
func thresholdAlpha(img *image.Alpha) GlyphBitmap {
	var bitmap GlyphBitmap
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if img.AlphaAt(x, y).A > 64 {
				bitmap.setBit(x, y, true)
			}
		}
	}
	return bitmap
}

// Name returns the font name the bitmaps were rendered from.
func (fb *FontBitmaps) Name() string {
	return fb.name
}

// Rasterize returns the bitmap for g.
func (fb *FontBitmaps) Rasterize(g Glyph) (GlyphBitmap, error) {
	if _, err := ValidateGlyph(rune(g)); err != nil {
		return 0, err
	}
	bitmap, exists := fb.glyphs[g]
	if !exists {
		return 0, fmt.Errorf("%q in %s: %w", rune(g), fb.name, ErrMissingGlyph)
	}
	return bitmap, nil
}

// RenderGrid draws a glyph grid into an image, one 8x8 cell per glyph
// scaled by scale. Glyphs without a bitmap are drawn as background.
func (fb *FontBitmaps) RenderGrid(grid [][]Glyph, scale int, fg, bg color.Color) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	height := len(grid)
	if height == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	width := len(grid[0])

	charW, charH := GlyphWidth*scale, GlyphHeight*scale
	img := image.NewRGBA(image.Rect(0, 0, width*charW, height*charH))

	for y, row := range grid {
		for x, g := range row {
			fb.renderBitmap(img, fb.glyphs[g], x*charW, y*charH, scale, fg, bg)
		}
	}

	return img
}

// renderBitmap renders a GlyphBitmap at the given position with scaling
func (fb *FontBitmaps) renderBitmap(img *image.RGBA, bitmap GlyphBitmap, startX, startY, scale int, fg, bg color.Color) {
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			c := bg
			if bitmap.getBit(x, y) {
				c = fg
			}

			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					img.Set(startX+x*scale+sx, startY+y*scale+sy, c)
				}
			}
		}
	}
}
