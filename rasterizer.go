package img2ascii

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// GlyphRasterizer renders a glyph to a fixed-size bitmap. Implementations
// must be deterministic.
type GlyphRasterizer interface {
	Rasterize(g Glyph) (GlyphBitmap, error)
}

// NewBasicFontBitmaps rasterizes the printable range of the fixed 7x13 face
// bundled with golang.org/x/image. It needs no font file and is the
// default rasterizer of a Renderer.
func NewBasicFontBitmaps() *FontBitmaps {
	face := basicfont.Face7x13
	fb := NewFontBitmaps("basicfont 7x13", make(map[Glyph]GlyphBitmap))
	for _, g := range AllGlyphs() {
		fb.glyphs[g] = renderBasicGlyph(face, g)
	}
	return fb
}

// renderBasicGlyph draws g at the face's native size and scales the result
// into the 8x8 cell before thresholding.
func renderBasicGlyph(face *basicfont.Face, g Glyph) GlyphBitmap {
	src := image.NewAlpha(image.Rect(0, 0, face.Width, face.Height))
	d := font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(g.String())

	dst := image.NewAlpha(image.Rect(0, 0, GlyphWidth, GlyphHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return thresholdAlpha(dst)
}
