package img2ascii

import "fmt"

const (
	// MinGlyph and MaxGlyph bound the printable ASCII range usable as
	// output characters.
	MinGlyph Glyph = 32
	MaxGlyph Glyph = 126
)

// Glyph is a printable ASCII character code.
type Glyph rune

// DefaultCharset is the character set a new Renderer starts with.
var DefaultCharset = []Glyph{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'}

// String returns the glyph as a one character string.
func (g Glyph) String() string {
	return string(rune(g))
}

// Valid reports whether g is inside the printable range.
func (g Glyph) Valid() bool {
	return g >= MinGlyph && g <= MaxGlyph
}

// ValidateGlyph converts r to a Glyph, failing with ErrOutOfRangeGlyph
// when r is not printable ASCII.
func ValidateGlyph(r rune) (Glyph, error) {
	g := Glyph(r)
	if !g.Valid() {
		return 0, fmt.Errorf("code %d: %w", r, ErrOutOfRangeGlyph)
	}
	return g, nil
}

// GlyphRange returns every glyph between from and to inclusive. The bounds
// may be given in either order.
func GlyphRange(from, to rune) ([]Glyph, error) {
	if from > to {
		from, to = to, from
	}
	if _, err := ValidateGlyph(from); err != nil {
		return nil, err
	}
	if _, err := ValidateGlyph(to); err != nil {
		return nil, err
	}
	glyphs := make([]Glyph, 0, to-from+1)
	for r := from; r <= to; r++ {
		glyphs = append(glyphs, Glyph(r))
	}
	return glyphs, nil
}

// AllGlyphs returns the whole printable range.
func AllGlyphs() []Glyph {
	glyphs, _ := GlyphRange(rune(MinGlyph), rune(MaxGlyph))
	return glyphs
}
