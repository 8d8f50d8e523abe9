package main

import (
	"strings"

	"github.com/wbrown/img2ascii"
)

// parseCharArg expands a shell or flag argument into characters: "all" is
// the whole printable range, "space" is ' ', "a-z" is an inclusive range,
// and any other single character stands for itself.
func parseCharArg(arg string) ([]rune, bool) {
	runes := []rune(arg)
	switch {
	case arg == "all":
		return glyphsToRunes(img2ascii.AllGlyphs()), true
	case arg == "space":
		return []rune{' '}, true
	case len(runes) == 1:
		return runes, true
	case len(runes) == 3 && runes[1] == '-':
		glyphs, err := img2ascii.GlyphRange(runes[0], runes[2])
		if err != nil {
			return nil, false
		}
		return glyphsToRunes(glyphs), true
	}
	return nil, false
}

// parseCharset parses a comma separated list of char arguments, e.g.
// "0-9" or "a-z,space,#". A comma itself is only reachable through a
// range such as "+-.".
func parseCharset(spec string) ([]img2ascii.Glyph, bool) {
	var glyphs []img2ascii.Glyph
	for _, part := range strings.Split(spec, ",") {
		runes, ok := parseCharArg(part)
		if !ok {
			return nil, false
		}
		for _, r := range runes {
			g, err := img2ascii.ValidateGlyph(r)
			if err != nil {
				return nil, false
			}
			glyphs = append(glyphs, g)
		}
	}
	return glyphs, len(glyphs) > 0
}

func glyphsToRunes(glyphs []img2ascii.Glyph) []rune {
	runes := make([]rune, len(glyphs))
	for i, g := range glyphs {
		runes[i] = rune(g)
	}
	return runes
}
