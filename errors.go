package img2ascii

import "errors"

var (
	// ErrOutOfRangeGlyph is returned when a character code outside the
	// printable ASCII range [32,126] is added or removed.
	ErrOutOfRangeGlyph = errors.New("img2ascii: glyph out of printable range")

	// ErrTooSmallSet is returned when fewer than two glyphs are available
	// at query or render time.
	ErrTooSmallSet = errors.New("img2ascii: character set is too small")

	// ErrDegenerateBrightnessRange reports that every glyph in the active
	// set has the same intrinsic brightness. Queries still succeed; every
	// glyph normalizes to 0.0 and the lowest code wins.
	ErrDegenerateBrightnessRange = errors.New("img2ascii: degenerate brightness range")

	// ErrInvalidBrightness is returned for NaN query input.
	ErrInvalidBrightness = errors.New("img2ascii: invalid brightness")

	// ErrMissingGlyph is returned by a rasterizer that has no bitmap for a
	// glyph.
	ErrMissingGlyph = errors.New("img2ascii: glyph missing from font")

	// ErrUnknownRoundingPolicy is returned by ParseRoundingPolicy for an
	// unrecognized name.
	ErrUnknownRoundingPolicy = errors.New("img2ascii: unknown rounding policy")

	// ErrUnknownOutput is returned for an unrecognized output kind.
	ErrUnknownOutput = errors.New("img2ascii: unknown output kind")

	// ErrNoImage is returned when a render is requested without an image.
	ErrNoImage = errors.New("img2ascii: no image")
)
