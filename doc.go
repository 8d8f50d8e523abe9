// Package img2ascii converts images to ASCII art by matching the brightness
// of each image cell against the normalized brightness of a configurable set
// of printable characters.
//
// A Renderer owns all of the state for one conversion session: the active
// character set, the per-glyph brightness model, and a single-slot cache of
// the last brightness matrix and the last normalized index. Independent
// Renderers never share state.
package img2ascii
