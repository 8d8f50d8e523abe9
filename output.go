package img2ascii

import (
	"bufio"
	"fmt"
	"html"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// OutputKind selects where a rendered grid goes.
type OutputKind int

const (
	// OutputConsole writes plain text rows.
	OutputConsole OutputKind = iota
	// OutputHTML writes a markup file with the art in a <pre> block.
	OutputHTML
	// OutputPNG draws the glyph bitmaps into a PNG file.
	OutputPNG
)

const (
	DefaultHTMLPath = "out.html"
	DefaultHTMLFont = "Courier New"
	DefaultPNGPath  = "out.png"
)

func (k OutputKind) String() string {
	switch k {
	case OutputConsole:
		return "console"
	case OutputHTML:
		return "html"
	case OutputPNG:
		return "png"
	}
	return fmt.Sprintf("OutputKind(%d)", int(k))
}

// ParseOutputKind parses "console", "html", or "png".
func ParseOutputKind(s string) (OutputKind, error) {
	switch strings.ToLower(s) {
	case "console":
		return OutputConsole, nil
	case "html":
		return OutputHTML, nil
	case "png":
		return OutputPNG, nil
	}
	return OutputConsole, fmt.Errorf("%q: %w", s, ErrUnknownOutput)
}

// Output describes an output target. Path, FontName, Fonts, and Scale are
// only consulted by the kinds that need them; empty values fall back to
// defaults.
type Output struct {
	Kind     OutputKind
	Path     string
	FontName string
	Fonts    *FontBitmaps
	Scale    int
}

// Write sends grid to the target. Console output goes to stdout; file
// targets are created or truncated.
func (o Output) Write(stdout io.Writer, grid [][]Glyph) error {
	switch o.Kind {
	case OutputConsole:
		return WriteText(stdout, grid)
	case OutputHTML:
		return o.writeHTMLFile(grid)
	case OutputPNG:
		return o.writePNGFile(grid)
	}
	return fmt.Errorf("%v: %w", o.Kind, ErrUnknownOutput)
}

func (o Output) writeHTMLFile(grid [][]Glyph) error {
	path := o.Path
	if path == "" {
		path = DefaultHTMLPath
	}
	fontName := o.FontName
	if fontName == "" {
		fontName = DefaultHTMLFont
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteHTML(f, grid, fontName); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (o Output) writePNGFile(grid [][]Glyph) error {
	path := o.Path
	if path == "" {
		path = DefaultPNGPath
	}
	fonts := o.Fonts
	if fonts == nil {
		fonts = NewBasicFontBitmaps()
	}
	img := fonts.RenderGrid(grid, o.Scale, color.Black, color.White)
	return imageutil.SavePNG(img, path)
}

// WriteText writes one line per grid row with glyphs separated by a space,
// which roughly squares up terminal character cells.
func WriteText(w io.Writer, grid [][]Glyph) error {
	bw := bufio.NewWriter(w)
	for _, row := range grid {
		for x, g := range row {
			if x > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteRune(rune(g))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteHTML writes grid as a standalone HTML page in the given monospace
// font.
func WriteHTML(w io.Writer, grid [][]Glyph, fontName string) error {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n")
	sb.WriteString("<title>ASCII Art</title>\n</head>\n<body>\n")
	fmt.Fprintf(&sb, "<pre style=\"font-family:'%s'; font-size:5px; line-height:1.0; letter-spacing:0.5em\">\n",
		html.EscapeString(fontName))
	for _, row := range grid {
		var line strings.Builder
		for _, g := range row {
			line.WriteRune(rune(g))
		}
		sb.WriteString(html.EscapeString(line.String()))
		sb.WriteByte('\n')
	}
	sb.WriteString("</pre>\n</body>\n</html>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
