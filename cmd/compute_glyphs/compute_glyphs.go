package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii"
)

// computeFontGlyphs rasterizes the printable ASCII range of a TrueType
// font, or the built-in face when fontPath is empty.
func computeFontGlyphs(fontPath string) (*img2ascii.FontBitmaps, error) {
	if fontPath == "" {
		return img2ascii.NewBasicFontBitmaps(), nil
	}
	fb, err := img2ascii.LoadFontBitmaps(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	return fb, nil
}

// brightest returns the glyph with the highest intrinsic brightness, which
// makes a quick sanity check of a rasterized table.
func brightest(fb *img2ascii.FontBitmaps) (img2ascii.Glyph, float64, error) {
	model := img2ascii.NewBrightnessModel(fb)
	var (
		best      img2ascii.Glyph
		bestValue = -1.0
	)
	for _, g := range img2ascii.AllGlyphs() {
		v, err := model.Intrinsic(g)
		if err != nil {
			return 0, 0, err
		}
		if v > bestValue {
			best, bestValue = g, v
		}
	}
	return best, bestValue, nil
}

func main() {
	inputFont := flag.String("font", "", "Path to the input TrueType font (built-in face if empty)")
	outputFile := flag.String("output", "", "Path to save the output glyph data file (required)")
	verbose := flag.Bool("v", false, "log every glyph's coverage")
	flag.Parse()

	if *outputFile == "" {
		fmt.Println("The -output flag is required")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.WithField("font", *inputFont).Info("computing glyphs")

	fb, err := computeFontGlyphs(*inputFont)
	if err != nil {
		logger.WithError(err).Fatal("failed to compute glyphs")
	}

	for _, g := range img2ascii.AllGlyphs() {
		bitmap, err := fb.Rasterize(g)
		if err != nil {
			logger.WithError(err).Fatal("incomplete glyph table")
		}
		logger.WithFields(logrus.Fields{
			"glyph":    g.String(),
			"coverage": bitmap.Coverage(),
		}).Debug("glyph")
	}

	g, v, err := brightest(fb)
	if err != nil {
		logger.WithError(err).Fatal("failed to measure glyphs")
	}
	logger.WithFields(logrus.Fields{
		"glyphs":    fb.Len(),
		"brightest": g.String(),
		"intrinsic": v,
	}).Info("computed glyphs")

	if err := fb.SaveGlyphTable(*outputFile); err != nil {
		logger.WithError(err).Fatal("failed to save glyph data")
	}

	if fileInfo, err := os.Stat(*outputFile); err == nil {
		logger.Infof("Saved glyph data to %s (%.2f KB)", *outputFile, float64(fileInfo.Size())/1024)
	}

	if !strings.HasSuffix(strings.ToLower(*outputFile), ".glyphs") {
		logger.Warn("output does not end in .glyphs and will be read back as a TrueType font")
	}
	logger.Infof("Use with: asciify --font %s render IMAGE", filepath.Clean(*outputFile))
}
