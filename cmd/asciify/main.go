package main

import (
	"io"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

const (
	defaultResolution = 128
	defaultChars      = "0-9"
	defaultScale      = 2
)

func newLogger(c *cli.Context) logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// loadFonts returns the glyph bitmaps named by --font, or the built-in
// face when the flag is empty.
func loadFonts(c *cli.Context) (*img2ascii.FontBitmaps, error) {
	if path := c.String("font"); path != "" {
		return img2ascii.LoadFontBitmaps(path)
	}
	return img2ascii.NewBasicFontBitmaps(), nil
}

// setup loads the image and builds a Renderer and Output from the flags
// shared by every command.
func setup(c *cli.Context, logger logrus.FieldLogger) (*img2ascii.Renderer, *imageutil.RGBAImage, img2ascii.Output, error) {
	var output img2ascii.Output

	fonts, err := loadFonts(c)
	if err != nil {
		return nil, nil, output, err
	}

	img, err := imageutil.LoadImage(c.Args().First())
	if err != nil {
		return nil, nil, output, err
	}

	glyphs, ok := parseCharset(c.String("chars"))
	if !ok {
		return nil, nil, output, cli.Exit("invalid --chars value: "+c.String("chars"), 1)
	}

	policy, err := img2ascii.ParseRoundingPolicy(c.String("round"))
	if err != nil {
		return nil, nil, output, err
	}

	kind, err := img2ascii.ParseOutputKind(c.String("output"))
	if err != nil {
		return nil, nil, output, err
	}

	renderer, err := img2ascii.NewRenderer(
		img2ascii.WithRasterizer(fonts),
		img2ascii.WithCharset(glyphs...),
		img2ascii.WithRoundingPolicy(policy),
		img2ascii.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, output, err
	}

	output = img2ascii.Output{
		Kind:  kind,
		Path:  c.String("out"),
		Fonts: fonts,
		Scale: defaultScale,
	}

	logger.WithFields(logrus.Fields{
		"font":   fonts.Name(),
		"width":  img.Width(),
		"height": img.Height(),
		"chars":  len(glyphs),
		"round":  policy,
		"output": kind,
	}).Debug("loaded")

	return renderer, img, output, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "asciify"
	app.Usage = "Render images as ASCII art by glyph brightness"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.StringFlag{
			Name:    "font",
			EnvVars: []string{"ASCIIFY_FONT"},
			Usage:   "glyph table (.glyphs) or TrueType font used to measure characters",
		},
	}

	renderFlags := []cli.Flag{
		&cli.IntFlag{
			Name:  "resolution",
			Value: defaultResolution,
			Usage: "characters per row",
		},
		&cli.StringFlag{
			Name:  "chars",
			Value: defaultChars,
			Usage: "comma separated characters or ranges, e.g. 0-9,a-z,space",
		},
		&cli.StringFlag{
			Name:  "round",
			Value: img2ascii.RoundNearest.String(),
			Usage: "rounding between characters: up, down or abs",
		},
		&cli.StringFlag{
			Name:  "output",
			Value: img2ascii.OutputConsole.String(),
			Usage: "console, html or png",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "output file for html and png",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "render",
			Usage:     "Render an image once",
			ArgsUsage: "IMAGE",
			Flags:     renderFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)
				renderer, img, output, err := setup(c, logger)
				if err != nil {
					return cli.Exit(err, 1)
				}

				grid, err := renderer.Render(img, c.Int("resolution"))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := output.Write(os.Stdout, grid); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "shell",
			Usage:     "Explore character sets and resolutions interactively",
			ArgsUsage: "IMAGE",
			Flags:     renderFlags,
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)
				renderer, img, output, err := setup(c, logger)
				if err != nil {
					return cli.Exit(err, 1)
				}

				sh := newShell(renderer, img, c.Int("resolution"), output, os.Stdout, logger)
				if err := sh.run(os.Stdin); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
