package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
)

const (
	prompt     = ">>> "
	cmdExit    = "exit"
	cmdChars   = "chars"
	cmdAdd     = "add"
	cmdRemove  = "remove"
	cmdRes     = "res"
	cmdRound   = "round"
	cmdOutput  = "output"
	cmdRender  = "asciiArt"
	argUp      = "up"
	argDown    = "down"
	msgBadAdd  = "Did not add due to incorrect format."
	msgBadRem  = "Did not remove due to incorrect format."
	msgResFmt  = "Did not change resolution due to incorrect format."
	msgResOOB  = "Did not change resolution due to exceeding boundaries."
	msgRoundFm = "Did not change rounding method due to incorrect format."
	msgOutFmt  = "Did not change output method due to incorrect format."
	msgSmall   = "Did not execute. Charset is too small."
	msgUnknown = "Did not execute due to incorrect command."
)

// shell is the interactive session: one image, one Renderer, and the
// current resolution and output target.
type shell struct {
	renderer   *img2ascii.Renderer
	img        *imageutil.RGBAImage
	resolution int
	minRes     int
	maxRes     int
	output     img2ascii.Output
	out        io.Writer
	logger     logrus.FieldLogger
}

func newShell(
	renderer *img2ascii.Renderer,
	img *imageutil.RGBAImage,
	resolution int,
	output img2ascii.Output,
	out io.Writer,
	logger logrus.FieldLogger,
) *shell {
	minRes, maxRes := imageutil.ResolutionBounds(img)
	if resolution < minRes {
		resolution = minRes
	}
	if resolution > maxRes {
		resolution = maxRes
	}
	return &shell{
		renderer:   renderer,
		img:        img,
		resolution: resolution,
		minRes:     minRes,
		maxRes:     maxRes,
		output:     output,
		out:        out,
		logger:     logger,
	}
}

// run reads commands until "exit" or end of input.
func (s *shell) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == cmdExit {
			return nil
		}
		if err := s.dispatch(fields[0], fields[1:]); err != nil {
			return err
		}
	}
}

// dispatch executes one command. Only unexpected failures are returned;
// user mistakes are reported on the output and the loop continues.
func (s *shell) dispatch(cmd string, args []string) error {
	switch cmd {
	case cmdChars:
		s.printChars()
	case cmdAdd:
		s.mutateChars(args, s.renderer.AddChar, msgBadAdd)
	case cmdRemove:
		s.mutateChars(args, s.renderer.RemoveChar, msgBadRem)
	case cmdRes:
		s.changeResolution(args)
	case cmdRound:
		s.changeRounding(args)
	case cmdOutput:
		s.changeOutput(args)
	case cmdRender:
		return s.render()
	default:
		s.println(msgUnknown)
	}
	return nil
}

func (s *shell) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

func (s *shell) printChars() {
	glyphs := s.renderer.CurrentCharacterSet()
	parts := make([]string, len(glyphs))
	for i, g := range glyphs {
		parts[i] = g.String()
	}
	s.println(strings.Join(parts, " "))
}

func (s *shell) mutateChars(args []string, apply func(rune) error, badFormat string) {
	if len(args) != 1 {
		s.println(badFormat)
		return
	}
	runes, ok := parseCharArg(args[0])
	if !ok {
		s.println(badFormat)
		return
	}
	for _, r := range runes {
		if err := apply(r); err != nil {
			s.logger.WithError(err).Debug("rejected character")
			s.println(badFormat)
			return
		}
	}
}

func (s *shell) changeResolution(args []string) {
	if len(args) != 1 {
		s.println(msgResFmt)
		return
	}
	next := s.resolution
	switch args[0] {
	case argUp:
		next *= 2
	case argDown:
		next /= 2
	default:
		s.println(msgResFmt)
		return
	}
	if next < s.minRes || next > s.maxRes {
		s.println(msgResOOB)
		return
	}
	s.resolution = next
	s.println(fmt.Sprintf("Resolution set to %d.", next))
}

func (s *shell) changeRounding(args []string) {
	if len(args) != 1 {
		s.println(msgRoundFm)
		return
	}
	policy, err := img2ascii.ParseRoundingPolicy(args[0])
	if err != nil || args[0] == "nearest" {
		s.println(msgRoundFm)
		return
	}
	s.renderer.SetRoundingPolicy(policy)
}

func (s *shell) changeOutput(args []string) {
	if len(args) != 1 {
		s.println(msgOutFmt)
		return
	}
	kind, err := img2ascii.ParseOutputKind(args[0])
	if err != nil {
		s.println(msgOutFmt)
		return
	}
	s.output.Kind = kind
}

func (s *shell) render() error {
	grid, err := s.renderer.Render(s.img, s.resolution)
	if errors.Is(err, img2ascii.ErrTooSmallSet) {
		s.println(msgSmall)
		return nil
	}
	if err != nil {
		return err
	}

	stats := s.renderer.CacheStats()
	s.logger.WithFields(logrus.Fields{
		"resolution":    s.resolution,
		"matrix_hits":   stats.MatrixHits,
		"matrix_misses": stats.MatrixMisses,
		"index_hits":    stats.IndexHits,
		"index_misses":  stats.IndexMisses,
	}).Debug("rendered")

	return s.output.Write(s.out, grid)
}
