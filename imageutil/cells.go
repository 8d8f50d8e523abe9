package imageutil

import (
	"errors"
	"fmt"
)

// ErrInvalidResolution is returned when the requested number of columns is
// not positive or exceeds the padded image width.
var ErrInvalidResolution = errors.New("imageutil: invalid resolution")

// nextPowerOfTwo returns the smallest power of two >= n, never below 2.
func nextPowerOfTwo(n int) int {
	p := 2
	for p < n {
		p *= 2
	}
	return p
}

// PadToPowerOfTwo returns a copy of img whose dimensions are rounded up to
// powers of two, with the original centered on a white background.
func PadToPowerOfTwo(img *RGBAImage) *RGBAImage {
	width, height := nextPowerOfTwo(img.Width()), nextPowerOfTwo(img.Height())
	padded := CreateSolidImage(width, height, White)

	left := (width - img.Width()) / 2
	top := (height - img.Height()) / 2
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			padded.SetRGB(x+left, y+top, img.GetRGB(x, y))
		}
	}
	return padded
}

// ResolutionBounds returns the smallest and largest legal column count for
// an image once padded.
func ResolutionBounds(img *RGBAImage) (min, max int) {
	width, height := nextPowerOfTwo(img.Width()), nextPowerOfTwo(img.Height())
	min = width / height
	if min < 1 {
		min = 1
	}
	return min, width
}

// CellBrightness partitions img into resolution columns of square cells
// and returns the mean luminance of every cell, one row per slice. img is
// expected to be padded already; the cell side is width/resolution and the
// number of rows is height/side.
func CellBrightness(img *RGBAImage, resolution int) ([][]float64, error) {
	if resolution <= 0 || resolution > img.Width() {
		return nil, fmt.Errorf("%d columns for width %d: %w",
			resolution, img.Width(), ErrInvalidResolution)
	}
	side := img.Width() / resolution
	rows := img.Height() / side
	if rows == 0 {
		return nil, fmt.Errorf("%d columns leave no rows for %dx%d: %w",
			resolution, img.Width(), img.Height(), ErrInvalidResolution)
	}

	cells := make([][]float64, rows)
	for row := range cells {
		cells[row] = make([]float64, resolution)
		for col := range cells[row] {
			cells[row][col] = meanLuminance(img, col*side, row*side, side)
		}
	}
	return cells, nil
}

// meanLuminance averages the luminance of the side x side square at (x0, y0).
func meanLuminance(img *RGBAImage, x0, y0, side int) float64 {
	var sum float64
	for y := y0; y < y0+side; y++ {
		for x := x0; x < x0+side; x++ {
			sum += img.GetRGB(x, y).Luminance()
		}
	}
	return sum / float64(side*side)
}
