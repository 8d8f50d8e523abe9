package img2ascii

import (
	"github.com/wbrown/img2ascii/imageutil"
)

// Matrix holds per-cell brightness values in [0,1], one slice per row.
type Matrix [][]float64

func (m Matrix) Rows() int {
	return len(m)
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	if m == nil {
		return nil
	}
	clone := make(Matrix, len(m))
	for i, row := range m {
		clone[i] = append([]float64(nil), row...)
	}
	return clone
}

func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Sampler partitions an image into cells and returns their brightness.
// For a fixed image and resolution the result must not change.
type Sampler interface {
	Sample(img *imageutil.RGBAImage, resolution int) (Matrix, error)
}

// LuminanceSampler pads the image to power-of-two dimensions and averages
// BT.709 luminance over square cells. The padded copy of the most recent
// image is kept, so changing only the resolution does not pad again.
type LuminanceSampler struct {
	source *imageutil.RGBAImage
	padded *imageutil.RGBAImage
}

// NewLuminanceSampler returns the default sampler.
func NewLuminanceSampler() *LuminanceSampler {
	return &LuminanceSampler{}
}

// Sample implements Sampler.
func (s *LuminanceSampler) Sample(img *imageutil.RGBAImage, resolution int) (Matrix, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	if s.source != img {
		s.padded = imageutil.PadToPowerOfTwo(img)
		s.source = img
	}
	cells, err := imageutil.CellBrightness(s.padded, resolution)
	if err != nil {
		return nil, err
	}
	return Matrix(cells), nil
}
