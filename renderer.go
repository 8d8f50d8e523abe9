package img2ascii

import (
	"github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii/imageutil"
)

// Querier maps a brightness value to a glyph. Both CharIndex and
// NormalizedIndex implement it.
type Querier interface {
	Len() int
	Query(b float64, policy RoundingPolicy) (Glyph, error)
}

// RenderMatrix converts every cell of m to a glyph. The glyph count is
// checked once up front; the result has the dimensions of m.
func RenderMatrix(m Matrix, q Querier, policy RoundingPolicy) ([][]Glyph, error) {
	if q.Len() < 2 {
		return nil, ErrTooSmallSet
	}
	grid := make([][]Glyph, len(m))
	for y, row := range m {
		grid[y] = make([]Glyph, len(row))
		for x, b := range row {
			g, err := q.Query(b, policy)
			if err != nil {
				return nil, err
			}
			grid[y][x] = g
		}
	}
	return grid, nil
}

// Renderer encapsulates all state for one ASCII art session: the active
// character set, the glyph brightness model, the rounding policy, and the
// single-slot computation cache. Renderers share nothing, so two sessions
// pointing at different images never see each other's cached data.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	rasterizer GlyphRasterizer
	sampler    Sampler
	policy     RoundingPolicy
	charset    []Glyph
	logger     logrus.FieldLogger

	model *BrightnessModel
	index *CharIndex
	cache *Cache
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options.
// Defaults: the basicfont rasterizer, the luminance sampler, RoundNearest,
// DefaultCharset, and a logger that discards output.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		policy:  RoundNearest,
		charset: DefaultCharset,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.rasterizer == nil {
		r.rasterizer = NewBasicFontBitmaps()
	}
	if r.sampler == nil {
		r.sampler = NewLuminanceSampler()
	}
	if r.logger == nil {
		r.logger = discardLogger()
	}

	r.model = NewBrightnessModel(r.rasterizer)
	index, err := NewCharIndex(r.model, r.charset...)
	if err != nil {
		return nil, err
	}
	r.index = index
	r.cache = NewCache(r.logger)

	return r, nil
}

// WithRasterizer sets the glyph rasterizer used for intrinsic brightness.
func WithRasterizer(rasterizer GlyphRasterizer) RendererOption {
	return func(r *Renderer) {
		r.rasterizer = rasterizer
	}
}

// WithSampler sets the image brightness sampler.
func WithSampler(sampler Sampler) RendererOption {
	return func(r *Renderer) {
		r.sampler = sampler
	}
}

// WithRoundingPolicy sets the initial rounding policy.
func WithRoundingPolicy(policy RoundingPolicy) RendererOption {
	return func(r *Renderer) {
		r.policy = policy
	}
}

// WithCharset replaces the initial character set.
func WithCharset(glyphs ...Glyph) RendererOption {
	return func(r *Renderer) {
		r.charset = glyphs
	}
}

// WithLogger sets the logger for cache and render diagnostics.
func WithLogger(logger logrus.FieldLogger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// AddChar adds c to the character set.
func (r *Renderer) AddChar(c rune) error {
	return r.index.Add(c)
}

// RemoveChar removes c from the character set.
func (r *Renderer) RemoveChar(c rune) error {
	return r.index.Remove(c)
}

func (r *Renderer) SetRoundingPolicy(policy RoundingPolicy) {
	r.policy = policy
}

func (r *Renderer) RoundingPolicy() RoundingPolicy {
	return r.policy
}

// CurrentCharacterSet returns the active glyphs in ascending order.
func (r *Renderer) CurrentCharacterSet() []Glyph {
	return r.index.set.Glyphs()
}

// CacheStats returns the hit and miss counts of the session cache.
func (r *Renderer) CacheStats() CacheStats {
	return r.cache.Stats()
}

// Render converts img to a grid of glyphs with resolution columns. The
// brightness matrix is reused while the image and resolution are unchanged
// and the normalized index while the character set is unchanged.
func (r *Renderer) Render(img *imageutil.RGBAImage, resolution int) ([][]Glyph, error) {
	if r.index.Size() < 2 {
		return nil, ErrTooSmallSet
	}

	matrix, err := r.cache.BrightnessMatrix(img, resolution, r.sampler)
	if err != nil {
		return nil, err
	}

	idx, err := r.cache.Index(r.index.Set(), r.rebuildIndex)
	if err != nil {
		return nil, err
	}

	return RenderMatrix(matrix, idx, r.policy)
}

// rebuildIndex is the cache's rebuild function. set always equals the
// index's current membership.
func (r *Renderer) rebuildIndex(set CharacterSet) (*NormalizedIndex, error) {
	idx, err := r.index.Rebuild()
	if err != nil {
		return nil, err
	}
	if _, _, err := idx.Range(); err != nil {
		r.logger.WithError(err).Warn("glyphs are indistinguishable, rendering with the lowest code")
	}
	return idx, nil
}
