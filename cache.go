package img2ascii

import (
	"github.com/sirupsen/logrus"
	"github.com/wbrown/img2ascii/imageutil"
)

// BrightnessSnapshot is the brightness matrix computed for one image at one
// resolution. The image is identified by pointer, not by pixel content.
type BrightnessSnapshot struct {
	Image      *imageutil.RGBAImage
	Resolution int
	Matrix     Matrix
}

func (s *BrightnessSnapshot) matches(img *imageutil.RGBAImage, resolution int) bool {
	return s != nil && s.Image == img && s.Resolution == resolution
}

// IndexSnapshot is the normalized index built for one exact character set.
type IndexSnapshot struct {
	Set   CharacterSet
	Index *NormalizedIndex
}

func (s *IndexSnapshot) matches(set CharacterSet) bool {
	return s != nil && s.Set.Equal(set)
}

// CacheStats counts reuse of each cache slot.
type CacheStats struct {
	MatrixHits   int
	MatrixMisses int
	IndexHits    int
	IndexMisses  int
}

// Cache memoizes the last brightness matrix and the last normalized index.
// Each slot holds exactly one snapshot; a request with a different key
// replaces it. A failed computation leaves the previous snapshot in place.
//
// A Cache belongs to one Renderer and is not safe for concurrent use.
type Cache struct {
	brightness *BrightnessSnapshot
	index      *IndexSnapshot
	stats      CacheStats
	logger     logrus.FieldLogger
}

// NewCache returns an empty cache. A nil logger discards output.
func NewCache(logger logrus.FieldLogger) *Cache {
	if logger == nil {
		logger = discardLogger()
	}
	return &Cache{logger: logger}
}

// BrightnessMatrix returns the matrix for (img, resolution), calling
// sampler only when the held snapshot has a different key. The result is
// a copy; writing to it does not affect the snapshot.
func (c *Cache) BrightnessMatrix(img *imageutil.RGBAImage, resolution int, sampler Sampler) (Matrix, error) {
	if c.brightness.matches(img, resolution) {
		c.stats.MatrixHits++
		return c.brightness.Matrix.Clone(), nil
	}

	matrix, err := sampler.Sample(img, resolution)
	if err != nil {
		return nil, err
	}
	c.stats.MatrixMisses++
	c.brightness = &BrightnessSnapshot{Image: img, Resolution: resolution, Matrix: matrix}
	c.logger.WithFields(logrus.Fields{
		"resolution": resolution,
		"rows":       matrix.Rows(),
		"cols":       matrix.Cols(),
	}).Debug("sampled brightness matrix")
	return matrix.Clone(), nil
}

// Index returns the normalized index for set, calling rebuild only when the
// held snapshot was built for a different membership.
func (c *Cache) Index(set CharacterSet, rebuild func(CharacterSet) (*NormalizedIndex, error)) (*NormalizedIndex, error) {
	if c.index.matches(set) {
		c.stats.IndexHits++
		return c.index.Index, nil
	}

	snapshot := set.Clone()
	idx, err := rebuild(snapshot)
	if err != nil {
		return nil, err
	}
	c.stats.IndexMisses++
	c.index = &IndexSnapshot{Set: snapshot, Index: idx}
	c.logger.WithFields(logrus.Fields{
		"glyphs":    idx.Len(),
		"reachable": idx.Reachable(),
	}).Debug("rebuilt normalized index")
	return idx, nil
}

// Stats returns hit and miss counts since creation or the last Reset.
func (c *Cache) Stats() CacheStats {
	return c.stats
}

// Reset drops both snapshots and clears the statistics.
func (c *Cache) Reset() {
	c.brightness = nil
	c.index = nil
	c.stats = CacheStats{}
}
