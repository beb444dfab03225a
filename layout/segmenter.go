package layout

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tsawler/pageseg/model"
	"github.com/tsawler/pageseg/spatial"
)

// SegmenterOption configures a Segmenter
type SegmenterOption func(*Segmenter)

// WithLogger sets the logger used for segmentation diagnostics
func WithLogger(logger *zap.Logger) SegmenterOption {
	return func(s *Segmenter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Segmenter builds the region tree of a page. It holds no per-page state;
// one Segmenter may serve many goroutines, each segmenting its own page.
type Segmenter struct {
	config SegmenterConfig
	logger *zap.Logger
}

// NewSegmenter creates a segmenter with default configuration
func NewSegmenter() *Segmenter {
	return NewSegmenterWithConfig(DefaultSegmenterConfig())
}

// NewSegmenterWithConfig creates a segmenter with custom configuration
func NewSegmenterWithConfig(config SegmenterConfig, opts ...SegmenterOption) *Segmenter {
	s := &Segmenter{
		config: config,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the segmenter configuration
func (s *Segmenter) Config() SegmenterConfig {
	return s.config
}

// Segment builds the region tree for page. The page items move into the
// tree: their Block tags and, for rejected containers, their Class are
// rewritten. An invalid configuration or invalid page or item geometry is
// reported as an error.
func (s *Segmenter) Segment(page *model.Page) (*Region, error) {
	if err := s.config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid segmenter configuration")
	}
	if page == nil {
		return nil, errors.New("layout: nil page")
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	bounds := page.BBox()
	if len(page.Items) > 0 {
		bounds = bounds.Union(model.ItemsBounds(page.Items))
	}
	root := NewRegion(bounds, s.config.CellSize)
	root.Mutate(func(ix *spatial.Index) {
		ix.Add(page.Items...)
	})

	s.logger.Debug("segmenting page",
		zap.Int("page", page.Number),
		zap.Int("items", root.Len()),
		zap.Stringer("bbox", bounds))

	s.segment(root, 0)
	return root, nil
}

// segment runs container extraction, separator splitting and column
// splitting on r, then recurses into the produced sub-regions.
func (s *Segmenter) segment(r *Region, depth int) {
	glyph := r.AverageGlyphSize()

	if depth < s.config.MaxDepth {
		s.extractContainers(r, glyph)
		if !r.IsContainer() && !s.splitSeparators(r) {
			s.splitColumns(r, glyph)
		}
		r.sortChildren()

		for _, c := range r.Children {
			if c.IsContainer() {
				c.Walk(func(sub *Region) bool {
					s.detectBlocks(sub, sub.AverageGlyphSize())
					return true
				})
				continue
			}
			s.segment(c, depth+1)
		}
		s.mergeCaptions(r, glyph)
	} else {
		s.logger.Debug("region depth limit reached", zap.Int("depth", depth), zap.Stringer("bbox", r.BBox))
	}

	s.detectBlocks(r, glyph)
}

// detectBlocks groups the direct items of r.
func (s *Segmenter) detectBlocks(r *Region, glyph float64) {
	if r.Len() == 0 {
		r.Blocks = nil
		return
	}
	detector := NewBlockDetectorWithConfig(s.config.blockConfig(glyph))
	r.Blocks = detector.Detect(r.index).Blocks
}
