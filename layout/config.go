package layout

import (
	"github.com/pkg/errors"

	"github.com/tsawler/pageseg/whitespace"
)

// SegmenterConfig holds configuration for region segmentation. Lengths are
// multiples of the average glyph size of the region being split, so one
// configuration serves any font size.
type SegmenterConfig struct {
	// WhitespaceCount is the number of whitespace rectangles searched per
	// region (default: 20)
	WhitespaceCount int

	// WhitespaceMinWidth is the narrowest whitespace kept, in glyphs (default: 1.0)
	WhitespaceMinWidth float64

	// WhitespaceMinHeight is the shortest whitespace kept, in glyphs (default: 2.0)
	WhitespaceMinHeight float64

	// MaxTouchingObstacles is the most items empty whitespace may clip (default: 3)
	MaxTouchingObstacles int

	// ObstacleOverlapRatio is the largest share of an item that empty
	// whitespace may cover (default: 0.3)
	ObstacleOverlapRatio float64

	// CandidateOverlapRatio is the largest share of a whitespace rectangle
	// one item may cover (default: 0.4)
	CandidateOverlapRatio float64

	// WhitespaceOverlapTolerance is the largest overlap ratio between two
	// accepted whitespace rectangles (default: 0.05)
	WhitespaceOverlapTolerance float64

	// MaxQueueSize caps the whitespace search queue (default: 10000)
	MaxQueueSize int

	// MaxIterations caps the candidates examined per search (default: 50000)
	MaxIterations int

	// ThinSideMargin is the width searched beside a gap for neighbours, in
	// glyphs (default: 3.0)
	ThinSideMargin float64

	// ThinSideLimit rejects gaps with at most this many text items on both
	// sides (default: 2)
	ThinSideLimit int

	// LocalHeightRatio rejects gaps shorter than this share of the
	// neighbouring item height (default: 0.8)
	LocalHeightRatio float64

	// ColumnGapMinWidth is the narrowest column boundary, in glyphs (default: 1.5)
	ColumnGapMinWidth float64

	// ColumnGapMinHeight is the shortest column boundary, in glyphs (default: 4.0)
	ColumnGapMinHeight float64

	// SeparatorSpanRatio is the share of the region a rule must span (default: 0.6)
	SeparatorSpanRatio float64

	// SeparatorAspectRatio is the smallest length to thickness ratio of a
	// rule (default: 10)
	SeparatorAspectRatio float64

	// ContainerMargin enlarges a container graphic before collecting its
	// content, in glyphs (default: 0.5)
	ContainerMargin float64

	// ContainerInsideRatio is the share of an item that must lie inside a
	// container to belong to it (default: 0.9)
	ContainerInsideRatio float64

	// ContainerOutsideRatio is the share below which an item is ignored by
	// a container (default: 0.1)
	ContainerOutsideRatio float64

	// SmallGraphicRatio is the largest share of the region area a rejected
	// container may cover and still be kept as content (default: 0.25)
	SmallGraphicRatio float64

	// MergeDistance is the largest gap between a graphic sub-region and a
	// text sibling that are merged back together, in glyphs (default: 1.5)
	MergeDistance float64

	// MaxDepth bounds the region tree depth (default: 32)
	MaxDepth int

	// BlockHorizontalGap is the block detector row gap, in glyphs (default: 1.5)
	BlockHorizontalGap float64

	// BlockVerticalGap is the block detector column gap, in glyphs (default: 1.0)
	BlockVerticalGap float64

	// BlockScanStep is the block detector sampling step, in glyphs (default: 0.25)
	BlockScanStep float64

	// CellSize is the spatial index bucket size, in points (default: 16)
	CellSize float64
}

// DefaultSegmenterConfig returns sensible default configuration
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		WhitespaceCount:            20,
		WhitespaceMinWidth:         1.0,
		WhitespaceMinHeight:        2.0,
		MaxTouchingObstacles:       3,
		ObstacleOverlapRatio:       0.3,
		CandidateOverlapRatio:      0.4,
		WhitespaceOverlapTolerance: 0.05,
		MaxQueueSize:               10000,
		MaxIterations:              50000,
		ThinSideMargin:             3.0,
		ThinSideLimit:              2,
		LocalHeightRatio:           0.8,
		ColumnGapMinWidth:          1.5,
		ColumnGapMinHeight:         4.0,
		SeparatorSpanRatio:         0.6,
		SeparatorAspectRatio:       10.0,
		ContainerMargin:            0.5,
		ContainerInsideRatio:       0.9,
		ContainerOutsideRatio:      0.1,
		SmallGraphicRatio:          0.25,
		MergeDistance:              1.5,
		MaxDepth:                   32,
		BlockHorizontalGap:         1.5,
		BlockVerticalGap:           1.0,
		BlockScanStep:              0.25,
		CellSize:                   16.0,
	}
}

// Validate checks that the configuration is usable
func (c SegmenterConfig) Validate() error {
	if err := c.whitespaceConfig(defaultGlyphSize).Validate(); err != nil {
		return err
	}
	ratios := []struct {
		name  string
		value float64
	}{
		{"local height ratio", c.LocalHeightRatio},
		{"separator span ratio", c.SeparatorSpanRatio},
		{"container inside ratio", c.ContainerInsideRatio},
		{"container outside ratio", c.ContainerOutsideRatio},
		{"small graphic ratio", c.SmallGraphicRatio},
	}
	for _, r := range ratios {
		if r.value < 0 || r.value > 1 {
			return errors.Errorf("layout: %s must be in [0,1], got %g", r.name, r.value)
		}
	}
	if c.ContainerOutsideRatio >= c.ContainerInsideRatio {
		return errors.Errorf("layout: container outside ratio %g must be below inside ratio %g",
			c.ContainerOutsideRatio, c.ContainerInsideRatio)
	}
	if c.SeparatorAspectRatio < 1 {
		return errors.Errorf("layout: separator aspect ratio must be at least 1, got %g", c.SeparatorAspectRatio)
	}
	if c.ThinSideLimit < 0 {
		return errors.Errorf("layout: thin side limit must not be negative, got %d", c.ThinSideLimit)
	}
	if c.MaxDepth < 1 {
		return errors.Errorf("layout: max depth must be at least 1, got %d", c.MaxDepth)
	}
	for name, v := range map[string]float64{
		"column gap min width":  c.ColumnGapMinWidth,
		"column gap min height": c.ColumnGapMinHeight,
		"thin side margin":      c.ThinSideMargin,
		"container margin":      c.ContainerMargin,
		"merge distance":        c.MergeDistance,
		"block horizontal gap":  c.BlockHorizontalGap,
		"block vertical gap":    c.BlockVerticalGap,
	} {
		if v < 0 {
			return errors.Errorf("layout: %s must not be negative, got %g", name, v)
		}
	}
	if c.BlockScanStep <= 0 {
		return errors.Errorf("layout: block scan step must be positive, got %g", c.BlockScanStep)
	}
	return nil
}

// whitespaceConfig converts the whitespace settings to points for a region
// whose glyph size is glyph.
func (c SegmenterConfig) whitespaceConfig(glyph float64) whitespace.Config {
	return whitespace.Config{
		MaxRects:              c.WhitespaceCount,
		MinWidth:              c.WhitespaceMinWidth * glyph,
		MinHeight:             c.WhitespaceMinHeight * glyph,
		MaxTouchingObstacles:  c.MaxTouchingObstacles,
		ObstacleOverlapRatio:  c.ObstacleOverlapRatio,
		CandidateOverlapRatio: c.CandidateOverlapRatio,
		OverlapTolerance:      c.WhitespaceOverlapTolerance,
		MaxQueueSize:          c.MaxQueueSize,
		MaxIterations:         c.MaxIterations,
	}
}

// blockConfig converts the block settings to points
func (c SegmenterConfig) blockConfig(glyph float64) BlockConfig {
	return BlockConfig{
		MaxHorizontalGap: c.BlockHorizontalGap * glyph,
		MaxVerticalGap:   c.BlockVerticalGap * glyph,
		ScanStep:         c.BlockScanStep * glyph,
	}
}
