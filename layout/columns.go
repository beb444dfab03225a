package layout

import (
	"sort"

	"go.uber.org/zap"

	"github.com/tsawler/pageseg/model"
	"github.com/tsawler/pageseg/spatial"
	"github.com/tsawler/pageseg/whitespace"
)

// Gap is a whitespace rectangle accepted as a column boundary
type Gap struct {
	BBox model.BBox
}

// Width returns the width of the gap
func (g Gap) Width() float64 {
	return g.BBox.Width
}

// Height returns the height of the gap
func (g Gap) Height() float64 {
	return g.BBox.Height
}

// Center returns the X center of the gap
func (g Gap) Center() float64 {
	return g.BBox.Center().X
}

// spans reports whether y lies within the vertical extent of the gap
func (g Gap) spans(y float64) bool {
	return y >= g.BBox.Top() && y <= g.BBox.Bottom()
}

// splitColumns searches r for whitespace and splits it along the gaps that
// look like column boundaries. Boundaries are taken right to left; each
// extracts the content to its right within its vertical extent. The content
// left of the leftmost boundary used is extracted last.
func (s *Segmenter) splitColumns(r *Region, glyph float64) {
	if r.Len() == 0 {
		return
	}
	finder := whitespace.NewFinder(s.config.whitespaceConfig(glyph),
		whitespace.WithLogger(s.logger),
		whitespace.WithFilters(
			whitespace.RejectThinSides(s.config.ThinSideMargin*glyph, s.config.ThinSideLimit),
			whitespace.RequireLocalHeight(s.config.LocalHeightRatio, s.config.ThinSideMargin*glyph),
		))
	res := finder.Find(r.BBox, newRegionSource(r))
	r.Whitespace = append(r.Whitespace, res.Rects...)

	gaps := s.columnGaps(r, res.Rects, glyph)
	if len(gaps) == 0 {
		return
	}
	blocks := NewBlockDetectorWithConfig(s.config.blockConfig(glyph)).Detect(r.index)

	right := r.BBox.Right()
	var last *Gap
	for i := range gaps {
		g := gaps[i]
		if s.joinedAcross(r, g, blocks.Config) {
			s.logger.Debug("column gap crossed by a block", zap.Stringer("gap", g.BBox))
			continue
		}
		var candidates []*model.Item
		for _, it := range r.Items() {
			c := it.BBox.Center()
			if c.X > g.Center() && g.spans(c.Y) {
				candidates = append(candidates, it)
			}
		}
		rect := model.NewBBoxFromEdges(g.BBox.Right(), g.BBox.Top(), right, g.BBox.Bottom())
		if _, ok := s.extract(r, rect, candidates, nil); ok {
			right = g.BBox.Left()
			last = &gaps[i]
		}
	}

	if last != nil {
		var candidates []*model.Item
		for _, it := range r.Items() {
			c := it.BBox.Center()
			if c.X < last.Center() && last.spans(c.Y) {
				candidates = append(candidates, it)
			}
		}
		rect := model.NewBBoxFromEdges(r.BBox.Left(), last.BBox.Top(), last.BBox.Left(), last.BBox.Bottom())
		s.extract(r, rect, candidates, nil)
	}
	r.sortChildren()
}

// columnGaps selects the whitespace rectangles that can act as column
// boundaries, ordered right to left. A boundary lies inside the region,
// is wide enough, is taller than it is wide, and has content on both sides.
func (s *Segmenter) columnGaps(r *Region, rects []model.Whitespace, glyph float64) []Gap {
	b := r.BBox
	var gaps []Gap
	for _, ws := range rects {
		w := ws.BBox
		if w.Left() <= b.Left()+model.Epsilon || w.Right() >= b.Right()-model.Epsilon {
			continue
		}
		if w.Width < s.config.ColumnGapMinWidth*glyph || w.Height < s.config.ColumnGapMinHeight*glyph ||
			w.Height < w.Width {
			continue
		}
		if len(r.index.ItemsSurrounding(w, b.Width, spatial.Left)) == 0 ||
			len(r.index.ItemsSurrounding(w, b.Width, spatial.Right)) == 0 {
			continue
		}
		gaps = append(gaps, Gap{BBox: w})
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Center() > gaps[j].Center()
	})
	return gaps
}

// joinedAcross reports whether some row within the gap's extent has row
// neighbours of one block on both sides of the gap centre.
func (s *Segmenter) joinedAcross(r *Region, g Gap, cfg BlockConfig) bool {
	cx := g.Center()
	for _, y := range samples(g.BBox.Top(), g.BBox.Bottom(), cfg.ScanStep) {
		row := r.index.ContentAtRow(y)
		for i := 1; i < len(row); i++ {
			a, c := row[i-1], row[i]
			if a.Block == model.NoBlock || a.Block != c.Block {
				continue
			}
			if a.BBox.Center().X < cx && c.BBox.Center().X > cx &&
				horizontalGap(a.BBox, c.BBox) <= cfg.MaxHorizontalGap {
				return true
			}
		}
	}
	return false
}

// regionSource exposes a region's items to the whitespace search, with each
// sub-region standing in as one opaque obstacle.
type regionSource struct {
	*spatial.Index
	blockers []*model.Item
}

func newRegionSource(r *Region) regionSource {
	src := regionSource{Index: r.index}
	for i, c := range r.Children {
		src.blockers = append(src.blockers, &model.Item{
			ID:    -1 - i,
			Kind:  model.KindGraphic,
			BBox:  c.BBox,
			Block: model.NoBlock,
		})
	}
	return src
}

// ItemsIntersecting returns the items and sub-region stand-ins overlapping rect
func (s regionSource) ItemsIntersecting(rect model.BBox) []*model.Item {
	out := s.Index.ItemsIntersecting(rect)
	for _, b := range s.blockers {
		if b.BBox.Intersects(rect) {
			out = append(out, b)
		}
	}
	return out
}
