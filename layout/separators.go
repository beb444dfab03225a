package layout

import (
	"math"

	"go.uber.org/zap"

	"github.com/tsawler/pageseg/model"
)

// separator is a rule that qualifies to split a region
type separator struct {
	item       *model.Item
	horizontal bool
	span       float64
}

// splitSeparators splits r on its most prominent separator rule, extracting
// the content on each side into its own sub-region. The rule stays in r.
// It reports whether a split happened.
func (s *Segmenter) splitSeparators(r *Region) bool {
	sep, ok := s.findSeparator(r)
	if !ok {
		return false
	}

	rule := sep.item.BBox
	var before, after []*model.Item
	for _, it := range r.Items() {
		if it == sep.item {
			continue
		}
		c := it.BBox.Center()
		if sep.horizontal && c.Y < rule.Center().Y || !sep.horizontal && c.X < rule.Center().X {
			before = append(before, it)
		} else {
			after = append(after, it)
		}
	}
	if len(before) == 0 || len(after) == 0 {
		return false
	}

	b := r.BBox
	var beforeRect, afterRect model.BBox
	if sep.horizontal {
		beforeRect = model.NewBBoxFromEdges(b.Left(), b.Top(), b.Right(), rule.Top())
		afterRect = model.NewBBoxFromEdges(b.Left(), rule.Bottom(), b.Right(), b.Bottom())
	} else {
		beforeRect = model.NewBBoxFromEdges(b.Left(), b.Top(), rule.Left(), b.Bottom())
		afterRect = model.NewBBoxFromEdges(rule.Right(), b.Top(), b.Right(), b.Bottom())
	}

	s.logger.Debug("separator split",
		zap.Int("item", sep.item.ID),
		zap.Bool("horizontal", sep.horizontal),
		zap.Float64("span", sep.span))

	_, okBefore := s.extract(r, beforeRect, before, nil)
	_, okAfter := s.extract(r, afterRect, after, nil)
	return okBefore || okAfter
}

// findSeparator returns the qualifying rule with the largest span. A rule
// qualifies when it is long and thin enough and nothing else crosses the
// line it extends to across the region.
func (s *Segmenter) findSeparator(r *Region) (separator, bool) {
	var best separator
	found := false
	b := r.BBox
	for _, it := range r.Items() {
		if !it.IsGraphic() || !it.Class.IsSeparator() {
			continue
		}
		horizontal := it.Class == model.GraphicHorizontalSeparator
		length, thickness, extent := it.BBox.Width, it.BBox.Height, b.Width
		if !horizontal {
			length, thickness, extent = it.BBox.Height, it.BBox.Width, b.Height
		}
		if extent <= 0 || length < s.config.SeparatorSpanRatio*extent {
			continue
		}
		if thickness > 0 && length/thickness < s.config.SeparatorAspectRatio {
			continue
		}

		line := model.NewBBoxFromEdges(b.Left(), it.BBox.Top(), b.Right(), it.BBox.Bottom())
		if !horizontal {
			line = model.NewBBoxFromEdges(it.BBox.Left(), b.Top(), it.BBox.Right(), b.Bottom())
		}
		if crossed(r, line, it) {
			continue
		}

		span := length / extent
		if !found || span > best.span+model.Epsilon || math.Abs(span-best.span) <= model.Epsilon && it.ID < best.item.ID {
			best = separator{item: it, horizontal: horizontal, span: span}
			found = true
		}
	}
	return best, found
}

// crossed reports whether an item other than rule, or a sub-region of r,
// overlaps line
func crossed(r *Region, line model.BBox, rule *model.Item) bool {
	for _, it := range r.index.ItemsIntersecting(line) {
		if it != rule {
			return true
		}
	}
	for _, c := range r.Children {
		if c.BBox.OverlapArea(line) > 0 {
			return true
		}
	}
	return false
}
