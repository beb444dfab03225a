package layout

import (
	"go.uber.org/zap"

	"github.com/tsawler/pageseg/model"
)

// mergeCaptions regroups each graphic sub-region of r with the nearest text
// sub-region within the merge distance, so a figure and its caption stay
// together. The pair is wrapped in a new region. The pass runs once: wrapped
// pairs are not considered again.
func (s *Segmenter) mergeCaptions(r *Region, glyph float64) {
	if len(r.Children) < 2 {
		return
	}
	limit := s.config.MergeDistance * glyph
	used := make(map[*Region]bool)
	var pairs [][2]*Region

	for _, g := range r.Children {
		if used[g] || !isGraphicRegion(g) {
			continue
		}
		var best *Region
		bestGap := limit
		for _, t := range r.Children {
			if t == g || used[t] || !isTextRegion(t) {
				continue
			}
			if d := g.BBox.Gap(t.BBox); d <= bestGap && (best == nil || d < bestGap) {
				best, bestGap = t, d
			}
		}
		if best == nil {
			continue
		}
		if len(r.Children) == 2 && r.Len() == 0 {
			// Wrapping would only rebuild r.
			return
		}
		used[g], used[best] = true, true
		pairs = append(pairs, [2]*Region{g, best})
	}
	if len(pairs) == 0 {
		return
	}

	wrapper := make(map[*Region]*Region)
	for _, p := range pairs {
		w := NewRegion(p[0].BBox.Union(p[1].BBox), s.config.CellSize)
		w.addChild(p[0])
		w.addChild(p[1])
		w.sortChildren()
		wrapper[p[0]], wrapper[p[1]] = w, w
		s.logger.Debug("merged graphic with caption",
			zap.Stringer("graphic", p[0].BBox),
			zap.Stringer("text", p[1].BBox))
	}

	children := make([]*Region, 0, len(r.Children))
	added := make(map[*Region]bool)
	for _, c := range r.Children {
		w, ok := wrapper[c]
		if !ok {
			children = append(children, c)
			continue
		}
		if !added[w] {
			children = append(children, w)
			added[w] = true
		}
	}
	r.setChildren(children)
	r.sortChildren()
}

// isGraphicRegion reports whether c was carved from a graphic or holds
// only graphics.
func isGraphicRegion(c *Region) bool {
	if c.IsContainer() {
		return true
	}
	items := c.AllItems()
	if len(items) == 0 {
		return false
	}
	for _, it := range items {
		if it.Kind != model.KindGraphic {
			return false
		}
	}
	return true
}

// isTextRegion reports whether c is an ordinary region holding text
func isTextRegion(c *Region) bool {
	if c.IsContainer() {
		return false
	}
	for _, it := range c.AllItems() {
		if it.IsText() {
			return true
		}
	}
	return false
}
