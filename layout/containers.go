package layout

import (
	"sort"

	"go.uber.org/zap"

	"github.com/tsawler/pageseg/model"
	"github.com/tsawler/pageseg/spatial"
)

// extractContainers carves a sub-region out of every container graphic held
// directly by r, innermost first. A container that straddles other content
// is kept as ordinary content when small, otherwise dropped. A container
// framing all of r's content makes r itself the container region.
func (s *Segmenter) extractContainers(r *Region, glyph float64) {
	var containers []*model.Item
	for _, it := range r.Items() {
		if it.IsGraphic() && it.Class == model.GraphicContainer {
			containers = append(containers, it)
		}
	}
	sort.SliceStable(containers, func(i, j int) bool {
		return containers[i].BBox.Area() < containers[j].BBox.Area()
	})

	margin := s.config.ContainerMargin * glyph
	for _, g := range containers {
		if !r.index.Contains(g) {
			continue
		}
		area := g.BBox.Expand(margin)
		members, conflict := s.containerMembers(r, g, area)
		if conflict {
			s.rejectContainer(r, g)
			continue
		}
		if r.Container == nil && s.framesRegion(r, area, members) {
			s.logger.Debug("region framed by container",
				zap.Int("item", g.ID),
				zap.Stringer("bbox", r.BBox))
			r.Container = g
			continue
		}
		s.extract(r, area, members, g)
	}
}

// containerMembers returns g and the items lying inside area. conflict is
// set when an item straddles the boundary. Items enclosing area are
// ignored.
func (s *Segmenter) containerMembers(r *Region, g *model.Item, area model.BBox) ([]*model.Item, bool) {
	members := []*model.Item{g}
	for _, it := range r.index.ItemsIntersecting(area) {
		if it == g {
			continue
		}
		inside := it.BBox.OverlapArea(area) / it.BBox.Area()
		switch {
		case it.BBox.Contains(area):
			// An enclosing graphic, such as an outer frame.
		case inside >= s.config.ContainerInsideRatio:
			members = append(members, it)
		case inside < s.config.ContainerOutsideRatio:
		default:
			return nil, true
		}
	}
	return members, false
}

// framesRegion reports whether members, all lying within area, are every
// direct item of r and area holds every sub-region of r.
func (s *Segmenter) framesRegion(r *Region, area model.BBox, members []*model.Item) bool {
	if len(members) < r.Len() {
		return false
	}
	for _, c := range r.Children {
		if !area.Contains(c.BBox) {
			return false
		}
	}
	return true
}

// rejectContainer demotes g to an image when it is small relative to r and
// drops it from r otherwise.
func (s *Segmenter) rejectContainer(r *Region, g *model.Item) {
	small := g.BBox.Area() <= s.config.SmallGraphicRatio*r.BBox.Area()
	s.logger.Debug("container not extracted",
		zap.Int("item", g.ID),
		zap.Stringer("bbox", g.BBox),
		zap.Bool("kept", small))
	if small {
		g.Class = model.GraphicImage
		return
	}
	r.Mutate(func(ix *spatial.Index) {
		ix.Remove(g)
	})
	r.Dropped = append(r.Dropped, g)
}
