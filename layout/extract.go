package layout

import (
	"go.uber.org/zap"

	"github.com/tsawler/pageseg/model"
	"github.com/tsawler/pageseg/spatial"
)

// extract moves candidates, which must be direct items of parent, into a new
// child region covering rect clipped to the parent. Sub-regions of the parent
// lying inside the child rectangle move with them. The child is appended to
// parent.Children.
//
// The split is refused, leaving parent untouched, when candidates is empty,
// holds an item that is not a direct item of parent, holds every item of
// the parent's subtree, or holds only whitespace items.
func (s *Segmenter) extract(parent *Region, rect model.BBox, candidates []*model.Item, container *model.Item) (*Region, bool) {
	if reason := rejectReason(parent, candidates); reason != "" {
		s.logger.Debug("extraction rejected",
			zap.String("reason", reason),
			zap.Stringer("parent", parent.BBox),
			zap.Stringer("rect", rect),
			zap.Int("candidates", len(candidates)))
		return nil, false
	}

	bounds := model.ItemsBounds(candidates)
	if clipped := rect.Intersection(parent.BBox); !clipped.IsEmpty() {
		bounds = bounds.Union(clipped)
	}

	child := NewRegion(bounds, s.config.CellSize)
	child.Container = container
	parent.Mutate(func(ix *spatial.Index) {
		ix.Remove(candidates...)
	})
	child.Mutate(func(ix *spatial.Index) {
		ix.Add(candidates...)
	})

	kept := parent.Children[:0:0]
	for _, c := range parent.Children {
		if bounds.Contains(c.BBox) {
			child.addChild(c)
			continue
		}
		kept = append(kept, c)
	}
	child.sortChildren()
	parent.setChildren(append(kept, child))
	return child, true
}

// Reasons an extraction is refused.
const (
	reasonEmpty      = "empty"
	reasonForeign    = "not a direct item"
	reasonAllContent = "all content"
	reasonWhitespace = "whitespace only"
)

func rejectReason(parent *Region, candidates []*model.Item) string {
	if len(candidates) == 0 {
		return reasonEmpty
	}
	seen := make(map[*model.Item]struct{}, len(candidates))
	for _, it := range candidates {
		if _, dup := seen[it]; dup || !parent.index.Contains(it) {
			return reasonForeign
		}
		seen[it] = struct{}{}
	}
	if len(candidates) >= parent.TotalLen() {
		return reasonAllContent
	}
	for _, it := range candidates {
		if it.Kind != model.KindWhitespace {
			return ""
		}
	}
	return reasonWhitespace
}
