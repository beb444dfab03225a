package spatial

import (
	"sort"

	"github.com/tsawler/pageseg/model"
)

// DefaultCellSize is the bucket width, in points, used by New when the
// requested cell size is not positive.
const DefaultCellSize = 16.0

// Direction selects the side of a rectangle searched by ItemsSurrounding
type Direction int

const (
	Left Direction = iota
	Right
	Above
	Below
)

// String returns a string representation of the direction
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Above:
		return "above"
	case Below:
		return "below"
	default:
		return "unknown"
	}
}

// Index holds the content items of one region and answers row, column and
// range queries without scanning every item. Items must not change their
// BBox while they are indexed.
//
// Index is not safe for concurrent mutation; each region is owned by the
// goroutine segmenting its page.
type Index struct {
	items map[*model.Item]struct{}
	cols  *axis
	rows  *axis

	version uint64

	bounds        model.BBox
	boundsVersion uint64
}

// New creates an empty index whose buckets are cellSize points wide.
func New(cellSize float64) *Index {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Index{
		items: make(map[*model.Item]struct{}),
		cols:  newAxis(cellSize),
		rows:  newAxis(cellSize),
		// Start at 1 so a zero-valued cache version is always stale.
		version: 1,
	}
}

// NewWithItems creates an index holding items.
func NewWithItems(cellSize float64, items []*model.Item) *Index {
	ix := New(cellSize)
	ix.Add(items...)
	return ix
}

// Add inserts items. Items already present are ignored.
func (ix *Index) Add(items ...*model.Item) {
	for _, it := range items {
		if it == nil {
			continue
		}
		if _, ok := ix.items[it]; ok {
			continue
		}
		ix.items[it] = struct{}{}
		ix.cols.insert(it, it.BBox.Left(), it.BBox.Right())
		ix.rows.insert(it, it.BBox.Top(), it.BBox.Bottom())
		ix.version++
	}
}

// Remove deletes items and returns how many were present.
func (ix *Index) Remove(items ...*model.Item) int {
	removed := 0
	for _, it := range items {
		if _, ok := ix.items[it]; !ok {
			continue
		}
		delete(ix.items, it)
		ix.cols.remove(it, it.BBox.Left(), it.BBox.Right())
		ix.rows.remove(it, it.BBox.Top(), it.BBox.Bottom())
		ix.version++
		removed++
	}
	return removed
}

// Contains reports whether it is held by the index
func (ix *Index) Contains(it *model.Item) bool {
	_, ok := ix.items[it]
	return ok
}

// Len returns the number of items held
func (ix *Index) Len() int {
	return len(ix.items)
}

// Version changes every time the item set changes. Owners cache derived
// values against it.
func (ix *Index) Version() uint64 {
	return ix.version
}

// Items returns every item ordered by ID
func (ix *Index) Items() []*model.Item {
	out := make([]*model.Item, 0, len(ix.items))
	for it := range ix.items {
		out = append(out, it)
	}
	sortByID(out)
	return out
}

// Bounds returns the bounding box of all items, or the zero box when empty.
func (ix *Index) Bounds() model.BBox {
	if ix.boundsVersion == ix.version {
		return ix.bounds
	}
	var bounds model.BBox
	first := true
	for it := range ix.items {
		if first {
			bounds = it.BBox
			first = false
			continue
		}
		bounds = bounds.Union(it.BBox)
	}
	ix.bounds = bounds
	ix.boundsVersion = ix.version
	return bounds
}

// ContentAtRow returns the items crossed by the horizontal line at y, ordered
// left to right. An item spans the rows [Top, Bottom).
func (ix *Index) ContentAtRow(y float64) []*model.Item {
	var out []*model.Item
	for _, it := range ix.rows.at(y) {
		if it.BBox.Top() <= y && y < it.BBox.Bottom() {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BBox.X != out[j].BBox.X {
			return out[i].BBox.X < out[j].BBox.X
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ContentAtColumn returns the items crossed by the vertical line at x, ordered
// top to bottom. An item spans the columns [Left, Right).
func (ix *Index) ContentAtColumn(x float64) []*model.Item {
	var out []*model.Item
	for _, it := range ix.cols.at(x) {
		if it.BBox.Left() <= x && x < it.BBox.Right() {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BBox.Y != out[j].BBox.Y {
			return out[i].BBox.Y < out[j].BBox.Y
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ItemsIntersecting returns the items sharing a positive area with rect,
// ordered by ID.
func (ix *Index) ItemsIntersecting(rect model.BBox) []*model.Item {
	if rect.IsEmpty() || len(ix.items) == 0 {
		return nil
	}
	var candidates []*model.Item
	if ix.cols.span(rect.Left(), rect.Right()) <= ix.rows.span(rect.Top(), rect.Bottom()) {
		candidates = ix.cols.collect(rect.Left(), rect.Right())
	} else {
		candidates = ix.rows.collect(rect.Top(), rect.Bottom())
	}
	out := candidates[:0]
	for _, it := range candidates {
		if it.BBox.Intersects(rect) {
			out = append(out, it)
		}
	}
	sortByID(out)
	return out
}

// ItemsSurrounding returns the items intersecting the band of width margin
// outside rect on side dir, nearest first. The band spans rect's extent on the
// other axis.
func (ix *Index) ItemsSurrounding(rect model.BBox, margin float64, dir Direction) []*model.Item {
	if margin <= 0 {
		return nil
	}
	var band model.BBox
	switch dir {
	case Left:
		band = model.NewBBoxFromEdges(rect.Left()-margin, rect.Top(), rect.Left(), rect.Bottom())
	case Right:
		band = model.NewBBoxFromEdges(rect.Right(), rect.Top(), rect.Right()+margin, rect.Bottom())
	case Above:
		band = model.NewBBoxFromEdges(rect.Left(), rect.Top()-margin, rect.Right(), rect.Top())
	case Below:
		band = model.NewBBoxFromEdges(rect.Left(), rect.Bottom(), rect.Right(), rect.Bottom()+margin)
	default:
		return nil
	}
	out := ix.ItemsIntersecting(band)
	dist := func(it *model.Item) float64 {
		switch dir {
		case Left:
			return rect.Left() - it.BBox.Right()
		case Right:
			return it.BBox.Left() - rect.Right()
		case Above:
			return rect.Top() - it.BBox.Bottom()
		default:
			return it.BBox.Top() - rect.Bottom()
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return dist(out[i]) < dist(out[j])
	})
	return out
}

func sortByID(items []*model.Item) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		if a.BBox.X != b.BBox.X {
			return a.BBox.X < b.BBox.X
		}
		return a.BBox.Y < b.BBox.Y
	})
}
