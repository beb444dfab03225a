package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pageseg/model"
	"github.com/tsawler/pageseg/spatial"
)

// defaultGlyphSize is used for regions without measurable content.
const defaultGlyphSize = 10.0

// Region is a node of the layout tree. It owns the items held in its index;
// sub-regions own theirs. The region rectangle always contains its items and
// its sub-regions.
type Region struct {
	// BBox is the region rectangle
	BBox model.BBox

	// Children are the sub-regions in reading order
	Children []*Region

	// Whitespace lists the rectangles discovered inside the region. They
	// are kept for diagnostics only.
	Whitespace []model.Whitespace

	// Container is the graphic this region was carved from, or nil
	Container *model.Item

	// Dropped are graphics removed from the output because they could not
	// be placed
	Dropped []*model.Item

	// Blocks are the connected item groups of a region that holds items
	Blocks []Block

	index *spatial.Index
	cache regionCache
	// structure counts changes to Children made by the segmenter
	structure uint64
}

// regionCache holds aggregates valid while version and structure match.
type regionCache struct {
	valid     bool
	version   uint64
	structure uint64

	contentBounds model.BBox
	glyphSize     float64
	lineSpacing   float64
}

// NewRegion creates an empty region covering bbox.
func NewRegion(bbox model.BBox, cellSize float64) *Region {
	return &Region{
		BBox:  bbox,
		index: spatial.New(cellSize),
	}
}

// Mutate runs fn against the region's item index. Cached aggregates are
// recomputed on next use. This is the only way callers change a region's
// items.
func (r *Region) Mutate(fn func(ix *spatial.Index)) {
	fn(r.index)
	r.cache.valid = false
}

// Index returns the item index for read-only queries. Use Mutate to change
// it.
func (r *Region) Index() *spatial.Index {
	return r.index
}

// Items returns the items held directly by the region, ordered by ID
func (r *Region) Items() []*model.Item {
	if r == nil {
		return nil
	}
	return r.index.Items()
}

// Len returns the number of items held directly by the region
func (r *Region) Len() int {
	if r == nil {
		return 0
	}
	return r.index.Len()
}

// TotalLen returns the number of items in the region and all sub-regions
func (r *Region) TotalLen() int {
	if r == nil {
		return 0
	}
	n := r.index.Len()
	for _, c := range r.Children {
		n += c.TotalLen()
	}
	return n
}

// AllItems returns the items of the region and all sub-regions, ordered by ID
func (r *Region) AllItems() []*model.Item {
	var out []*model.Item
	r.Walk(func(sub *Region) bool {
		out = append(out, sub.index.Items()...)
		return true
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IsContainer reports whether the region was carved from a graphic
func (r *Region) IsContainer() bool {
	return r != nil && r.Container != nil
}

// IsLeaf reports whether the region has no sub-regions
func (r *Region) IsLeaf() bool {
	return r != nil && len(r.Children) == 0
}

// Walk calls fn for the region and its descendants in pre-order. Returning
// false from fn skips the descendants of that region.
func (r *Region) Walk(fn func(*Region) bool) {
	if r == nil {
		return
	}
	if !fn(r) {
		return
	}
	for _, c := range r.Children {
		c.Walk(fn)
	}
}

// ContentBounds returns the bounding box of the direct items and the
// sub-region rectangles, or the zero box for an empty region.
func (r *Region) ContentBounds() model.BBox {
	r.refresh()
	return r.cache.contentBounds
}

// AverageGlyphSize returns the mean height of the direct text items. Regions
// without text fall back to the mean short side of their items, then to a
// fixed default.
func (r *Region) AverageGlyphSize() float64 {
	r.refresh()
	return r.cache.glyphSize
}

// MedianLineSpacing returns the median baseline distance between
// consecutive text lines held directly by the region, or 0 for fewer than
// two lines.
func (r *Region) MedianLineSpacing() float64 {
	r.refresh()
	return r.cache.lineSpacing
}

func (r *Region) refresh() {
	if r.cache.valid && r.cache.version == r.index.Version() && r.cache.structure == r.structure {
		return
	}
	items := r.index.Items()

	boxes := make([]model.BBox, 0, len(items)+len(r.Children))
	for _, it := range items {
		boxes = append(boxes, it.BBox)
	}
	for _, c := range r.Children {
		boxes = append(boxes, c.BBox)
	}

	r.cache = regionCache{
		valid:         true,
		version:       r.index.Version(),
		structure:     r.structure,
		contentBounds: model.BoundsOf(boxes...),
		glyphSize:     glyphSize(items),
		lineSpacing:   lineSpacing(items),
	}
}

func glyphSize(items []*model.Item) float64 {
	var sum float64
	var n int
	for _, it := range items {
		if it.IsText() {
			sum += it.BBox.Height
			n++
		}
	}
	if n > 0 {
		return sum / float64(n)
	}
	for _, it := range items {
		sum += math.Min(it.BBox.Width, it.BBox.Height)
		n++
	}
	if n > 0 {
		return sum / float64(n)
	}
	return defaultGlyphSize
}

func lineSpacing(items []*model.Item) float64 {
	return NewLineDetector().Detect(items, model.BBox{}).MedianLineSpacing
}

// addChild appends c to the children
func (r *Region) addChild(c *Region) {
	r.Children = append(r.Children, c)
	r.structure++
}

// setChildren replaces the children
func (r *Region) setChildren(children []*Region) {
	r.Children = children
	r.structure++
}

// sortChildren orders the children with ReadingOrderLess
func (r *Region) sortChildren() {
	SortRegions(r.Children)
}
