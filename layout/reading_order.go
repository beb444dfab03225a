package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pageseg/model"
)

// sameLevelOverlap is the share of the shorter box's height two boxes must
// overlap vertically to be read side by side.
const sameLevelOverlap = 0.5

// ReadingOrderLess orders two sibling rectangles for left-to-right,
// top-to-bottom reading. Boxes at the same vertical level are read left
// first; otherwise the higher box comes first. The relation is not
// transitive over three or more boxes; use SortRegions to order a list.
func ReadingOrderLess(a, b model.BBox) bool {
	if sameLevel(a.Top(), a.Bottom(), b) {
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// sameLevel reports whether b overlaps the vertical span top..bottom by
// more than sameLevelOverlap of the shorter of the two.
func sameLevel(top, bottom float64, b model.BBox) bool {
	overlap := math.Min(bottom, b.Bottom()) - math.Max(top, b.Top())
	minHeight := math.Min(bottom-top, b.Height)
	return minHeight > 0 && overlap > minHeight*sameLevelOverlap
}

// SortRegions orders regions in place for reading. Regions are taken top
// first and gathered into bands: a region joins the current band when it
// sits at the same level as the band's vertical span. Bands are read top
// to bottom and each band left to right. The order depends only on the
// boxes; regions with identical boxes keep their relative order.
func SortRegions(regions []*Region) {
	if len(regions) <= 1 {
		return
	}
	sort.SliceStable(regions, func(i, j int) bool {
		a, b := regions[i].BBox, regions[j].BBox
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	start := 0
	top, bottom := regions[0].BBox.Top(), regions[0].BBox.Bottom()
	for i := 1; i <= len(regions); i++ {
		if i < len(regions) && sameLevel(top, bottom, regions[i].BBox) {
			bottom = math.Max(bottom, regions[i].BBox.Bottom())
			continue
		}
		band := regions[start:i]
		sort.SliceStable(band, func(a, b int) bool {
			return band[a].BBox.X < band[b].BBox.X
		})
		if i < len(regions) {
			start = i
			top, bottom = regions[i].BBox.Top(), regions[i].BBox.Bottom()
		}
	}
}
