package whitespace

import (
	"github.com/tsawler/pageseg/model"
	"github.com/tsawler/pageseg/spatial"
)

// Filter vetoes a candidate that passed the emptiness and adjacency tests.
// It returns false to reject. Rejected candidates are re-checked after the
// next acceptance.
type Filter func(rect model.BBox, src Source) bool

// RejectThinSides rejects a candidate whose left and right neighbourhoods,
// each margin points wide, both hold between 1 and limit text items. Such a
// gap separates a couple of words rather than two columns.
func RejectThinSides(margin float64, limit int) Filter {
	return func(rect model.BBox, src Source) bool {
		left := countText(src.ItemsSurrounding(rect, margin, spatial.Left))
		right := countText(src.ItemsSurrounding(rect, margin, spatial.Right))
		thin := func(n int) bool { return n >= 1 && n <= limit }
		return !(thin(left) && thin(right))
	}
}

// RequireLocalHeight rejects a candidate shorter than ratio times the
// average height of the items beside it, within margin points on the left
// and right. A candidate with no neighbours passes.
func RequireLocalHeight(ratio, margin float64) Filter {
	return func(rect model.BBox, src Source) bool {
		var total float64
		var n int
		for _, dir := range []spatial.Direction{spatial.Left, spatial.Right} {
			for _, it := range src.ItemsSurrounding(rect, margin, dir) {
				total += it.BBox.Height
				n++
			}
		}
		if n == 0 {
			return true
		}
		return rect.Height >= ratio*total/float64(n)
	}
}

func countText(items []*model.Item) int {
	n := 0
	for _, it := range items {
		if it.IsText() {
			n++
		}
	}
	return n
}
