// Package layout splits a page into a tree of regions and groups the items
// of each region into blocks.
//
// # Region Segmentation
//
// [Segmenter.Segment] places every item of a page in a root [Region] and
// splits it recursively. Each region is processed in three steps:
//
//   - Container extraction: graphics classified as containers become
//     sub-regions holding the items inside them, smallest first. A container
//     straddled by content is kept as an image when small and dropped when
//     large. A container framing all of a region's content makes that
//     region itself the container.
//   - Separator splitting: a long thin rule that spans most of the region and
//     that no other item or sub-region crosses splits the region in two.
//   - Column splitting: whitespace found by the whitespace package that is
//     tall, interior and flanked by content becomes a column boundary.
//
// Sub-regions carved from containers are not split further. After the
// recursion a single pass wraps each graphic sub-region together with the
// nearest text sibling, keeping figures next to their captions.
//
// Every split goes through one extraction step that refuses to create an
// empty child, a child holding all of the parent's content, or a child holding
// only whitespace items. Each accepted split therefore shrinks the region
// being split, which bounds the recursion.
//
// # Basic Usage
//
//	seg := layout.NewSegmenter()
//	root, err := seg.Segment(page)
//	if err != nil {
//		return err
//	}
//	root.Walk(func(r *layout.Region) bool {
//		for _, b := range r.Blocks {
//			fmt.Println(b.Text())
//		}
//		return true
//	})
//
// # Block Detection
//
// [BlockDetector] partitions the assignable items of a spatial index into
// blocks: items are linked when they are neighbours on a sampled row or
// column and the gap between them is small. Every assignable item ends in
// exactly one block.
//
// # Reading Order
//
// Sibling regions are kept ordered by [SortRegions]: boxes are grouped into
// horizontal bands of vertically overlapping boxes, bands are read top to
// bottom and each band left to right. [ReadingOrderLess] is the same rule
// for a single pair of boxes.
package layout
