// Package model provides the geometry and content types shared by the page
// segmentation packages.
//
// # Geometry
//
// Coordinates use a top-left origin with Y growing downward:
//
//   - [BBox] - rectangle with intersection, union, overlap and gap calculations
//   - [Point] - 2D point with distance calculation
//
// [BBox.Intersects] only reports overlaps of positive area; use [BBox.Touches]
// when shared edges should count.
//
// # Content
//
// A [Page] carries the positioned [Item] values produced upstream. An item is
// a text run, a graphic or a whitespace rectangle:
//
//	it, err := model.NewTextRun(1, model.NewBBox(72, 90, 120, 11), "Results", 3, 99)
//	if errors.Is(err, model.ErrInvalidGeometry) {
//		// non-positive width or height
//	}
//
// Graphics carry a [GraphicClass] assigned by the upstream extractor
// (separators, containers, images and so on); the segmenter only reads it.
//
// # Whitespace
//
// [Whitespace] records a rectangle accepted by the whitespace search together
// with its quality and discovery generation.
package model
