package model

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used when comparing coordinates for equality.
const Epsilon = 1e-6

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents an axis-aligned rectangle in page space.
// The origin is the top-left corner of the page and Y grows downward.
type BBox struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromPoints creates a bounding box from two points
func NewBBoxFromPoints(p1, p2 Point) BBox {
	x := math.Min(p1.X, p2.X)
	y := math.Min(p1.Y, p2.Y)
	width := math.Abs(p2.X - p1.X)
	height := math.Abs(p2.Y - p1.Y)
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromEdges creates a bounding box from its four edges
func NewBBoxFromEdges(left, top, right, bottom float64) BBox {
	return BBox{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// String formats the box as "[left,top right,bottom]"
func (b BBox) String() string {
	return fmt.Sprintf("[%.1f,%.1f %.1f,%.1f]", b.Left(), b.Top(), b.Right(), b.Bottom())
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// ContainsPoint checks if a point is inside the bounding box
func (b BBox) ContainsPoint(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

// Contains reports whether other lies entirely inside b.
func (b BBox) Contains(other BBox) bool {
	return other.Left() >= b.Left()-Epsilon &&
		other.Right() <= b.Right()+Epsilon &&
		other.Top() >= b.Top()-Epsilon &&
		other.Bottom() <= b.Bottom()+Epsilon
}

// Intersects reports whether the two boxes share a region of positive area.
// Boxes that only share an edge do not intersect.
func (b BBox) Intersects(other BBox) bool {
	return b.HorizontalOverlap(other) > Epsilon && b.VerticalOverlap(other) > Epsilon
}

// Touches reports whether the boxes overlap or are separated by at most tol
// on both axes.
func (b BBox) Touches(other BBox, tol float64) bool {
	return b.Left() <= other.Right()+tol && other.Left() <= b.Right()+tol &&
		b.Top() <= other.Bottom()+tol && other.Top() <= b.Bottom()+tol
}

// HorizontalOverlap returns the length of the shared X range, or 0.
func (b BBox) HorizontalOverlap(other BBox) float64 {
	return math.Max(0, math.Min(b.Right(), other.Right())-math.Max(b.Left(), other.Left()))
}

// VerticalOverlap returns the length of the shared Y range, or 0.
func (b BBox) VerticalOverlap(other BBox) float64 {
	return math.Max(0, math.Min(b.Bottom(), other.Bottom())-math.Max(b.Top(), other.Top()))
}

// Intersection returns the intersection of two bounding boxes
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}

	x := math.Max(b.Left(), other.Left())
	y := math.Max(b.Top(), other.Top())
	right := math.Min(b.Right(), other.Right())
	bottom := math.Min(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// OverlapArea returns the area shared by the two boxes.
func (b BBox) OverlapArea(other BBox) float64 {
	return b.HorizontalOverlap(other) * b.VerticalOverlap(other)
}

// Union returns the union of two bounding boxes
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Area returns the area of the bounding box
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// Expand expands the bounding box by a margin on all sides
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		X:      b.X - margin,
		Y:      b.Y - margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// OverlapRatio calculates the overlap ratio with another box
// Returns value between 0 and 1
func (b BBox) OverlapRatio(other BBox) float64 {
	minArea := math.Min(b.Area(), other.Area())
	if minArea <= 0 {
		return 0
	}
	return b.OverlapArea(other) / minArea
}

// Gap returns the distance between the closest edges of the two boxes.
// Overlapping or touching boxes have a gap of 0.
func (b BBox) Gap(other BBox) float64 {
	dx := math.Max(0, math.Max(other.Left()-b.Right(), b.Left()-other.Right()))
	dy := math.Max(0, math.Max(other.Top()-b.Bottom(), b.Top()-other.Bottom()))
	return math.Sqrt(dx*dx + dy*dy)
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// IsValid returns true if the bounding box has finite coordinates and
// positive dimensions
func (b BBox) IsValid() bool {
	for _, v := range [...]float64{b.X, b.Y, b.Width, b.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Width > 0 && b.Height > 0
}

// BoundsOf returns the smallest box enclosing every box in boxes, or the zero
// box when boxes is empty.
func BoundsOf(boxes ...BBox) BBox {
	if len(boxes) == 0 {
		return BBox{}
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = out.Union(b)
	}
	return out
}
