package model

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidGeometry is returned when an item or page is constructed with a
// non-positive width or height, or with non-finite coordinates.
var ErrInvalidGeometry = errors.New("invalid geometry")

// NoBlock is the block tag of an item that has not been assigned to a block.
const NoBlock = -1

// ItemKind discriminates the content carried by an Item
type ItemKind int

const (
	// KindText is a positioned run of text
	KindText ItemKind = iota
	// KindGraphic is a vector or raster graphic
	KindGraphic
	// KindWhitespace is a whitespace rectangle placed as content
	KindWhitespace
)

// String returns a string representation of the item kind
func (k ItemKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindGraphic:
		return "graphic"
	case KindWhitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// GraphicClass is the classification assigned to a graphic by the upstream
// extractor. The segmenter never computes it.
type GraphicClass int

const (
	GraphicNone GraphicClass = iota
	GraphicImage
	GraphicHorizontalSeparator
	GraphicVerticalSeparator
	GraphicMathBar
	GraphicContainer
	GraphicCharacterLike
)

var graphicClassNames = map[GraphicClass]string{
	GraphicNone:                "none",
	GraphicImage:               "image",
	GraphicHorizontalSeparator: "horizontal-separator",
	GraphicVerticalSeparator:   "vertical-separator",
	GraphicMathBar:             "math-bar",
	GraphicContainer:           "container",
	GraphicCharacterLike:       "character-like",
}

// String returns a string representation of the graphic class
func (c GraphicClass) String() string {
	if name, ok := graphicClassNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseGraphicClass converts a class name produced by String back into a
// GraphicClass. Unknown names map to GraphicImage.
func ParseGraphicClass(name string) GraphicClass {
	for class, n := range graphicClassNames {
		if n == name {
			return class
		}
	}
	return GraphicImage
}

// IsSeparator reports whether the class is a horizontal or vertical rule.
func (c GraphicClass) IsSeparator() bool {
	return c == GraphicHorizontalSeparator || c == GraphicVerticalSeparator
}

// Item is an atomic positioned unit of page content. Items are shared by
// pointer; a region owns the items held in its index and moving an item to
// another region transfers it.
type Item struct {
	// ID identifies the item within its page
	ID int

	// Kind is the item discriminant
	Kind ItemKind

	// BBox is the item rectangle
	BBox BBox

	// Text is the content of a text run
	Text string

	// StyleID is an opaque style reference for text runs
	StyleID int

	// Baseline is the Y coordinate of the text baseline
	Baseline float64

	// Class is the upstream classification of a graphic
	Class GraphicClass

	// Assignable marks items that take part in block grouping
	Assignable bool

	// Block is the transient block tag written by block detection (NoBlock when unassigned)
	Block int
}

// NewTextRun creates a text item. Text runs are always assignable.
func NewTextRun(id int, bbox BBox, text string, styleID int, baseline float64) (*Item, error) {
	if err := checkGeometry(id, bbox); err != nil {
		return nil, err
	}
	if math.IsNaN(baseline) || math.IsInf(baseline, 0) {
		baseline = bbox.Bottom()
	}
	return &Item{
		ID:         id,
		Kind:       KindText,
		BBox:       bbox,
		Text:       text,
		StyleID:    styleID,
		Baseline:   baseline,
		Assignable: true,
		Block:      NoBlock,
	}, nil
}

// NewGraphic creates a graphic item with its upstream classification.
func NewGraphic(id int, bbox BBox, class GraphicClass, assignable bool) (*Item, error) {
	if err := checkGeometry(id, bbox); err != nil {
		return nil, err
	}
	return &Item{
		ID:         id,
		Kind:       KindGraphic,
		BBox:       bbox,
		Class:      class,
		Assignable: assignable,
		Block:      NoBlock,
	}, nil
}

// NewWhitespaceItem creates a whitespace item. Whitespace never joins a block.
func NewWhitespaceItem(id int, bbox BBox) (*Item, error) {
	if err := checkGeometry(id, bbox); err != nil {
		return nil, err
	}
	return &Item{
		ID:    id,
		Kind:  KindWhitespace,
		BBox:  bbox,
		Block: NoBlock,
	}, nil
}

func checkGeometry(id int, bbox BBox) error {
	if !bbox.IsValid() {
		return errors.Wrapf(ErrInvalidGeometry, "item %d: x=%g y=%g width=%g height=%g",
			id, bbox.X, bbox.Y, bbox.Width, bbox.Height)
	}
	return nil
}

// IsText reports whether the item is a text run
func (it *Item) IsText() bool {
	return it != nil && it.Kind == KindText
}

// IsGraphic reports whether the item is a graphic
func (it *Item) IsGraphic() bool {
	return it != nil && it.Kind == KindGraphic
}

// ItemsBounds returns the bounding box of items, or the zero box when empty.
func ItemsBounds(items []*Item) BBox {
	if len(items) == 0 {
		return BBox{}
	}
	out := items[0].BBox
	for _, it := range items[1:] {
		out = out.Union(it.BBox)
	}
	return out
}
