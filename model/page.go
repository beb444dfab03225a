package model

import "github.com/pkg/errors"

// Page is the upstream input of one segmentation run: the page size and its
// positioned content items.
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points
	Items  []*Item // Content items in extraction order
}

// NewPage creates a new page with given dimensions
func NewPage(number int, width, height float64) (*Page, error) {
	if !NewBBox(0, 0, width, height).IsValid() {
		return nil, errors.Wrapf(ErrInvalidGeometry, "page %d: width=%g height=%g", number, width, height)
	}
	return &Page{
		Number: number,
		Width:  width,
		Height: height,
		Items:  make([]*Item, 0),
	}, nil
}

// AddItem appends an item to the page
func (p *Page) AddItem(it *Item) {
	p.Items = append(p.Items, it)
}

// BBox returns the page rectangle
func (p *Page) BBox() BBox {
	return NewBBox(0, 0, p.Width, p.Height)
}

// Validate checks the page and every item for invalid geometry
func (p *Page) Validate() error {
	if !p.BBox().IsValid() {
		return errors.Wrapf(ErrInvalidGeometry, "page %d: width=%g height=%g", p.Number, p.Width, p.Height)
	}
	for _, it := range p.Items {
		if it == nil {
			return errors.Errorf("page %d: nil item", p.Number)
		}
		if err := checkGeometry(it.ID, it.BBox); err != nil {
			return errors.WithMessagef(err, "page %d", p.Number)
		}
	}
	return nil
}

// Whitespace is an approximately empty rectangle accepted by the whitespace
// search. Once accepted it never changes and acts as an obstacle for later
// candidates.
type Whitespace struct {
	BBox BBox

	// Quality is the search priority the rectangle had when it was queued
	Quality float64

	// Generation is the number of whitespace rectangles accepted before the
	// rectangle's queue entry was created
	Generation int
}
