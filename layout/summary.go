package layout

import "github.com/tsawler/pageseg/model"

// Rect is a serialisable rectangle
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// RectOf converts a bounding box
func RectOf(b model.BBox) Rect {
	return Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// BlockSummary describes one block of a region
type BlockSummary struct {
	ID    int    `json:"id" yaml:"id"`
	Rect  Rect   `json:"rect" yaml:"rect"`
	Items []int  `json:"items" yaml:"items"`
	Text  string `json:"text,omitempty" yaml:"text,omitempty"`
}

// RegionSummary is a plain description of a region tree for diagnostics
type RegionSummary struct {
	Rect        Rect            `json:"rect" yaml:"rect"`
	Container   *int            `json:"container,omitempty" yaml:"container,omitempty"`
	Items       []int           `json:"items,omitempty" yaml:"items,omitempty"`
	Blocks      []BlockSummary  `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Whitespace  []Rect          `json:"whitespace,omitempty" yaml:"whitespace,omitempty"`
	Dropped     []int           `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	GlyphSize   float64         `json:"glyph_size" yaml:"glyph_size"`
	LineSpacing float64         `json:"line_spacing,omitempty" yaml:"line_spacing,omitempty"`
	Children    []RegionSummary `json:"children,omitempty" yaml:"children,omitempty"`
}

// Summary describes r and its descendants
func (r *Region) Summary() RegionSummary {
	if r == nil {
		return RegionSummary{}
	}
	sum := RegionSummary{
		Rect:        RectOf(r.BBox),
		GlyphSize:   r.AverageGlyphSize(),
		LineSpacing: r.MedianLineSpacing(),
	}
	if r.Container != nil {
		id := r.Container.ID
		sum.Container = &id
	}
	for _, it := range r.Items() {
		sum.Items = append(sum.Items, it.ID)
	}
	for i := range r.Blocks {
		b := &r.Blocks[i]
		bs := BlockSummary{ID: b.ID, Rect: RectOf(b.BBox), Text: b.Text()}
		for _, it := range b.Items {
			bs.Items = append(bs.Items, it.ID)
		}
		sum.Blocks = append(sum.Blocks, bs)
	}
	for _, ws := range r.Whitespace {
		sum.Whitespace = append(sum.Whitespace, RectOf(ws.BBox))
	}
	for _, it := range r.Dropped {
		sum.Dropped = append(sum.Dropped, it.ID)
	}
	for _, c := range r.Children {
		sum.Children = append(sum.Children, c.Summary())
	}
	return sum
}
