package layout

import (
	"math"
	"sort"

	"github.com/tsawler/pageseg/model"
	"github.com/tsawler/pageseg/spatial"
)

// Block is a connected group of assignable items. Two items share a block
// when a chain of row or column neighbours links them.
type Block struct {
	// ID is unique within one detection pass
	ID int

	// Items are the block members ordered by item ID
	Items []*model.Item

	// BBox is the bounding box of the members
	BBox model.BBox
}

// BlockLayout is the result of one detection pass
type BlockLayout struct {
	// Blocks are ordered by their lowest item ID
	Blocks []Block

	// Config is the configuration used for detection
	Config BlockConfig
}

// BlockConfig holds configuration for block detection
type BlockConfig struct {
	// MaxHorizontalGap is the widest gap, in points, between row neighbours
	// of one block (default: 15)
	MaxHorizontalGap float64

	// MaxVerticalGap is the tallest gap, in points, between column
	// neighbours of one block (default: 10)
	MaxVerticalGap float64

	// ScanStep is the spacing, in points, of the rows and columns sampled
	// across each item (default: 2)
	ScanStep float64
}

// DefaultBlockConfig returns sensible default configuration
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		MaxHorizontalGap: 15.0,
		MaxVerticalGap:   10.0,
		ScanStep:         2.0,
	}
}

// BlockDetector partitions the assignable items of an index into blocks
type BlockDetector struct {
	config BlockConfig
}

// NewBlockDetector creates a new block detector with default configuration
func NewBlockDetector() *BlockDetector {
	return &BlockDetector{
		config: DefaultBlockConfig(),
	}
}

// NewBlockDetectorWithConfig creates a block detector with custom configuration
func NewBlockDetectorWithConfig(config BlockConfig) *BlockDetector {
	if config.ScanStep <= 0 {
		config.ScanStep = DefaultBlockConfig().ScanStep
	}
	return &BlockDetector{
		config: config,
	}
}

// Detect tags every assignable item in ix with a block ID and returns the
// blocks. Tags from earlier passes are cleared first, so repeated calls on
// the same index give the same result. Items that are not assignable keep
// model.NoBlock and are transparent to the neighbour search.
func (d *BlockDetector) Detect(ix *spatial.Index) *BlockLayout {
	layout := &BlockLayout{Config: d.config}
	if ix == nil || ix.Len() == 0 {
		return layout
	}

	items := ix.Items()
	for _, it := range items {
		it.Block = model.NoBlock
	}

	next := 0
	for _, seed := range items {
		if !seed.Assignable || seed.Block != model.NoBlock {
			continue
		}
		id := next
		next++

		seed.Block = id
		members := []*model.Item{seed}
		work := []*model.Item{seed}
		for len(work) > 0 {
			it := work[len(work)-1]
			work = work[:len(work)-1]
			for _, n := range d.neighbours(ix, it) {
				if n.Block != model.NoBlock {
					continue
				}
				n.Block = id
				members = append(members, n)
				work = append(work, n)
			}
		}

		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
		layout.Blocks = append(layout.Blocks, Block{
			ID:    id,
			Items: members,
			BBox:  model.ItemsBounds(members),
		})
	}
	return layout
}

// neighbours returns the nearest assignable item on each side of it along
// every sampled row and column it spans, when the gap is small enough.
func (d *BlockDetector) neighbours(ix *spatial.Index, it *model.Item) []*model.Item {
	var out []*model.Item
	b := it.BBox
	for _, y := range samples(b.Top(), b.Bottom(), d.config.ScanStep) {
		row := ix.ContentAtRow(y)
		out = appendVisible(out, row, it, d.config.MaxHorizontalGap, horizontalGap)
	}
	for _, x := range samples(b.Left(), b.Right(), d.config.ScanStep) {
		col := ix.ContentAtColumn(x)
		out = appendVisible(out, col, it, d.config.MaxVerticalGap, verticalGap)
	}
	return out
}

// samples returns positions from lo toward hi, step apart, plus the centre.
func samples(lo, hi, step float64) []float64 {
	out := []float64{(lo + hi) / 2}
	for v := lo; v < hi; v += step {
		out = append(out, v)
	}
	return out
}

// appendVisible appends the assignable items adjacent to it in line,
// skipping items that are not assignable.
func appendVisible(out, line []*model.Item, it *model.Item, limit float64, gap func(a, b model.BBox) float64) []*model.Item {
	pos := -1
	for i, other := range line {
		if other == it {
			pos = i
			break
		}
	}
	if pos < 0 {
		return out
	}
	for i := pos - 1; i >= 0; i-- {
		if line[i].Assignable {
			if gap(line[i].BBox, it.BBox) <= limit {
				out = append(out, line[i])
			}
			break
		}
	}
	for i := pos + 1; i < len(line); i++ {
		if line[i].Assignable {
			if gap(it.BBox, line[i].BBox) <= limit {
				out = append(out, line[i])
			}
			break
		}
	}
	return out
}

func horizontalGap(a, b model.BBox) float64 {
	return math.Max(0, math.Max(b.Left()-a.Right(), a.Left()-b.Right()))
}

func verticalGap(a, b model.BBox) float64 {
	return math.Max(0, math.Max(b.Top()-a.Bottom(), a.Top()-b.Bottom()))
}

// BlockCount returns the number of blocks
func (l *BlockLayout) BlockCount() int {
	if l == nil {
		return 0
	}
	return len(l.Blocks)
}

// GetBlock returns a specific block by index
func (l *BlockLayout) GetBlock(index int) *Block {
	if l == nil || index < 0 || index >= len(l.Blocks) {
		return nil
	}
	return &l.Blocks[index]
}

// ItemCount returns the total number of items across all blocks
func (l *BlockLayout) ItemCount() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, b := range l.Blocks {
		n += len(b.Items)
	}
	return n
}

// ItemCount returns the number of items in this block
func (b *Block) ItemCount() int {
	if b == nil {
		return 0
	}
	return len(b.Items)
}

// Lines groups the text runs of the block into lines
func (b *Block) Lines() *LineLayout {
	if b == nil {
		return NewLineDetector().Detect(nil, model.BBox{})
	}
	return NewLineDetector().Detect(b.Items, b.BBox)
}

// Text returns the text runs of the block in line order, lines separated by
// newlines.
func (b *Block) Text() string {
	if b == nil {
		return ""
	}
	return b.Lines().Text()
}

// ContainsPoint returns true if the given point is within this block's bounding box
func (b *Block) ContainsPoint(x, y float64) bool {
	if b == nil {
		return false
	}
	return b.BBox.ContainsPoint(model.Point{X: x, Y: y})
}
