package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pageseg/model"
	"github.com/tsawler/pageseg/spatial"
)

func TestSplitColumns_ThreeColumns(t *testing.T) {
	var items []*model.Item
	for c, x := range []float64{20, 200, 380} {
		items = append(items, lines(t, 1+c*40, x, 40, 150, 40)...)
	}
	page := makePage(t, 550, 560, items...)

	root, err := NewSegmenter().Segment(page)
	require.NoError(t, err)

	require.Len(t, root.Children, 3)
	for c, col := range root.Children {
		assert.Equal(t, idRange(1+c*40, 40+c*40), itemIDs(col.AllItems()), "column %d", c)
	}
	checkTree(t, root, page.Items)
}

func TestColumnGaps(t *testing.T) {
	items := append(lines(t, 1, 20, 20, 150, 20), lines(t, 21, 230, 20, 150, 20)...)
	r := regionWith(items...)
	seg := NewSegmenter()

	ws := func(x, y, w, h float64) model.Whitespace {
		return model.Whitespace{BBox: model.NewBBox(x, y, w, h)}
	}
	rects := []model.Whitespace{
		ws(0, 0, 20, 400),     // touches the left edge
		ws(175, 20, 50, 240),  // gutter
		ws(172, 20, 5, 240),   // too narrow
		ws(20, 270, 360, 100), // wider than tall
		ws(180, 20, 40, 30),   // too short
		ws(382, 20, 16, 240),  // nothing to the right
	}

	gaps := seg.columnGaps(r, rects, 10)
	require.Len(t, gaps, 1)
	assert.Equal(t, model.NewBBox(175, 20, 50, 240), gaps[0].BBox)
	assert.Equal(t, 200.0, gaps[0].Center())
	assert.Equal(t, 50.0, gaps[0].Width())
	assert.Equal(t, 240.0, gaps[0].Height())
}

func TestColumnGaps_RightToLeft(t *testing.T) {
	var items []*model.Item
	for c, x := range []float64{10, 140, 270} {
		items = append(items, lines(t, 1+c*10, x, 20, 100, 10)...)
	}
	r := regionWith(items...)
	rects := []model.Whitespace{
		{BBox: model.NewBBox(112, 20, 26, 120)},
		{BBox: model.NewBBox(242, 20, 26, 120)},
	}
	gaps := NewSegmenter().columnGaps(r, rects, 10)
	require.Len(t, gaps, 2)
	assert.Greater(t, gaps[0].Center(), gaps[1].Center())
}

func TestJoinedAcross(t *testing.T) {
	a := makeText(t, 1, 100, 100, 80, 10)
	b := makeText(t, 2, 190, 100, 80, 10)
	r := regionWith(a, b)
	cfg := DefaultSegmenterConfig().blockConfig(10)
	NewBlockDetectorWithConfig(cfg).Detect(r.index)
	require.Equal(t, a.Block, b.Block)

	seg := NewSegmenter()
	assert.True(t, seg.joinedAcross(r, Gap{BBox: model.NewBBox(181, 90, 8, 40)}, cfg))
	assert.False(t, seg.joinedAcross(r, Gap{BBox: model.NewBBox(300, 90, 8, 40)}, cfg))

	b.Block = a.Block + 1
	assert.False(t, seg.joinedAcross(r, Gap{BBox: model.NewBBox(181, 90, 8, 40)}, cfg))
}

func TestRegionSource_ChildrenBlock(t *testing.T) {
	r := regionWith(makeText(t, 1, 10, 10, 50, 10))
	r.addChild(NewRegion(model.NewBBox(200, 200, 100, 100), 0))

	src := newRegionSource(r)
	assert.Len(t, src.ItemsIntersecting(model.NewBBox(0, 0, 400, 400)), 2)
	assert.Len(t, src.ItemsIntersecting(model.NewBBox(250, 250, 10, 10)), 1)
	assert.Empty(t, src.ItemsIntersecting(model.NewBBox(100, 100, 50, 50)))

	around := src.ItemsSurrounding(model.NewBBox(100, 0, 50, 30), 100, spatial.Left)
	assert.Equal(t, []int{1}, itemIDs(around))
}
