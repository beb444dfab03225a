package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pageseg/model"
	"github.com/tsawler/pageseg/spatial"
)

func TestBlockDetector_Empty(t *testing.T) {
	detector := NewBlockDetector()

	layout := detector.Detect(spatial.New(0))
	require.NotNil(t, layout)
	assert.Equal(t, 0, layout.BlockCount())

	layout = detector.Detect(nil)
	assert.Equal(t, 0, layout.BlockCount())
	assert.Nil(t, layout.GetBlock(0))
}

func TestBlockDetector_SingleItem(t *testing.T) {
	it := makeText(t, 1, 100, 100, 50, 12)
	layout := NewBlockDetector().Detect(spatial.NewWithItems(0, []*model.Item{it}))

	require.Equal(t, 1, layout.BlockCount())
	block := layout.GetBlock(0)
	assert.Equal(t, 1, block.ItemCount())
	assert.Equal(t, 0, it.Block)
	assert.Equal(t, it.BBox, block.BBox)
}

func TestBlockDetector_DiagonalChain(t *testing.T) {
	// Each fragment shares a few rows with the next one and sits 5pt to its
	// right; nothing else links them.
	var items []*model.Item
	for i := 0; i < 5; i++ {
		items = append(items, makeText(t, i+1, float64(i)*45, float64(i)*6, 40, 10))
	}
	layout := NewBlockDetector().Detect(spatial.NewWithItems(0, items))

	require.Equal(t, 1, layout.BlockCount())
	assert.Equal(t, 5, layout.GetBlock(0).ItemCount())
}

func TestBlockDetector_SeparateGroups(t *testing.T) {
	tests := []struct {
		name  string
		items func(t *testing.T) []*model.Item
		want  int
	}{
		{
			name: "same line, small gap",
			items: func(t *testing.T) []*model.Item {
				return []*model.Item{makeText(t, 1, 0, 0, 40, 10), makeText(t, 2, 45, 0, 40, 10)}
			},
			want: 1,
		},
		{
			name: "same line, wide gap",
			items: func(t *testing.T) []*model.Item {
				return []*model.Item{makeText(t, 1, 0, 0, 40, 10), makeText(t, 2, 100, 0, 40, 10)}
			},
			want: 2,
		},
		{
			name: "stacked lines",
			items: func(t *testing.T) []*model.Item {
				return lines(t, 1, 0, 0, 100, 5)
			},
			want: 1,
		},
		{
			name: "paragraphs apart",
			items: func(t *testing.T) []*model.Item {
				return append(lines(t, 1, 0, 0, 100, 3), lines(t, 4, 0, 100, 100, 3)...)
			},
			want: 2,
		},
		{
			name: "two columns",
			items: func(t *testing.T) []*model.Item {
				return append(lines(t, 1, 0, 0, 100, 4), lines(t, 5, 140, 0, 100, 4)...)
			},
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := NewBlockDetector().Detect(spatial.NewWithItems(0, tt.items(t)))
			assert.Equal(t, tt.want, layout.BlockCount())
		})
	}
}

func TestBlockDetector_NonAssignableIgnored(t *testing.T) {
	a := makeText(t, 1, 0, 0, 40, 10)
	g := makeGraphic(t, 2, 42, 0, 4, 10, model.GraphicCharacterLike)
	b := makeText(t, 3, 48, 0, 40, 10)
	lone := makeGraphic(t, 4, 300, 300, 10, 10, model.GraphicImage)

	layout := NewBlockDetector().Detect(spatial.NewWithItems(0, []*model.Item{a, g, b, lone}))

	require.Equal(t, 1, layout.BlockCount())
	assert.Equal(t, []int{1, 3}, itemIDs(layout.GetBlock(0).Items))
	assert.Equal(t, model.NoBlock, g.Block)
	assert.Equal(t, model.NoBlock, lone.Block)
}

func TestBlockDetector_Partition(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		page := randomPage(t, seed)
		ix := spatial.NewWithItems(0, page.Items)
		layout := NewBlockDetector().Detect(ix)

		ids := make(map[int]bool)
		count := make(map[*model.Item]int)
		for _, b := range layout.Blocks {
			assert.False(t, ids[b.ID], "duplicate block id %d", b.ID)
			ids[b.ID] = true
			for _, it := range b.Items {
				count[it]++
				assert.Equal(t, b.ID, it.Block)
			}
		}
		for _, it := range page.Items {
			if it.Assignable {
				assert.Equal(t, 1, count[it], "seed %d item %d", seed, it.ID)
			} else {
				assert.Zero(t, count[it])
			}
		}
	}
}

func TestBlockDetector_Idempotent(t *testing.T) {
	page := randomPage(t, 11)
	ix := spatial.NewWithItems(0, page.Items)
	detector := NewBlockDetector()

	first := detector.Detect(ix)
	tags := make(map[int]int)
	for _, it := range page.Items {
		tags[it.ID] = it.Block
	}

	// Stale tags from an unrelated pass must not leak into the next one.
	for _, it := range page.Items {
		it.Block = 99
	}
	second := detector.Detect(ix)

	assert.Equal(t, first.BlockCount(), second.BlockCount())
	for _, it := range page.Items {
		assert.Equal(t, tags[it.ID], it.Block)
	}
}

func TestBlock_Text(t *testing.T) {
	mk := func(id int, x, y float64, s string) *model.Item {
		it, err := model.NewTextRun(id, model.NewBBox(x, y, 30, 10), s, 0, y+8)
		require.NoError(t, err)
		return it
	}
	block := &Block{Items: []*model.Item{
		mk(1, 40, 12, "line"),
		mk(2, 0, 0, "Hello"),
		mk(3, 0, 12, "second"),
		mk(4, 40, 0, "World"),
	}}
	assert.Equal(t, "Hello World\nsecond line", block.Text())

	var nilBlock *Block
	assert.Equal(t, "", nilBlock.Text())
	assert.Equal(t, 0, nilBlock.ItemCount())
}

func TestBlockLayout_ItemCount(t *testing.T) {
	items := append(lines(t, 1, 0, 0, 100, 3), lines(t, 4, 0, 100, 100, 2)...)
	layout := NewBlockDetector().Detect(spatial.NewWithItems(0, items))
	assert.Equal(t, 5, layout.ItemCount())

	var nilLayout *BlockLayout
	assert.Equal(t, 0, nilLayout.ItemCount())
}

func BenchmarkBlockDetector_Detect(b *testing.B) {
	page := randomPage(b, 5)
	ix := spatial.NewWithItems(0, page.Items)
	detector := NewBlockDetector()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		detector.Detect(ix)
	}
}
