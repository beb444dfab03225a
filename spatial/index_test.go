package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pageseg/model"
)

func makeItem(t *testing.T, id int, x, y, w, h float64) *model.Item {
	t.Helper()
	it, err := model.NewTextRun(id, model.NewBBox(x, y, w, h), "", 0, y+h)
	require.NoError(t, err)
	return it
}

func ids(items []*model.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestIndex_AddRemove(t *testing.T) {
	ix := New(10)
	a := makeItem(t, 1, 0, 0, 20, 10)
	b := makeItem(t, 2, 30, 0, 20, 10)

	v0 := ix.Version()
	ix.Add(a, b)
	assert.Equal(t, 2, ix.Len())
	assert.Greater(t, ix.Version(), v0)

	ix.Add(a)
	assert.Equal(t, 2, ix.Len(), "duplicate add is ignored")

	v1 := ix.Version()
	assert.Equal(t, 1, ix.Remove(a))
	assert.Greater(t, ix.Version(), v1)
	assert.False(t, ix.Contains(a))
	assert.True(t, ix.Contains(b))
	assert.Equal(t, 0, ix.Remove(a), "removing an absent item is a no-op")

	assert.Equal(t, []int{2}, ids(ix.ContentAtRow(5)))
}

func TestIndex_ContentAtRowSortedByX(t *testing.T) {
	ix := NewWithItems(8, []*model.Item{
		makeItem(t, 1, 100, 0, 20, 10),
		makeItem(t, 2, 0, 0, 20, 10),
		makeItem(t, 3, 50, 5, 20, 10),
		makeItem(t, 4, 50, 40, 20, 10),
	})

	assert.Equal(t, []int{2, 3, 1}, ids(ix.ContentAtRow(7)))
	assert.Equal(t, []int{2, 1}, ids(ix.ContentAtRow(2)))
	// Rows are half open: y == bottom edge is outside the item.
	assert.Equal(t, []int{3}, ids(ix.ContentAtRow(10)))
}

func TestIndex_ContentAtColumnSortedByY(t *testing.T) {
	ix := NewWithItems(8, []*model.Item{
		makeItem(t, 1, 0, 80, 20, 10),
		makeItem(t, 2, 0, 0, 20, 10),
		makeItem(t, 3, 10, 40, 20, 10),
	})

	assert.Equal(t, []int{2, 3, 1}, ids(ix.ContentAtColumn(15)))
	assert.Equal(t, []int{3}, ids(ix.ContentAtColumn(25)))
}

func TestIndex_OutOfRangeQueriesAreEmpty(t *testing.T) {
	ix := NewWithItems(8, []*model.Item{makeItem(t, 1, 0, 0, 20, 10)})

	assert.Empty(t, ix.ContentAtRow(-500))
	assert.Empty(t, ix.ContentAtRow(1e6))
	assert.Empty(t, ix.ContentAtColumn(1e6))
	assert.Empty(t, ix.ItemsIntersecting(model.NewBBox(1000, 1000, 10, 10)))
	assert.Empty(t, ix.ItemsIntersecting(model.BBox{}))
	assert.Empty(t, New(8).ItemsIntersecting(model.NewBBox(0, 0, 10, 10)))
}

func TestIndex_ItemsIntersecting(t *testing.T) {
	ix := NewWithItems(8, []*model.Item{
		makeItem(t, 1, 0, 0, 10, 10),
		makeItem(t, 2, 10, 0, 10, 10), // shares an edge with 1
		makeItem(t, 3, 100, 100, 10, 10),
	})

	assert.Equal(t, []int{1}, ids(ix.ItemsIntersecting(model.NewBBox(0, 0, 10, 10))))
	assert.Equal(t, []int{1, 2}, ids(ix.ItemsIntersecting(model.NewBBox(5, 5, 10, 2))))
	assert.Equal(t, []int{1, 2, 3}, ids(ix.ItemsIntersecting(model.NewBBox(-10, -10, 200, 200))))
}

func TestIndex_WideItems(t *testing.T) {
	// An item spanning more than maxBucketSpan cells lives in the wide list.
	wide := makeItem(t, 1, 0, 0, 8*(maxBucketSpan+10), 2)
	narrow := makeItem(t, 2, 40, 10, 10, 10)
	ix := NewWithItems(8, []*model.Item{wide, narrow})

	assert.Equal(t, []int{1}, ids(ix.ContentAtRow(1)))
	assert.Equal(t, []int{1}, ids(ix.ContentAtColumn(8*maxBucketSpan)))
	assert.Equal(t, []int{1, 2}, ids(ix.ItemsIntersecting(model.NewBBox(30, 0, 30, 30))))

	ix.Remove(wide)
	assert.Empty(t, ix.ContentAtRow(1))
	assert.Equal(t, []int{2}, ids(ix.ItemsIntersecting(model.NewBBox(-1e5, -1e5, 2e5, 2e5))))
}

func TestIndex_ItemsSurrounding(t *testing.T) {
	gap := model.NewBBox(100, 0, 20, 100)
	ix := NewWithItems(8, []*model.Item{
		makeItem(t, 1, 40, 10, 50, 10),  // left, 10pt away
		makeItem(t, 2, 0, 30, 95, 10),   // left, 5pt away
		makeItem(t, 3, 125, 10, 50, 10), // right
		makeItem(t, 4, 100, 150, 20, 10),
		makeItem(t, 5, 100, -20, 20, 10),
	})

	assert.Equal(t, []int{2, 1}, ids(ix.ItemsSurrounding(gap, 30, Left)))
	assert.Equal(t, []int{3}, ids(ix.ItemsSurrounding(gap, 30, Right)))
	assert.Empty(t, ix.ItemsSurrounding(gap, 3, Right))
	assert.Equal(t, []int{4}, ids(ix.ItemsSurrounding(gap, 60, Below)))
	assert.Equal(t, []int{5}, ids(ix.ItemsSurrounding(gap, 20, Above)))
	assert.Empty(t, ix.ItemsSurrounding(gap, 0, Left))
}

func TestIndex_BoundsFollowsMutation(t *testing.T) {
	a := makeItem(t, 1, 0, 0, 10, 10)
	b := makeItem(t, 2, 50, 50, 10, 10)
	ix := NewWithItems(8, []*model.Item{a})

	assert.Equal(t, model.NewBBox(0, 0, 10, 10), ix.Bounds())
	ix.Add(b)
	assert.Equal(t, model.NewBBox(0, 0, 60, 60), ix.Bounds())
	ix.Remove(a)
	assert.Equal(t, model.NewBBox(50, 50, 10, 10), ix.Bounds())
	ix.Remove(b)
	assert.Equal(t, model.BBox{}, ix.Bounds())
}

func TestIndex_ItemsOrderedByID(t *testing.T) {
	ix := NewWithItems(0, []*model.Item{
		makeItem(t, 3, 0, 0, 10, 10),
		makeItem(t, 1, 20, 0, 10, 10),
		makeItem(t, 2, 40, 0, 10, 10),
	})
	assert.Equal(t, []int{1, 2, 3}, ids(ix.Items()))
}

func BenchmarkIndex_ItemsIntersecting(b *testing.B) {
	ix := New(DefaultCellSize)
	id := 0
	for row := 0; row < 60; row++ {
		for col := 0; col < 10; col++ {
			id++
			it, _ := model.NewTextRun(id, model.NewBBox(float64(col)*55, float64(row)*12, 50, 10), "w", 0, 0)
			ix.Add(it)
		}
	}
	probe := model.NewBBox(200, 300, 40, 40)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.ItemsIntersecting(probe)
	}
}
