package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pageseg/model"
)

// makeText creates a test text run for layout tests
func makeText(t testing.TB, id int, x, y, w, h float64) *model.Item {
	t.Helper()
	it, err := model.NewTextRun(id, model.NewBBox(x, y, w, h), "w", 0, y+h)
	require.NoError(t, err)
	return it
}

// makeGraphic creates a test graphic for layout tests
func makeGraphic(t testing.TB, id int, x, y, w, h float64, class model.GraphicClass) *model.Item {
	t.Helper()
	it, err := model.NewGraphic(id, model.NewBBox(x, y, w, h), class, false)
	require.NoError(t, err)
	return it
}

// makePage builds a page holding items
func makePage(t testing.TB, w, h float64, items ...*model.Item) *model.Page {
	t.Helper()
	page, err := model.NewPage(1, w, h)
	require.NoError(t, err)
	for _, it := range items {
		page.AddItem(it)
	}
	return page
}

// lines returns n full-width text lines starting at (x, y), 12pt apart.
func lines(t testing.TB, firstID int, x, y, w float64, n int) []*model.Item {
	var out []*model.Item
	for i := 0; i < n; i++ {
		out = append(out, makeText(t, firstID+i, x, y+float64(i)*12, w, 10))
	}
	return out
}

// twoColumnPage lays out two 50-line columns with a 40pt gutter at 230..270.
func twoColumnPage(t testing.TB) *model.Page {
	items := append(lines(t, 1, 50, 50, 180, 50), lines(t, 51, 270, 50, 180, 50)...)
	return makePage(t, 500, 700, items...)
}

// randomPage scatters words into one to three columns with random line
// lengths, plus a few graphics.
func randomPage(t testing.TB, seed int64) *model.Page {
	rng := rand.New(rand.NewSource(seed))
	cols := 1 + rng.Intn(3)
	colWidth := (560.0 - float64(cols-1)*30) / float64(cols)
	var items []*model.Item
	id := 0
	for c := 0; c < cols; c++ {
		left := 26 + float64(c)*(colWidth+30)
		y := 40.0
		for y < 740 {
			x := left
			limit := left + colWidth*(0.5+rng.Float64()*0.5)
			for x < limit {
				w := 15 + rng.Float64()*35
				if x+w > left+colWidth {
					break
				}
				id++
				items = append(items, makeText(t, id, x, y, w, 10))
				x += w + 4
			}
			y += 12
			if rng.Intn(8) == 0 {
				y += 24
			}
		}
	}
	for i := 0; i < 3; i++ {
		id++
		items = append(items, makeGraphic(t, id, 30+rng.Float64()*500, 40+rng.Float64()*700,
			5+rng.Float64()*40, 5+rng.Float64()*40, model.GraphicImage))
	}
	return makePage(t, 612, 792, items...)
}

// checkTree asserts containment and that every input item appears exactly
// once in the tree, either held by a region or dropped.
func checkTree(t *testing.T, root *Region, items []*model.Item) {
	t.Helper()
	seen := make(map[*model.Item]int)
	root.Walk(func(r *Region) bool {
		for _, it := range r.Items() {
			seen[it]++
			assert.True(t, r.BBox.Contains(it.BBox), "region %s does not contain item %d %s", r.BBox, it.ID, it.BBox)
		}
		for _, it := range r.Dropped {
			seen[it]++
		}
		for _, c := range r.Children {
			assert.True(t, r.BBox.Contains(c.BBox), "region %s does not contain child %s", r.BBox, c.BBox)
		}
		return true
	})
	assert.Len(t, seen, len(items))
	for _, it := range items {
		assert.Equal(t, 1, seen[it], "item %d", it.ID)
	}
}

func itemIDs(items []*model.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func idRange(from, to int) []int {
	var out []int
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
