package spatial

import (
	"math"

	"github.com/tsawler/pageseg/model"
)

// maxBucketSpan is the widest interval, in buckets, stored per bucket.
// Wider items (page-wide rules, backgrounds) live in a separate list that is
// consulted by every query.
const maxBucketSpan = 256

// axis is an interval structure over one coordinate axis. Each item is listed
// in every fixed-width bucket its interval covers, so a point or range lookup
// only touches the buckets it falls in.
type axis struct {
	cell    float64
	buckets map[int][]*model.Item
	wide    []*model.Item
}

func newAxis(cell float64) *axis {
	return &axis{
		cell:    cell,
		buckets: make(map[int][]*model.Item),
	}
}

func (a *axis) key(v float64) int {
	return int(math.Floor(v / a.cell))
}

// span returns how many buckets the interval [lo, hi] covers
func (a *axis) span(lo, hi float64) int {
	return a.key(hi) - a.key(lo) + 1
}

func (a *axis) insert(it *model.Item, lo, hi float64) {
	if a.span(lo, hi) > maxBucketSpan {
		a.wide = append(a.wide, it)
		return
	}
	for k := a.key(lo); k <= a.key(hi); k++ {
		a.buckets[k] = append(a.buckets[k], it)
	}
}

func (a *axis) remove(it *model.Item, lo, hi float64) {
	if a.span(lo, hi) > maxBucketSpan {
		a.wide = without(a.wide, it)
		return
	}
	for k := a.key(lo); k <= a.key(hi); k++ {
		b := without(a.buckets[k], it)
		if len(b) == 0 {
			delete(a.buckets, k)
			continue
		}
		a.buckets[k] = b
	}
}

// at returns the candidates whose interval may contain v
func (a *axis) at(v float64) []*model.Item {
	b := a.buckets[a.key(v)]
	if len(a.wide) == 0 {
		return b
	}
	out := make([]*model.Item, 0, len(b)+len(a.wide))
	out = append(out, b...)
	return append(out, a.wide...)
}

// collect returns the distinct candidates whose interval may meet [lo, hi]
func (a *axis) collect(lo, hi float64) []*model.Item {
	k0, k1 := a.key(lo), a.key(hi)
	if k1-k0 > maxBucketSpan {
		return a.all()
	}
	seen := make(map[*model.Item]struct{})
	var out []*model.Item
	add := func(it *model.Item) {
		if _, ok := seen[it]; ok {
			return
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	for k := k0; k <= k1; k++ {
		for _, it := range a.buckets[k] {
			add(it)
		}
	}
	for _, it := range a.wide {
		add(it)
	}
	return out
}

func (a *axis) all() []*model.Item {
	seen := make(map[*model.Item]struct{})
	var out []*model.Item
	for _, b := range a.buckets {
		for _, it := range b {
			if _, ok := seen[it]; !ok {
				seen[it] = struct{}{}
				out = append(out, it)
			}
		}
	}
	return append(out, a.wide...)
}

func without(items []*model.Item, it *model.Item) []*model.Item {
	for i, x := range items {
		if x == it {
			last := len(items) - 1
			items[i] = items[last]
			items[last] = nil
			return items[:last]
		}
	}
	return items
}
