package diff

import (
	"sort"

	"pubdiff/internal/api"
)

// bag is a multiset of items keyed by Item.Key. Key equality coincides with
// item equality, so per-key counts are per-value counts.
type bag struct {
	entries map[string]*bagEntry
}

type bagEntry struct {
	item  api.Item
	count int
}

func bagOf(items []api.Item) *bag {
	b := &bag{entries: make(map[string]*bagEntry, len(items))}
	for _, it := range items {
		b.add(it)
	}
	return b
}

func (b *bag) add(it api.Item) {
	key := it.Key()
	if e, ok := b.entries[key]; ok {
		e.count++
		return
	}
	b.entries[key] = &bagEntry{item: it, count: 1}
}

func (b *bag) count(key string) int {
	if e, ok := b.entries[key]; ok {
		return e.count
	}
	return 0
}

// subtract returns the multiset difference b − other: for each distinct
// value, max(0, count_in_b − count_in_other) occurrences survive. A value
// present the same number of times on both sides contributes nothing.
func (b *bag) subtract(other *bag) *bag {
	out := &bag{entries: make(map[string]*bagEntry, len(b.entries))}
	for key, e := range b.entries {
		if n := e.count - other.count(key); n > 0 {
			out.entries[key] = &bagEntry{item: e.item, count: n}
		}
	}
	return out
}

// byPath expands the bag back into concrete item instances, respecting
// multiplicity, grouped by path string. Each group is sorted so the
// positional pairing downstream never depends on map iteration order.
func (b *bag) byPath() map[string][]api.Item {
	groups := make(map[string][]api.Item, len(b.entries))
	for _, e := range b.entries {
		path := e.item.PathString()
		for i := 0; i < e.count; i++ {
			groups[path] = append(groups[path], e.item)
		}
	}
	for _, items := range groups {
		sort.SliceStable(items, func(i, j int) bool { return api.Less(items[i], items[j]) })
	}
	return groups
}
