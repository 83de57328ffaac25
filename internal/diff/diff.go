package diff

import (
	"sort"

	"pubdiff/internal/api"
)

// Changed is an item that exists in both snapshots at the same path but
// with a different rendering. No relationship beyond the shared path is
// implied between Old and New.
type Changed struct {
	// Old is how the item used to look.
	Old api.Item
	// New is how the item looks now.
	New api.Item
}

// Result is the classified difference between two snapshots. All three
// slices are sorted by the item total order; Changed pairs by Old, then New.
type Result struct {
	// Removed items are gone from the new snapshot. A major change.
	Removed []api.Item
	// Changed items kept their path but not their rendering.
	Changed []Changed
	// Added items are new in the new snapshot. A minor change.
	Added []api.Item
}

// IsEmpty reports whether the two snapshots rendered identically.
func (r Result) IsEmpty() bool {
	return len(r.Removed) == 0 && len(r.Changed) == 0 && len(r.Added) == 0
}

// Count returns the total number of entries across the three categories.
func (r Result) Count() int {
	return len(r.Removed) + len(r.Changed) + len(r.Added)
}

// Between diffs two snapshots. It is deterministic for a given pair of
// inputs: input order only influences which same-path duplicate pairs with
// which, never the classification or the counts. The function is total over
// finite inputs and never fails.
func Between(oldItems, newItems []api.Item) Result {
	// Multisets, not sets: identical renderings from distinct declarations
	// must keep their multiplicity or surviving duplicates get misreported.
	oldBag := bagOf(oldItems)
	newBag := bagOf(newItems)

	// Values present equally often on both sides cancel here. What survives
	// is candidate removals and candidate additions.
	removedByPath := oldBag.subtract(newBag).byPath()
	addedByPath := newBag.subtract(oldBag).byPath()

	// A path that shows up on both sides means the item changed in place.
	touched := make(map[string]struct{}, len(removedByPath)+len(addedByPath))
	for path := range removedByPath {
		touched[path] = struct{}{}
	}
	for path := range addedByPath {
		touched[path] = struct{}{}
	}

	var res Result
	for path := range touched {
		removedItems := removedByPath[path]
		addedItems := addedByPath[path]
		for len(removedItems) > 0 || len(addedItems) > 0 {
			switch {
			case len(removedItems) > 0 && len(addedItems) > 0:
				res.Changed = append(res.Changed, Changed{
					Old: removedItems[len(removedItems)-1],
					New: addedItems[len(addedItems)-1],
				})
				removedItems = removedItems[:len(removedItems)-1]
				addedItems = addedItems[:len(addedItems)-1]
			case len(removedItems) > 0:
				res.Removed = append(res.Removed, removedItems[len(removedItems)-1])
				removedItems = removedItems[:len(removedItems)-1]
			default:
				res.Added = append(res.Added, addedItems[len(addedItems)-1])
				addedItems = addedItems[:len(addedItems)-1]
			}
		}
	}

	// Map iteration order must not leak into the output.
	sort.SliceStable(res.Removed, func(i, j int) bool {
		return api.Less(res.Removed[i], res.Removed[j])
	})
	sort.SliceStable(res.Added, func(i, j int) bool {
		return api.Less(res.Added[i], res.Added[j])
	})
	sort.SliceStable(res.Changed, func(i, j int) bool {
		if c := api.Compare(res.Changed[i].Old, res.Changed[j].Old); c != 0 {
			return c < 0
		}
		return api.Less(res.Changed[i].New, res.Changed[j].New)
	})
	return res
}
