package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pubdiff/internal/api"
	"pubdiff/internal/diff"
)

// CheckDiffInvariants runs the structural invariants a diff result must
// satisfy for the snapshots it was computed from:
//  1. count conservation: per distinct item value, removals plus changed-old
//     occurrences equal max(0, oldCount−newCount), and symmetrically for
//     additions and changed-new
//  2. path locality: every changed pair shares one path, and no removed item
//     shares a path with any added item
//  3. all three sequences are sorted by the item total order
//  4. the result consumes no more occurrences than the inputs supplied
func CheckDiffInvariants(oldItems, newItems []api.Item, res diff.Result) error {
	if err := checkConservation(oldItems, newItems, res); err != nil {
		return err
	}
	if err := checkPathLocality(res); err != nil {
		return err
	}
	if err := checkSorted(res); err != nil {
		return err
	}
	return checkBounds(oldItems, newItems, res)
}

func checkConservation(oldItems, newItems []api.Item, res diff.Result) error {
	oldCounts := countByKey(oldItems)
	newCounts := countByKey(newItems)

	gone := countByKey(res.Removed)
	arrived := countByKey(res.Added)
	for _, ch := range res.Changed {
		gone[ch.Old.Key()]++
		arrived[ch.New.Key()]++
	}

	for key, n := range oldCounts {
		want := n - newCounts[key]
		if want < 0 {
			want = 0
		}
		if gone[key] != want {
			return fmt.Errorf("old-side count not conserved for %q: got %d want %d", key, gone[key], want)
		}
	}
	for key := range gone {
		if _, ok := oldCounts[key]; !ok {
			return fmt.Errorf("result removes item %q never present in old", key)
		}
	}
	for key, n := range newCounts {
		want := n - oldCounts[key]
		if want < 0 {
			want = 0
		}
		if arrived[key] != want {
			return fmt.Errorf("new-side count not conserved for %q: got %d want %d", key, arrived[key], want)
		}
	}
	for key := range arrived {
		if _, ok := newCounts[key]; !ok {
			return fmt.Errorf("result adds item %q never present in new", key)
		}
	}
	return nil
}

func checkPathLocality(res diff.Result) error {
	for _, ch := range res.Changed {
		if ch.Old.PathString() != ch.New.PathString() {
			return fmt.Errorf("changed pair spans paths %q and %q",
				ch.Old.PathString(), ch.New.PathString())
		}
	}
	removedPaths := make(map[string]struct{}, len(res.Removed))
	for _, it := range res.Removed {
		removedPaths[it.PathString()] = struct{}{}
	}
	for _, it := range res.Added {
		if _, ok := removedPaths[it.PathString()]; ok {
			return fmt.Errorf("path %q is both removed and added without pairing", it.PathString())
		}
	}
	return nil
}

func checkSorted(res diff.Result) error {
	for i := 1; i < len(res.Removed); i++ {
		if api.Less(res.Removed[i], res.Removed[i-1]) {
			return fmt.Errorf("removed not sorted at index %d", i)
		}
	}
	for i := 1; i < len(res.Added); i++ {
		if api.Less(res.Added[i], res.Added[i-1]) {
			return fmt.Errorf("added not sorted at index %d", i)
		}
	}
	for i := 1; i < len(res.Changed); i++ {
		prev, cur := res.Changed[i-1], res.Changed[i]
		c := api.Compare(cur.Old, prev.Old)
		if c < 0 || (c == 0 && api.Less(cur.New, prev.New)) {
			return fmt.Errorf("changed not sorted at index %d", i)
		}
	}
	return nil
}

func checkBounds(oldItems, newItems []api.Item, res diff.Result) error {
	consumed, err := safecast.Conv[uint32](len(res.Removed) + len(res.Added) + 2*len(res.Changed))
	if err != nil {
		return fmt.Errorf("result size overflow: %w", err)
	}
	supplied, err := safecast.Conv[uint32](len(oldItems) + len(newItems))
	if err != nil {
		return fmt.Errorf("input size overflow: %w", err)
	}
	if consumed > supplied {
		return fmt.Errorf("result consumes %d occurrences but inputs supply %d", consumed, supplied)
	}
	return nil
}

func countByKey(items []api.Item) map[string]int {
	counts := make(map[string]int, len(items))
	for _, it := range items {
		counts[it.Key()]++
	}
	return counts
}
