// Package diff computes the structural difference between two public API
// snapshots. The engine works on multisets: items that render identically
// may legitimately occur more than once (re-exports), and collapsing them
// into a set would corrupt counts. Items surviving multiset subtraction are
// regrouped by path; same-path removals and additions pair up into changed
// entries. Pairing among same-path duplicates is positional, not semantic:
// only the aggregate counts per path are guaranteed.
package diff
