package diff_test

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"pubdiff/internal/api"
	"pubdiff/internal/diff"
	"pubdiff/internal/testkit"
	"pubdiff/internal/token"
)

func TestSingleAndOnlyItemRemoved(t *testing.T) {
	old := []api.Item{itemWithPath("foo")}

	actual := diff.Between(old, nil)
	expected := diff.Result{Removed: []api.Item{itemWithPath("foo")}}
	assertResult(t, actual, expected)
	if actual.IsEmpty() {
		t.Fatalf("diff must not be empty")
	}
	mustHoldInvariants(t, old, nil, actual)
}

func TestSingleAndOnlyItemAdded(t *testing.T) {
	newItems := []api.Item{itemWithPath("foo")}

	actual := diff.Between(nil, newItems)
	expected := diff.Result{Added: []api.Item{itemWithPath("foo")}}
	assertResult(t, actual, expected)
	mustHoldInvariants(t, nil, newItems, actual)
}

func TestMiddleItemAdded(t *testing.T) {
	old := []api.Item{itemWithPath("1"), itemWithPath("3")}
	newItems := []api.Item{itemWithPath("1"), itemWithPath("2"), itemWithPath("3")}

	actual := diff.Between(old, newItems)
	expected := diff.Result{Added: []api.Item{itemWithPath("2")}}
	assertResult(t, actual, expected)
	mustHoldInvariants(t, old, newItems, actual)
}

func TestMiddleItemRemoved(t *testing.T) {
	old := []api.Item{itemWithPath("1"), itemWithPath("2"), itemWithPath("3")}
	newItems := []api.Item{itemWithPath("1"), itemWithPath("3")}

	actual := diff.Between(old, newItems)
	expected := diff.Result{Removed: []api.Item{itemWithPath("2")}}
	assertResult(t, actual, expected)
	mustHoldInvariants(t, old, newItems, actual)
}

func TestManyIdenticalItems(t *testing.T) {
	old := []api.Item{
		itemWithPath("1"),
		itemWithPath("2"), itemWithPath("2"),
		itemWithPath("3"), itemWithPath("3"), itemWithPath("3"),
		fnWithParamType("a::b", "i32"),
		fnWithParamType("a::b", "i32"),
	}
	newItems := []api.Item{
		itemWithPath("1"),
		itemWithPath("2"),
		itemWithPath("3"),
		itemWithPath("4"), itemWithPath("4"),
		fnWithParamType("a::b", "i64"),
		fnWithParamType("a::b", "i64"),
	}

	actual := diff.Between(old, newItems)
	expected := diff.Result{
		Removed: []api.Item{
			itemWithPath("2"),
			itemWithPath("3"), itemWithPath("3"),
		},
		Changed: []diff.Changed{
			{Old: fnWithParamType("a::b", "i32"), New: fnWithParamType("a::b", "i64")},
			{Old: fnWithParamType("a::b", "i32"), New: fnWithParamType("a::b", "i64")},
		},
		Added: []api.Item{itemWithPath("4"), itemWithPath("4")},
	}
	assertResult(t, actual, expected)
	mustHoldInvariants(t, old, newItems, actual)
}

// One new overload lands at a path that already has three identically-pathed
// items. The result must be a single addition, not three spurious changes.
func TestNoOffByOneDiffSkewing(t *testing.T) {
	old := []api.Item{
		fnWithParamType("a::b", "i8"),
		fnWithParamType("a::b", "i32"),
		fnWithParamType("a::b", "i64"),
	}
	newItems := []api.Item{
		fnWithParamType("a::b", "u8"), // the only new item
		fnWithParamType("a::b", "i8"),
		fnWithParamType("a::b", "i32"),
		fnWithParamType("a::b", "i64"),
	}

	actual := diff.Between(old, newItems)
	expected := diff.Result{Added: []api.Item{fnWithParamType("a::b", "u8")}}
	assertResult(t, actual, expected)
	mustHoldInvariants(t, old, newItems, actual)
}

func TestEqualInputsYieldEmptyDiff(t *testing.T) {
	items := []api.Item{
		itemWithPath("a::b"),
		itemWithPath("a::b"),
		fnWithParamType("a::c", "i32"),
	}
	actual := diff.Between(items, items)
	if !actual.IsEmpty() {
		t.Fatalf("diffing equal inputs must be empty, got %+v", actual)
	}
	if actual.Count() != 0 {
		t.Fatalf("empty diff must count 0, got %d", actual.Count())
	}
}

func TestEmptyVersusEmpty(t *testing.T) {
	actual := diff.Between(nil, nil)
	if !actual.IsEmpty() {
		t.Fatalf("empty vs empty must be empty")
	}
}

func TestChangedAtSamePathDifferentMultiplicity(t *testing.T) {
	// Two old renderings vs one new rendering at one path: one changed pair
	// and one pure removal, never two changed pairs.
	old := []api.Item{
		fnWithParamType("a::b", "i8"),
		fnWithParamType("a::b", "i16"),
	}
	newItems := []api.Item{fnWithParamType("a::b", "i32")}

	actual := diff.Between(old, newItems)
	if len(actual.Changed) != 1 || len(actual.Removed) != 1 || len(actual.Added) != 0 {
		t.Fatalf("want 1 changed + 1 removed, got %+v", actual)
	}
	mustHoldInvariants(t, old, newItems, actual)
}

func TestSymmetry(t *testing.T) {
	old := []api.Item{
		itemWithPath("1"),
		itemWithPath("2"), itemWithPath("2"),
		fnWithParamType("a::b", "i32"),
	}
	newItems := []api.Item{
		itemWithPath("2"),
		itemWithPath("3"),
		fnWithParamType("a::b", "i64"),
	}

	forward := diff.Between(old, newItems)
	backward := diff.Between(newItems, old)

	if !reflect.DeepEqual(forward.Removed, backward.Added) {
		t.Fatalf("forward.Removed != backward.Added:\n%+v\n%+v", forward.Removed, backward.Added)
	}
	if !reflect.DeepEqual(forward.Added, backward.Removed) {
		t.Fatalf("forward.Added != backward.Removed:\n%+v\n%+v", forward.Added, backward.Removed)
	}
	swapped := make([]diff.Changed, len(backward.Changed))
	for i, ch := range backward.Changed {
		swapped[i] = diff.Changed{Old: ch.New, New: ch.Old}
	}
	if !reflect.DeepEqual(forward.Changed, swapped) {
		t.Fatalf("changed pairs not symmetric:\n%+v\n%+v", forward.Changed, swapped)
	}
}

func TestDeterministicUnderInputReordering(t *testing.T) {
	old := []api.Item{
		itemWithPath("a::x"), itemWithPath("a::x"),
		itemWithPath("a::y"),
		fnWithParamType("m::f", "i8"),
		fnWithParamType("m::f", "i32"),
	}
	newItems := []api.Item{
		itemWithPath("a::y"),
		itemWithPath("a::z"),
		fnWithParamType("m::f", "u8"),
		fnWithParamType("m::f", "i32"),
	}

	reference := diff.Between(old, newItems)
	mustHoldInvariants(t, old, newItems, reference)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		shuffledOld := shuffled(rng, old)
		shuffledNew := shuffled(rng, newItems)
		got := diff.Between(shuffledOld, shuffledNew)
		if !reflect.DeepEqual(got, reference) {
			t.Fatalf("trial %d: reordered inputs changed the result:\n%+v\n%+v", trial, got, reference)
		}
	}
}

// Token text is arbitrary bytes. Two renderings at one path whose byte
// concatenations coincide must still be seen as distinct values, diffing
// to one changed pair rather than cancelling in the multisets.
func TestControlBytesInTokenTextDoNotCancel(t *testing.T) {
	old := []api.Item{
		api.NewItem([]string{"p"}, []token.Token{token.Identf("a"), token.Identf("b")}),
	}
	newItems := []api.Item{
		api.NewItem([]string{"p"}, []token.Token{token.Identf("a\x00\x05b")}),
	}

	actual := diff.Between(old, newItems)
	if actual.IsEmpty() {
		t.Fatalf("distinct items at the same path diffed as empty (want 1 changed pair)")
	}
	if len(actual.Changed) != 1 || len(actual.Removed) != 0 || len(actual.Added) != 0 {
		t.Fatalf("want exactly 1 changed pair, got %+v", actual)
	}
	mustHoldInvariants(t, old, newItems, actual)
}

func TestStablePairingAmongSamePathDuplicates(t *testing.T) {
	// Two distinct removals and two distinct additions at one path: which
	// old pairs with which new is arbitrary, but it must be the same
	// arbitrary choice on every call.
	old := []api.Item{
		fnWithParamType("a::b", "i8"),
		fnWithParamType("a::b", "i16"),
	}
	newItems := []api.Item{
		fnWithParamType("a::b", "u8"),
		fnWithParamType("a::b", "u16"),
	}

	reference := diff.Between(old, newItems)
	if len(reference.Changed) != 2 {
		t.Fatalf("want 2 changed pairs, got %+v", reference)
	}
	mustHoldInvariants(t, old, newItems, reference)
	for trial := 0; trial < 20; trial++ {
		if got := diff.Between(old, newItems); !reflect.DeepEqual(got, reference) {
			t.Fatalf("trial %d: pairing not stable:\n%+v\n%+v", trial, got, reference)
		}
	}
}

func assertResult(t *testing.T, actual, expected diff.Result) {
	t.Helper()
	if !reflect.DeepEqual(normalize(actual), normalize(expected)) {
		t.Fatalf("diff mismatch:\n got %+v\nwant %+v", actual, expected)
	}
}

// normalize maps nil and empty slices to the same shape so literals in
// expected results stay short.
func normalize(r diff.Result) diff.Result {
	if len(r.Removed) == 0 {
		r.Removed = nil
	}
	if len(r.Changed) == 0 {
		r.Changed = nil
	}
	if len(r.Added) == 0 {
		r.Added = nil
	}
	return r
}

func mustHoldInvariants(t *testing.T, old, newItems []api.Item, res diff.Result) {
	t.Helper()
	if err := testkit.CheckDiffInvariants(old, newItems, res); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

func shuffled(rng *rand.Rand, items []api.Item) []api.Item {
	out := make([]api.Item, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func itemWithPath(path string) api.Item {
	return api.NewItem(strings.Split(path, "::"), []token.Token{token.Identf(path)})
}

// fnWithParamType renders e.g. "pub fn a::b(x: i32)" for path "a::b".
func fnWithParamType(path, typ string) api.Item {
	segs := strings.Split(path, "::")
	tokens := []token.Token{
		token.Qualifierf("pub"), token.Space(), token.Declf("fn"), token.Space(),
	}
	for i, seg := range segs {
		if i > 0 {
			tokens = append(tokens, token.Symbolf("::"))
		}
		tokens = append(tokens, token.Functionf(seg))
	}
	tokens = append(tokens,
		token.Symbolf("("), token.Identf("x"), token.Symbolf(":"), token.Space(),
		token.Typef(typ), token.Symbolf(")"),
	)
	return api.NewItem(segs, tokens)
}
