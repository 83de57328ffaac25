package api

import (
	"strconv"
	"strings"

	"pubdiff/internal/token"
)

// PathSep joins path segments in the human-readable form of a path.
const PathSep = "::"

// Item is one element of a public API snapshot: a path that locates it and
// the tokens of its rendered declaration.
type Item struct {
	Path   []string
	Tokens []token.Token
}

// NewItem builds an item from a path and its rendered tokens. Both slices
// are copied so later mutation of the arguments cannot reach the item.
func NewItem(path []string, tokens []token.Token) Item {
	it := Item{
		Path:   make([]string, len(path)),
		Tokens: make([]token.Token, len(tokens)),
	}
	copy(it.Path, path)
	copy(it.Tokens, tokens)
	return it
}

// PathString returns the path segments joined with PathSep.
func (it Item) PathString() string {
	return strings.Join(it.Path, PathSep)
}

// Render returns the display form of the item.
func (it Item) Render() string {
	return token.Join(it.Tokens)
}

// Key returns a stable identity key for the item. Every path segment and
// token text is length-prefixed, so the encoding is injective even when the
// text itself contains separators or control bytes; two items are equal iff
// their keys are equal.
func (it Item) Key() string {
	var b strings.Builder
	for _, seg := range it.Path {
		b.WriteString(strconv.Itoa(len(seg)))
		b.WriteByte(':')
		b.WriteString(seg)
	}
	b.WriteByte(';')
	for _, t := range it.Tokens {
		b.WriteString(strconv.Itoa(int(t.Kind)))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(len(t.Text)))
		b.WriteByte(':')
		b.WriteString(t.Text)
	}
	return b.String()
}

// Compare orders items by path segments, then by token sequence.
func Compare(a, b Item) int {
	if c := comparePaths(a.Path, b.Path); c != 0 {
		return c
	}
	return compareTokens(a.Tokens, b.Tokens)
}

// Less reports whether a orders before b.
func Less(a, b Item) bool {
	return Compare(a, b) < 0
}

// Equal reports whether two items have the same path and rendering.
func Equal(a, b Item) bool {
	return Compare(a, b) == 0
}

func comparePaths(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func compareTokens(a, b []token.Token) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := token.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
