// Package token defines the display tokens that make up the rendering of a
// public API item.
// Invariants:
//   - A token is a pure (Kind, Text) value; equality is field equality.
//   - Whitespace tokens always carry a single space as text, regardless of
//     how the upstream renderer spelled them.
//   - Join over a token slice reproduces the item's rendered form exactly.
package token
