package token

import "strings"

// Token represents a single display token of an item's rendering.
type Token struct {
	Kind Kind
	Text string
}

// Space returns a whitespace token.
func Space() Token {
	return Token{Kind: Whitespace, Text: " "}
}

// New returns a token of the given kind. Whitespace text is canonicalized
// to a single space.
func New(kind Kind, text string) Token {
	if kind == Whitespace {
		return Space()
	}
	return Token{Kind: kind, Text: text}
}

// Symbolf returns a symbol token.
func Symbolf(text string) Token { return Token{Kind: Symbol, Text: text} }

// Qualifierf returns a qualifier token.
func Qualifierf(text string) Token { return Token{Kind: Qualifier, Text: text} }

// Declf returns a declaration-kind token.
func Declf(text string) Token { return Token{Kind: Decl, Text: text} }

// Identf returns an identifier token.
func Identf(text string) Token { return Token{Kind: Ident, Text: text} }

// Functionf returns a function-name token.
func Functionf(text string) Token { return Token{Kind: Function, Text: text} }

// Typef returns a type-name token.
func Typef(text string) Token { return Token{Kind: TypeName, Text: text} }

// Primitivef returns a primitive-type token.
func Primitivef(text string) Token { return Token{Kind: Primitive, Text: text} }

// IsName reports whether the token names something declared by the item.
func (t Token) IsName() bool {
	switch t.Kind {
	case Ident, Function, TypeName, Generic:
		return true
	default:
		return false
	}
}

// IsMeta reports whether the token describes the item rather than naming it.
func (t Token) IsMeta() bool {
	switch t.Kind {
	case Qualifier, Decl, Keyword, Annotation:
		return true
	default:
		return false
	}
}

// Compare orders tokens by kind, then by text.
func Compare(a, b Token) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Text, b.Text)
}

// Join concatenates the texts of tokens into the rendered form of an item.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
