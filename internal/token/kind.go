package token

import "fmt"

// Kind represents the category of a display token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota

	// Whitespace separates adjacent tokens.
	Whitespace
	// Symbol represents punctuation such as '::', '(', ',' or '->'.
	Symbol
	// Qualifier represents a visibility or mutability qualifier such as 'pub'.
	Qualifier
	// Decl represents the declaration kind word of an item, e.g. 'fn' or 'struct'.
	Decl
	// Ident represents a plain identifier, e.g. a parameter name.
	Ident
	// Function represents the name of a function or method.
	Function
	// TypeName represents the name of a user-defined type.
	TypeName
	// Primitive represents a built-in type name such as 'i32' or 'bool'.
	Primitive
	// Generic represents a generic parameter name such as 'T'.
	Generic
	// Lifetime represents a lifetime or region annotation.
	Lifetime
	// Keyword represents a language keyword inside a signature, e.g. 'where'.
	Keyword
	// Annotation represents an attribute attached to the item.
	Annotation
	// SelfRef represents a receiver reference such as 'self'.
	SelfRef
)

func (k Kind) String() string {
	switch k {
	case Whitespace:
		return "whitespace"
	case Symbol:
		return "symbol"
	case Qualifier:
		return "qualifier"
	case Decl:
		return "kind"
	case Ident:
		return "identifier"
	case Function:
		return "function"
	case TypeName:
		return "type"
	case Primitive:
		return "primitive"
	case Generic:
		return "generic"
	case Lifetime:
		return "lifetime"
	case Keyword:
		return "keyword"
	case Annotation:
		return "annotation"
	case SelfRef:
		return "self"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

var kindNames = map[string]Kind{
	"whitespace": Whitespace,
	"symbol":     Symbol,
	"qualifier":  Qualifier,
	"kind":       Decl,
	"identifier": Ident,
	"function":   Function,
	"type":       TypeName,
	"primitive":  Primitive,
	"generic":    Generic,
	"lifetime":   Lifetime,
	"keyword":    Keyword,
	"annotation": Annotation,
	"self":       SelfRef,
}

// LookupKind returns the kind for its textual name and whether the name is
// known. Names are the same strings Kind.String produces.
func LookupKind(name string) (Kind, bool) {
	k, ok := kindNames[name]
	return k, ok
}
