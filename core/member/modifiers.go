package member

import "strings"

// Kind tags a member descriptor.
type Kind uint8

const (
	KindField Kind = iota + 1
	KindMethod
	KindConstructor
)

func (k Kind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	default:
		return "unknown"
	}
}

// Modifiers is the modifier set of a member.
type Modifiers uint16

const (
	// Public members are exported from their package.
	Public Modifiers = 1 << iota
	// Private members are unexported.
	Private
	// Static members are registered functions not bound to a receiver.
	Static
	// Abstract members are interface methods without an implementation.
	Abstract
	// Promoted fields are reached through an embedded struct.
	Promoted
	// Variadic members accept a trailing slice of arguments.
	Variadic
)

var modifierNames = []struct {
	m    Modifiers
	name string
}{
	{Public, "public"},
	{Private, "private"},
	{Static, "static"},
	{Abstract, "abstract"},
	{Promoted, "promoted"},
	{Variadic, "variadic"},
}

// Has reports whether all bits in x are set.
func (m Modifiers) Has(x Modifiers) bool { return m&x == x }

func (m Modifiers) String() string {
	var parts []string
	for _, n := range modifierNames {
		if m.Has(n.m) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, " ")
}

func visibility(exported bool) Modifiers {
	if exported {
		return Public
	}
	return Private
}
