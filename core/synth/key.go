package synth

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/codewandler/reflx/core/member"
	"github.com/codewandler/reflx/core/reflector"
)

// Key names a routine: the declaring type, the member name and the
// parameter types, all by canonical name. Static members are keyed apart
// from instance methods of the same name and shape. Distinct types can share
// a canonical name, so a Key finds generated routines but does not identify
// a loaded one.
type Key struct {
	Type   string
	Name   string
	Params []string
	Static bool
}

// KeyOf returns the routine key of m.
func KeyOf(m *member.Method) Key {
	params := m.ParamTypes()
	k := Key{
		Type:   reflector.NameOf(m.DeclaringType()),
		Name:   m.Name(),
		Params: make([]string, len(params)),
		Static: m.IsStatic(),
	}
	for i, p := range params {
		k.Params[i] = reflector.NameOf(p)
	}
	return k
}

func (k Key) String() string {
	var b strings.Builder
	if k.Static {
		b.WriteString("static ")
	}
	b.WriteString(k.Type)
	b.WriteByte('.')
	b.WriteString(k.Name)
	b.WriteByte('(')
	b.WriteString(strings.Join(k.Params, ","))
	b.WriteByte(')')
	return b.String()
}

// ID is a short stable digest of the key, usable as an identifier.
func (k Key) ID() string {
	sum := blake2b.Sum256([]byte(k.String()))
	return hex.EncodeToString(sum[:8])
}
