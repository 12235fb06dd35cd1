package proxy

import (
	"reflect"

	"github.com/codewandler/reflx/core/access"
	"github.com/codewandler/reflx/core/member"
)

// FieldProxy is the proxy for a field, optionally bound to a target.
type FieldProxy struct {
	field    *member.Field
	accessor access.FieldAccessor
	target   any
	bound    bool
}

func (p *FieldProxy) Member() *member.Field          { return p.field }
func (p *FieldProxy) Name() string                   { return p.field.Name() }
func (p *FieldProxy) Type() reflect.Type             { return p.field.Type() }
func (p *FieldProxy) Modifiers() member.Modifiers    { return p.field.Modifiers() }
func (p *FieldProxy) Signature() string              { return p.field.Signature() }
func (p *FieldProxy) Accessor() access.FieldAccessor { return p.accessor }
func (p *FieldProxy) Strategy() string               { return p.accessor.Strategy() }

func (p *FieldProxy) Annotations() []member.Annotation { return p.field.Annotations() }

func (p *FieldProxy) Annotation(key string) (member.Annotation, bool) {
	return p.field.Annotation(key)
}

// Bound reports whether the proxy is bound to a target.
func (p *FieldProxy) Bound() bool { return p.bound }

// Bind returns a proxy for the same field bound to target. The accessor is
// shared.
func (p *FieldProxy) Bind(target any) *FieldProxy {
	return &FieldProxy{field: p.field, accessor: p.accessor, target: target, bound: true}
}

// Get reads the field from the bound target.
func (p *FieldProxy) Get() (any, error) {
	if !p.bound {
		return nil, member.NewError(member.ErrInvocation, p.field.Signature(), ErrUnbound)
	}
	return p.accessor.Get(p.target)
}

// Set writes the field on the bound target.
func (p *FieldProxy) Set(v any) error {
	if !p.bound {
		return member.NewError(member.ErrInvocation, p.field.Signature(), ErrUnbound)
	}
	return p.accessor.Set(p.target, v)
}

// GetFrom reads the field from target.
func (p *FieldProxy) GetFrom(target any) (any, error) { return p.accessor.Get(target) }

// SetOn writes the field on target.
func (p *FieldProxy) SetOn(target any, v any) error { return p.accessor.Set(target, v) }
