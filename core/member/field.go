package member

import (
	"reflect"

	"github.com/codewandler/reflx/core/reflector"
)

// Field describes a struct field, including fields promoted from embedded
// structs.
type Field struct {
	declaring reflect.Type
	sf        reflect.StructField
	offset    uintptr
	direct    bool
	mods      Modifiers
	anns      AnnotationSet
}

// NewField describes sf as a field of declaring. sf.Index is the index path
// from declaring, as returned by reflect.VisibleFields.
func NewField(declaring reflect.Type, sf reflect.StructField, anns AnnotationSet) *Field {
	f := &Field{
		declaring: declaring,
		sf:        sf,
		direct:    true,
		mods:      visibility(sf.IsExported()),
		anns:      anns,
	}
	if len(sf.Index) > 1 {
		f.mods |= Promoted
	}

	t := declaring
	for _, idx := range sf.Index {
		if t.Kind() == reflect.Pointer {
			f.direct = false
			t = t.Elem()
		}
		step := t.Field(idx)
		f.offset += step.Offset
		t = step.Type
	}
	return f
}

func (f *Field) member() {}

func (f *Field) Kind() Kind                  { return KindField }
func (f *Field) Name() string                { return f.sf.Name }
func (f *Field) DeclaringType() reflect.Type { return f.declaring }
func (f *Field) Modifiers() Modifiers        { return f.mods }
func (f *Field) Type() reflect.Type          { return f.sf.Type }

// Index is the field's index path from the declaring type.
func (f *Field) Index() []int { return f.sf.Index }

// Tag is the raw struct tag.
func (f *Field) Tag() reflect.StructTag { return f.sf.Tag }

// Offset returns the field's byte offset from the start of the declaring
// struct. ok is false when the path crosses an embedded pointer, in which
// case the field does not live at a fixed offset.
func (f *Field) Offset() (off uintptr, ok bool) { return f.offset, f.direct }

func (f *Field) Annotations() []Annotation                { return f.anns.Annotations() }
func (f *Field) Annotation(key string) (Annotation, bool) { return f.anns.Annotation(key) }

func (f *Field) Signature() string {
	s := reflector.NameOf(f.declaring) + "." + f.sf.Name + " " + reflector.NameOf(f.sf.Type)
	if m := f.mods.String(); m != "" {
		s = m + " " + s
	}
	return s
}

func (f *Field) String() string { return f.Signature() }

var _ Member = (*Field)(nil)
