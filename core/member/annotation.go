package member

import "strings"

// Annotation is a piece of metadata attached to a type, member or parameter.
// Struct tags map onto it directly: `json:"name,omitempty"` becomes
// {Key: "json", Name: "name", Options: ["omitempty"]}.
type Annotation struct {
	Key     string
	Name    string
	Options []string
}

// HasOption reports whether opt is among the annotation's options.
func (a Annotation) HasOption(opt string) bool {
	for _, o := range a.Options {
		if o == opt {
			return true
		}
	}
	return false
}

func (a Annotation) String() string {
	v := a.Name
	if len(a.Options) > 0 {
		v += "," + strings.Join(a.Options, ",")
	}
	return a.Key + ":" + `"` + v + `"`
}

// Annotated is implemented by everything that can carry annotations.
type Annotated interface {
	Annotations() []Annotation
	Annotation(key string) (Annotation, bool)
}

// AnnotationSet is an ordered set of annotations. The first entry wins for
// a repeated key.
type AnnotationSet []Annotation

func (as AnnotationSet) Annotations() []Annotation {
	out := make([]Annotation, len(as))
	copy(out, as)
	return out
}

func (as AnnotationSet) Annotation(key string) (Annotation, bool) {
	for _, a := range as {
		if a.Key == key {
			return a, true
		}
	}
	return Annotation{}, false
}

var _ Annotated = AnnotationSet(nil)
