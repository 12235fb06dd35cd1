package host

import "github.com/codewandler/reflx/core/member"

// Option configures a registration.
type Option func(*regOptions)

type regOptions struct {
	name      string
	anns      member.AnnotationSet
	paramAnns []member.AnnotationSet
}

// WithName overrides the registered member name.
func WithName(name string) Option {
	return func(o *regOptions) { o.name = name }
}

// WithAnnotations attaches annotations to the member.
func WithAnnotations(as ...member.Annotation) Option {
	return func(o *regOptions) { o.anns = append(o.anns, as...) }
}

// WithParamAnnotations attaches annotations to the parameter at index i.
func WithParamAnnotations(i int, as ...member.Annotation) Option {
	return func(o *regOptions) {
		for len(o.paramAnns) <= i {
			o.paramAnns = append(o.paramAnns, nil)
		}
		o.paramAnns[i] = append(o.paramAnns[i], as...)
	}
}

func applyOptions(def string, opts []Option) regOptions {
	o := regOptions{name: def}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
