package gen

import (
	"go/token"
	"go/types"

	"github.com/codewandler/reflx/core/synth"
)

// runtimePath is the package path reflect reports for pkg. Types of a
// main package are named "main.T" at run time, whatever the import path.
func runtimePath(pkg *types.Package) string {
	if pkg.Name() == "main" {
		return "main"
	}
	return pkg.Path()
}

// refOf converts a source type into a reference a routine in package
// local can name. ok is false for types the generated code cannot spell:
// channels, funcs, non-empty unnamed interfaces, unnamed structs,
// instantiated generics, unsafe pointers and unexported types of other
// packages.
func refOf(t types.Type, local string) (synth.TypeRef, bool) {
	t = types.Unalias(t)
	switch t := t.(type) {
	case *types.Named:
		obj := t.Obj()
		if t.TypeArgs().Len() > 0 || t.TypeParams().Len() > 0 {
			return synth.TypeRef{}, false
		}
		if obj.Pkg() == nil {
			if obj.Name() == "error" {
				return synth.TypeRef{Kind: synth.RefError}, true
			}
			return synth.TypeRef{}, false
		}
		path := runtimePath(obj.Pkg())
		if !token.IsExported(obj.Name()) && path != local {
			return synth.TypeRef{}, false
		}
		ref := synth.Named(path, obj.Name())
		ref.PkgName = obj.Pkg().Name()
		return ref, true
	case *types.Basic:
		if t.Info()&types.IsUntyped != 0 || t.Kind() == types.UnsafePointer || t.Kind() == types.Invalid {
			return synth.TypeRef{}, false
		}
		// byte and rune name their underlying kinds at run time.
		return synth.Basic(types.Typ[t.Kind()].Name()), true
	case *types.Pointer:
		return wrapRef(synth.RefPointer, t.Elem(), local, 0)
	case *types.Slice:
		return wrapRef(synth.RefSlice, t.Elem(), local, 0)
	case *types.Array:
		return wrapRef(synth.RefArray, t.Elem(), local, int(t.Len()))
	case *types.Map:
		k, ok := refOf(t.Key(), local)
		if !ok {
			return synth.TypeRef{}, false
		}
		ref, ok := wrapRef(synth.RefMap, t.Elem(), local, 0)
		ref.Key = &k
		return ref, ok
	case *types.Interface:
		if t.Empty() {
			return synth.TypeRef{Kind: synth.RefAny}, true
		}
	}
	return synth.TypeRef{}, false
}

func wrapRef(kind synth.RefKind, elem types.Type, local string, n int) (synth.TypeRef, bool) {
	e, ok := refOf(elem, local)
	if !ok {
		return synth.TypeRef{}, false
	}
	return synth.TypeRef{Kind: kind, Elem: &e, Len: n}, true
}

// tupleRefs converts every variable of tup.
func tupleRefs(tup *types.Tuple, local string) ([]synth.TypeRef, bool) {
	refs := make([]synth.TypeRef, 0, tup.Len())
	for i := 0; i < tup.Len(); i++ {
		ref, ok := refOf(tup.At(i).Type(), local)
		if !ok {
			return nil, false
		}
		refs = append(refs, ref)
	}
	return refs, true
}
