package synth

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"
)

const synthPath = "github.com/codewandler/reflx/core/synth"

// RefKind classifies a TypeRef.
type RefKind uint8

const (
	RefNamed RefKind = iota
	RefBasic
	RefPointer
	RefSlice
	RefArray
	RefMap
	RefAny
	RefError
)

// TypeRef is a source-level type reference that can be rendered as Go code
// and named canonically. It is the common currency between runtime types
// and types loaded from source.
type TypeRef struct {
	Kind    RefKind
	Path    string // package path of a named type
	PkgName string // package name of a named type, when known
	Name    string // named or basic type name
	Elem    *TypeRef
	Key     *TypeRef
	Len     int
}

// Named returns a reference to the named type path.name.
func Named(path, name string) TypeRef { return TypeRef{Kind: RefNamed, Path: path, Name: name} }

// Basic returns a reference to a predeclared basic type.
func Basic(name string) TypeRef { return TypeRef{Kind: RefBasic, Name: name} }

// Canonical returns the same name reflector.NameOf gives the runtime type.
func (t TypeRef) Canonical() string {
	switch t.Kind {
	case RefNamed:
		if t.Path == "" {
			return t.Name
		}
		return t.Path + "." + t.Name
	case RefBasic:
		return t.Name
	case RefPointer:
		return "*" + t.Elem.Canonical()
	case RefSlice:
		return "[]" + t.Elem.Canonical()
	case RefArray:
		return "[" + strconv.Itoa(t.Len) + "]" + t.Elem.Canonical()
	case RefMap:
		return "map[" + t.Key.Canonical() + "]" + t.Elem.Canonical()
	case RefAny:
		return "any"
	case RefError:
		return "error"
	}
	return "invalid"
}

// Code renders t. Named types in the package being generated are left
// unqualified.
func (t TypeRef) Code() *jen.Statement {
	switch t.Kind {
	case RefNamed:
		return jen.Qual(t.Path, t.Name)
	case RefBasic:
		return jen.Id(t.Name)
	case RefPointer:
		return jen.Op("*").Add(t.Elem.Code())
	case RefSlice:
		return jen.Index().Add(t.Elem.Code())
	case RefArray:
		return jen.Index(jen.Lit(t.Len)).Add(t.Elem.Code())
	case RefMap:
		return jen.Map(t.Key.Code()).Add(t.Elem.Code())
	case RefAny:
		return jen.Any()
	case RefError:
		return jen.Error()
	}
	return jen.Id("invalid")
}

// RefOf converts a runtime type. ok is false for types a routine cannot
// name in source: channels, funcs, non-empty unnamed interfaces, unnamed
// structs and instantiated generics.
func RefOf(t reflect.Type) (ref TypeRef, ok bool) {
	if t == nil {
		return TypeRef{}, false
	}
	if t == reflect.TypeFor[error]() {
		return TypeRef{Kind: RefError}, true
	}
	if name := t.Name(); name != "" {
		if strings.ContainsRune(name, '[') {
			return TypeRef{}, false
		}
		if t.PkgPath() == "" {
			return Basic(name), true
		}
		return Named(t.PkgPath(), name), true
	}
	wrap := func(kind RefKind, elem reflect.Type) (TypeRef, bool) {
		e, ok := RefOf(elem)
		if !ok {
			return TypeRef{}, false
		}
		return TypeRef{Kind: kind, Elem: &e, Len: lenOf(t)}, true
	}
	switch t.Kind() {
	case reflect.Pointer:
		return wrap(RefPointer, t.Elem())
	case reflect.Slice:
		return wrap(RefSlice, t.Elem())
	case reflect.Array:
		return wrap(RefArray, t.Elem())
	case reflect.Map:
		k, ok := RefOf(t.Key())
		if !ok {
			return TypeRef{}, false
		}
		ref, ok := wrap(RefMap, t.Elem())
		ref.Key = &k
		return ref, ok
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return TypeRef{Kind: RefAny}, true
		}
	}
	return TypeRef{}, false
}

func lenOf(t reflect.Type) int {
	if t.Kind() == reflect.Array {
		return t.Len()
	}
	return 0
}

// RoutineSpec describes one routine to generate.
type RoutineSpec struct {
	Type TypeRef // declaring named type
	Name string
	// Func is the package-level function behind a static member.
	Func          string
	Static        bool
	ValueReceiver bool
	Variadic      bool
	Params        []TypeRef
	Results       []TypeRef
}

// Key returns the key the runtime computes for the described member.
func (r RoutineSpec) Key() Key {
	k := Key{Type: r.Type.Canonical(), Name: r.Name, Params: make([]string, len(r.Params)), Static: r.Static}
	for i, p := range r.Params {
		k.Params[i] = p.Canonical()
	}
	return k
}

// FuncName is the identifier of the generated routine.
func (r RoutineSpec) FuncName() string { return "reflxInvoke_" + r.Key().ID() }

func (r RoutineSpec) returnsError() bool {
	return len(r.Results) > 0 && r.Results[len(r.Results)-1].Kind == RefError
}

// Unit is one generated source file holding routines for one package.
type Unit struct {
	Path     string
	Name     string
	Routines []RoutineSpec
}

func errCheck() jen.Code {
	return jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err()))
}

func (r RoutineSpec) body() []jen.Code {
	var body []jen.Code
	body = append(body,
		jen.If(
			jen.Err().Op(":=").Qual(synthPath, "Arity").Call(jen.Id("args"), jen.Lit(len(r.Params))),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Nil(), jen.Err())),
	)

	var callee *jen.Statement
	if r.Static {
		callee = jen.Qual(r.Type.Path, r.Func)
	} else {
		body = append(body,
			jen.List(jen.Id("recv"), jen.Err()).Op(":=").
				Qual(synthPath, "Receiver").Types(r.Type.Code()).
				Call(jen.Id("target"), jen.Lit(r.ValueReceiver)),
			errCheck(),
		)
		callee = jen.Id("recv").Dot(r.Name)
	}

	args := make([]jen.Code, len(r.Params))
	for i, p := range r.Params {
		a := "a" + strconv.Itoa(i)
		body = append(body,
			jen.List(jen.Id(a), jen.Err()).Op(":=").
				Qual(synthPath, "Arg").Types(p.Code()).
				Call(jen.Id("args"), jen.Lit(i)),
			errCheck(),
		)
		args[i] = jen.Id(a)
		if r.Variadic && i == len(r.Params)-1 {
			args[i] = jen.Id(a).Op("...")
		}
	}
	call := callee.Call(args...)

	n, withErr := len(r.Results), r.returnsError()
	values := n
	if withErr {
		values--
	}
	switch {
	case n == 0:
		return append(body, call, jen.Return(jen.Nil(), jen.Nil()))
	case n == 1 && withErr:
		return append(body, jen.Return(jen.Nil(), call))
	case n == 1:
		return append(body, jen.Return(call, jen.Nil()))
	}

	names := make([]jen.Code, 0, n)
	outs := make([]jen.Code, 0, values)
	for i := range values {
		id := "r" + strconv.Itoa(i)
		names = append(names, jen.Id(id))
		outs = append(outs, jen.Id(id))
	}
	if withErr {
		names = append(names, jen.Id("rerr"))
	}
	body = append(body, jen.List(names...).Op(":=").Add(call))
	if withErr {
		body = append(body, jen.If(jen.Id("rerr").Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Id("rerr"))))
	}
	if values == 1 {
		return append(body, jen.Return(outs[0], jen.Nil()))
	}
	return append(body, jen.Return(jen.Index().Any().Values(outs...), jen.Nil()))
}

func (t TypeRef) packages(out map[string]string) {
	switch {
	case t.Kind == RefNamed && t.PkgName != "":
		out[t.Path] = t.PkgName
	case t.Elem != nil:
		t.Elem.packages(out)
	}
	if t.Key != nil {
		t.Key.packages(out)
	}
}

// File builds the jennifer file for u.
func (u *Unit) File() *jen.File {
	f := jen.NewFilePathName(u.Path, u.Name)
	f.HeaderComment("Code generated by reflgen. DO NOT EDIT.")
	f.ImportName(synthPath, "synth")

	names := make(map[string]string)
	for _, r := range u.Routines {
		r.Type.packages(names)
		for _, p := range r.Params {
			p.packages(names)
		}
		for _, p := range r.Results {
			p.packages(names)
		}
	}
	for path, name := range names {
		f.ImportName(path, name)
	}

	for _, r := range u.Routines {
		f.Commentf("%s invokes %s.", r.FuncName(), r.Key())
		f.Func().Id(r.FuncName()).
			Params(jen.Id("target").Any(), jen.Id("args").Index().Any()).
			Params(jen.Any(), jen.Error()).
			Block(r.body()...)
		f.Line()
	}

	f.Func().Id("init").Params().BlockFunc(func(g *jen.Group) {
		for _, r := range u.Routines {
			d := jen.Dict{
				jen.Id("Key"):    jen.Lit(r.Key().String()),
				jen.Id("Type"):   jen.Qual("reflect", "TypeFor").Types(r.Type.Code()).Call(),
				jen.Id("Invoke"): jen.Id(r.FuncName()),
			}
			if r.Static {
				d[jen.Id("Func")] = jen.Qual(r.Type.Path, r.Func)
			}
			g.Qual(synthPath, "Register").Call(jen.Qual(synthPath, "Generated").Values(d))
		}
	})
	return f
}

// Render writes the formatted source of u to w.
func (u *Unit) Render(w io.Writer) error {
	if err := u.File().Render(w); err != nil {
		return fmt.Errorf("render %s: %w", u.Path, err)
	}
	return nil
}

// SpecOf describes plan p as a routine spec, for methods whose types can
// be named in source. fn names the package-level function of a static.
func SpecOf(p *Plan, fn string) (RoutineSpec, bool) {
	decl, ok := RefOf(p.Declaring)
	if !ok || decl.Kind != RefNamed {
		return RoutineSpec{}, false
	}
	spec := RoutineSpec{
		Type:          decl,
		Name:          p.Key.Name,
		Func:          fn,
		Static:        p.Static,
		ValueReceiver: p.ValueReceiver,
		Variadic:      p.Variadic,
	}
	if spec.Static && fn == "" {
		return RoutineSpec{}, false
	}
	for _, t := range p.Params {
		ref, ok := RefOf(t)
		if !ok {
			return RoutineSpec{}, false
		}
		spec.Params = append(spec.Params, ref)
	}
	for _, t := range p.Results {
		ref, ok := RefOf(t)
		if !ok {
			return RoutineSpec{}, false
		}
		spec.Results = append(spec.Results, ref)
	}
	return spec, true
}
