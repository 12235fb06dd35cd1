// Package gen implements reflgen: it loads a Go package from source and
// emits synthesized invocation routines for the configured types, so the
// synthesizer's table compiler finds them at run time.
package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/codewandler/reflx/core/synth"
)

var (
	ErrLoad        = errors.New("package load failed")
	ErrUnknownType = errors.New("unknown type")
	ErrUnknownFunc = errors.New("unknown function")
)

// Options configures a Generator.
type Options struct {
	Log *slog.Logger
}

// Generator turns a Config into a generated source unit.
type Generator struct {
	cfg *Config
	log *slog.Logger
}

// New creates a Generator for cfg.
func New(cfg *Config, opts Options) *Generator {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &Generator{cfg: cfg, log: opts.Log.With(slog.String("component", "reflgen"))}
}

// Load loads the configured package with type information.
func (g *Generator) Load(ctx context.Context) (*packages.Package, error) {
	pcfg := &packages.Config{
		Context: ctx,
		Dir:     g.cfg.Dir,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedTypes,
	}
	pkgs, err := packages.Load(pcfg, g.cfg.Package)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, g.cfg.Package, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("%w: %s matched %d packages", ErrLoad, g.cfg.Package, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		errs := make([]error, len(pkg.Errors))
		for i, e := range pkg.Errors {
			errs[i] = e
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, pkg.PkgPath, errors.Join(errs...))
	}
	return pkg, nil
}

// Unit builds the routines for pkg.
func (g *Generator) Unit(pkg *types.Package) (*synth.Unit, error) {
	u := &synth.Unit{Path: runtimePath(pkg), Name: pkg.Name()}
	for _, tc := range g.cfg.Types {
		routines, err := g.routinesFor(pkg, tc)
		if err != nil {
			return nil, err
		}
		u.Routines = append(u.Routines, routines...)
	}
	return u, nil
}

func (g *Generator) routinesFor(pkg *types.Package, tc TypeConfig) ([]synth.RoutineSpec, error) {
	obj, ok := pkg.Scope().Lookup(tc.Name).(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownType, pkg.Path(), tc.Name)
	}
	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return nil, fmt.Errorf("%w: %s.%s is not a non-generic named type", ErrUnknownType, pkg.Path(), tc.Name)
	}
	local := runtimePath(pkg)
	decl := synth.Named(local, obj.Name())
	decl.PkgName = pkg.Name()

	var out []synth.RoutineSpec
	if _, abstract := named.Underlying().(*types.Interface); abstract {
		g.log.Warn("interface methods are not synthesized", slog.String("type", decl.Canonical()))
	} else {
		values := types.NewMethodSet(named)
		all := types.NewMethodSet(types.NewPointer(named))
		for i := 0; i < all.Len(); i++ {
			fn, ok := all.At(i).Obj().(*types.Func)
			if !ok || !fn.Exported() || tc.excluded(fn.Name()) {
				continue
			}
			spec, ok := g.spec(decl, fn.Name(), "", fn.Type().(*types.Signature), local)
			if !ok {
				continue
			}
			spec.ValueReceiver = values.Lookup(fn.Pkg(), fn.Name()) != nil
			out = append(out, spec)
		}
	}

	for _, sc := range tc.Statics {
		fn, ok := pkg.Scope().Lookup(sc.Func).(*types.Func)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownFunc, pkg.Path(), sc.Func)
		}
		if !token.IsExported(sc.Name) {
			g.log.Debug("static skipped: unexported name", slog.String("name", sc.Name))
			continue
		}
		spec, ok := g.spec(decl, sc.Name, sc.Func, fn.Type().(*types.Signature), local)
		if !ok {
			continue
		}
		spec.Static = true
		out = append(out, spec)
	}

	g.log.Info("type processed",
		slog.String("type", decl.Canonical()),
		slog.Int("routines", len(out)),
	)
	return out, nil
}

func (g *Generator) spec(decl synth.TypeRef, name, fn string, sig *types.Signature, local string) (synth.RoutineSpec, bool) {
	if sig.TypeParams().Len() > 0 {
		return synth.RoutineSpec{}, false
	}
	params, ok := tupleRefs(sig.Params(), local)
	if !ok {
		g.log.Debug("member skipped: parameter type not expressible",
			slog.String("type", decl.Canonical()),
			slog.String("member", name),
		)
		return synth.RoutineSpec{}, false
	}
	results, ok := tupleRefs(sig.Results(), local)
	if !ok {
		g.log.Debug("member skipped: result type not expressible",
			slog.String("type", decl.Canonical()),
			slog.String("member", name),
		)
		return synth.RoutineSpec{}, false
	}
	return synth.RoutineSpec{
		Type:     decl,
		Name:     name,
		Func:     fn,
		Variadic: sig.Variadic(),
		Params:   params,
		Results:  results,
	}, true
}

// Run loads the package, generates the unit and writes it next to the
// package's sources. It returns the written path.
func (g *Generator) Run(ctx context.Context) (string, error) {
	pkg, err := g.Load(ctx)
	if err != nil {
		return "", err
	}
	u, err := g.Unit(pkg.Types)
	if err != nil {
		return "", err
	}
	dir := g.cfg.Dir
	if len(pkg.GoFiles) > 0 {
		dir = filepath.Dir(pkg.GoFiles[0])
	}
	path := filepath.Join(dir, g.cfg.Output)
	if err := WriteUnit(u, path); err != nil {
		return "", err
	}
	g.log.Info("routines written",
		slog.String("package", u.Path),
		slog.String("file", path),
		slog.Int("routines", len(u.Routines)),
	)
	return path, nil
}

// WriteUnit renders u and writes it to path.
func WriteUnit(u *synth.Unit, path string) error {
	var buf bytes.Buffer
	if err := u.Render(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
