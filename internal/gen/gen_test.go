package gen

import (
	"bytes"
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewandler/reflx/core/synth"
)

const modelPath = "github.com/codewandler/reflx/internal/gen/testdata/model"

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata", "reflgen.toml"))
	require.NoError(t, err)

	assert.Equal(t, "./model", cfg.Package)
	assert.Equal(t, DefaultOutput, cfg.Output)
	require.Len(t, cfg.Types, 1)
	assert.Equal(t, "Account", cfg.Types[0].Name)
	assert.Equal(t, []string{"Close"}, cfg.Types[0].Exclude)
	assert.Equal(t, []StaticConfig{{Name: "Open", Func: "Open"}}, cfg.Types[0].Statics)
	assert.True(t, filepath.IsAbs(cfg.Dir))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"no types", Config{}, false},
		{"nameless type", Config{Types: []TypeConfig{{}}}, false},
		{"output path", Config{Output: "a/b.go", Types: []TypeConfig{{Name: "T"}}}, false},
		{"static without func", Config{Types: []TypeConfig{{Name: "T", Statics: []StaticConfig{{Name: "X"}}}}}, false},
		{"minimal", Config{Types: []TypeConfig{{Name: "T"}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, ".", tt.cfg.Package)
				assert.Equal(t, DefaultOutput, tt.cfg.Output)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfigValidate_StaticNameDefaultsToFunc(t *testing.T) {
	cfg := Config{Types: []TypeConfig{{Name: "T", Statics: []StaticConfig{{Func: "Parse"}}}}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "Parse", cfg.Types[0].Statics[0].Name)
}

// checkSource type-checks a self-contained source file.
func checkSource(t *testing.T, path, src string) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "src.go", src, 0)
	require.NoError(t, err)
	pkg, err := (&types.Config{}).Check(path, fset, []*ast.File{f}, nil)
	require.NoError(t, err)
	return pkg
}

func TestRefOf(t *testing.T) {
	pkg := checkSource(t, "example.com/p", `package p
type T struct{}
type hidden int
type G[X any] struct{}
var (
	vInt    int
	vByte   byte
	vRune   rune
	vPtr    *T
	vSlice  []string
	vArr    [4]T
	vMap    map[string]*T
	vAny    any
	vErr    error
	vHidden hidden
	vChan   chan int
	vFunc   func()
	vIface  interface{ M() }
	vGen    G[int]
)
`)
	lookup := func(name string) types.Type { return pkg.Scope().Lookup(name).Type() }

	tests := []struct {
		name  string
		local string
		want  string
		ok    bool
	}{
		{"vInt", "example.com/p", "int", true},
		{"vByte", "example.com/p", "uint8", true},
		{"vRune", "example.com/p", "int32", true},
		{"vPtr", "example.com/p", "*example.com/p.T", true},
		{"vSlice", "example.com/p", "[]string", true},
		{"vArr", "example.com/p", "[4]example.com/p.T", true},
		{"vMap", "example.com/p", "map[string]*example.com/p.T", true},
		{"vAny", "example.com/p", "any", true},
		{"vErr", "example.com/p", "error", true},
		{"vHidden", "example.com/p", "example.com/p.hidden", true},
		{"vHidden", "example.com/other", "", false},
		{"vChan", "example.com/p", "", false},
		{"vFunc", "example.com/p", "", false},
		{"vIface", "example.com/p", "", false},
		{"vGen", "example.com/p", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name+"@"+tt.local, func(t *testing.T) {
			ref, ok := refOf(lookup(tt.name), tt.local)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, ref.Canonical())
			}
		})
	}
}

const shopSrc = `package shop

type Cart struct {
	Items []string
}

func (c *Cart) Add(items ...string) int {
	c.Items = append(c.Items, items...)
	return len(c.Items)
}

func (c Cart) Len() int { return len(c.Items) }

func (c *Cart) Checkout(discount float64) (float64, error) { return 0, nil }

func (c *Cart) Watch(ch chan int) {}

func (c *Cart) reset() {}

func NewCart(items []string) *Cart { return &Cart{Items: items} }
`

func TestUnit(t *testing.T) {
	pkg := checkSource(t, "example.com/shop", shopSrc)
	cfg := &Config{Types: []TypeConfig{{
		Name:    "Cart",
		Statics: []StaticConfig{{Name: "From", Func: "NewCart"}},
	}}}
	require.NoError(t, cfg.Validate())

	u, err := New(cfg, Options{Log: slog.New(slog.DiscardHandler)}).Unit(pkg)
	require.NoError(t, err)
	assert.Equal(t, "example.com/shop", u.Path)
	assert.Equal(t, "shop", u.Name)

	byKey := make(map[string]synth.RoutineSpec)
	for _, r := range u.Routines {
		byKey[r.Key().String()] = r
	}
	assert.Len(t, byKey, 4)

	add, ok := byKey["example.com/shop.Cart.Add([]string)"]
	require.True(t, ok)
	assert.True(t, add.Variadic)
	assert.False(t, add.ValueReceiver)

	length, ok := byKey["example.com/shop.Cart.Len()"]
	require.True(t, ok)
	assert.True(t, length.ValueReceiver)

	_, ok = byKey["example.com/shop.Cart.Checkout(float64)"]
	assert.True(t, ok)

	from, ok := byKey["static example.com/shop.Cart.From([]string)"]
	require.True(t, ok)
	assert.Equal(t, "NewCart", from.Func)

	var buf bytes.Buffer
	require.NoError(t, u.Render(&buf))
	src := buf.String()
	assert.Contains(t, src, "// Code generated by reflgen. DO NOT EDIT.")
	assert.Contains(t, src, "package shop")
	assert.Contains(t, src, "NewCart(a0)")
	assert.Contains(t, src, "recv.Add(a0...)")
	assert.NotContains(t, src, "Watch")
	assert.NotContains(t, src, "reset")
}

func TestUnit_Errors(t *testing.T) {
	pkg := checkSource(t, "example.com/shop", shopSrc)
	g := func(tc TypeConfig) error {
		cfg := &Config{Types: []TypeConfig{tc}}
		require.NoError(t, cfg.Validate())
		_, err := New(cfg, Options{Log: slog.New(slog.DiscardHandler)}).Unit(pkg)
		return err
	}
	assert.ErrorIs(t, g(TypeConfig{Name: "Missing"}), ErrUnknownType)
	assert.ErrorIs(t, g(TypeConfig{Name: "NewCart"}), ErrUnknownType)
	assert.ErrorIs(t, g(TypeConfig{Name: "Cart", Statics: []StaticConfig{{Func: "Nope"}}}), ErrUnknownFunc)
}

func TestLoadAndWrite(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}
	cfg, err := LoadConfig(filepath.Join("testdata", "reflgen.toml"))
	require.NoError(t, err)
	g := New(cfg, Options{Log: slog.New(slog.DiscardHandler)})

	pkg, err := g.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, modelPath, pkg.PkgPath)

	u, err := g.Unit(pkg.Types)
	require.NoError(t, err)
	keys := make([]string, len(u.Routines))
	for i, r := range u.Routines {
		keys[i] = r.Key().String()
	}
	assert.ElementsMatch(t, []string{
		modelPath + ".Account.Deposit(int64)",
		modelPath + ".Account.Label()",
		modelPath + ".Account.Tag([]string)",
		"static " + modelPath + ".Account.Open(string)",
	}, keys)

	path := filepath.Join(t.TempDir(), DefaultOutput)
	require.NoError(t, WriteUnit(u, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package model")
	assert.Contains(t, string(data), `"static `+modelPath+`.Account.Open(string)",`)
	assert.Regexp(t, `Func:\s+Open,`, string(data))
	assert.Regexp(t, `Type:\s+reflect.TypeFor\[Account\]\(\),`, string(data))
}
