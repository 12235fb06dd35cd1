package gen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultOutput is the generated file name when none is configured.
const DefaultOutput = "reflx_gen.go"

var ErrInvalidConfig = errors.New("invalid reflgen config")

// Config is the reflgen.toml configuration.
type Config struct {
	// Package is the package pattern to load, relative to Dir.
	Package string `toml:"package"`
	// Output is the generated file name, written into the package
	// directory.
	Output string       `toml:"output"`
	Types  []TypeConfig `toml:"types"`

	// Dir is the directory containing the config file (set at load time).
	Dir string `toml:"-"`
}

// TypeConfig selects the members of one type.
type TypeConfig struct {
	Name string `toml:"name"`
	// Exclude lists method names to skip.
	Exclude []string       `toml:"exclude"`
	Statics []StaticConfig `toml:"statics"`
}

// StaticConfig binds a package-level function as a static member.
type StaticConfig struct {
	// Name is the member name the function is registered under.
	Name string `toml:"name"`
	// Func is the package-level function.
	Func string `toml:"func"`
}

// LoadConfig parses a reflgen.toml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &c, nil
}

// Validate fills defaults and checks required settings.
func (c *Config) Validate() error {
	if c.Package == "" {
		c.Package = "."
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if filepath.Base(c.Output) != c.Output {
		return fmt.Errorf("%w: output %q must be a file name", ErrInvalidConfig, c.Output)
	}
	if len(c.Types) == 0 {
		return fmt.Errorf("%w: no types", ErrInvalidConfig)
	}
	for i, t := range c.Types {
		if t.Name == "" {
			return fmt.Errorf("%w: types[%d] has no name", ErrInvalidConfig, i)
		}
		for j, s := range t.Statics {
			if s.Func == "" {
				return fmt.Errorf("%w: %s.statics[%d] has no func", ErrInvalidConfig, t.Name, j)
			}
			if s.Name == "" {
				c.Types[i].Statics[j].Name = s.Func
			}
		}
	}
	return nil
}

func (t TypeConfig) excluded(name string) bool {
	for _, n := range t.Exclude {
		if n == name {
			return true
		}
	}
	return false
}
