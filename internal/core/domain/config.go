package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// DefaultSassCommand is the Sass compiler used when the config does not name one.
const DefaultSassCommand = "sass"

// DefaultCompilerCommand is the module compiler used when the config does not name one.
const DefaultCompilerCommand = "wasm-pack"

// CompilerConfig configures the external module compiler.
type CompilerConfig struct {
	Command string
	Args    []string
}

// Config is the loaded project configuration: tool settings plus the table of targets.
// Root is the directory holding the configuration file; target paths are absolute.
type Config struct {
	Root     string
	Path     string
	Sass     string
	Compiler CompilerConfig
	Targets  []BuildTarget
}

// TargetNames returns the configured target names in sorted order.
func (c *Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for _, t := range c.Targets {
		names = append(names, t.Name)
	}
	slices.Sort(names)
	return names
}

// Target returns the configured target with the given name.
func (c *Config) Target(name string) (BuildTarget, error) {
	for _, t := range c.Targets {
		if t.Name == name {
			return t, nil
		}
	}
	return BuildTarget{}, zerr.With(zerr.With(zerr.Wrap(ErrTargetNotFound, "select target"), "target", name), "known", strings.Join(c.TargetNames(), ","))
}

// Select returns the named targets, or every target sorted by name when names is empty.
func (c *Config) Select(names []string) ([]BuildTarget, error) {
	if len(names) == 0 {
		names = c.TargetNames()
	}
	selected := make([]BuildTarget, 0, len(names))
	for _, name := range names {
		t, err := c.Target(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, t)
	}
	return selected, nil
}
