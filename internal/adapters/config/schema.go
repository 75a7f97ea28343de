package config

// Brewfile represents the structure of the brew.yaml configuration file.
type Brewfile struct {
	Version  string               `yaml:"version"`
	Sass     string               `yaml:"sass"`
	Compiler CompilerDTO          `yaml:"compiler"`
	Targets  map[string]TargetDTO `yaml:"targets"`
}

// CompilerDTO configures the external module compiler.
type CompilerDTO struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// TargetDTO represents a build target definition in the configuration.
type TargetDTO struct {
	Script string `yaml:"script"`
	Style  string `yaml:"style"`
	Crate  string `yaml:"crate"`
	Static string `yaml:"static"`
	Out    string `yaml:"out"`
}
