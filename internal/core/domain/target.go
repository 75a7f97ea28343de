package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// Mode selects between a single production build and a watching development session.
type Mode string

const (
	// ModeProduction builds once and exits.
	ModeProduction Mode = "production"
	// ModeDevelopment keeps watching the sources and rebuilds on change.
	ModeDevelopment Mode = "development"
)

// ParseMode converts a user supplied mode string to a Mode.
// "watch" is accepted as an alias for development.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeProduction):
		return ModeProduction, nil
	case string(ModeDevelopment), "watch", "dev":
		return ModeDevelopment, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidMode, "parse mode"), "mode", s)
	}
}

// Watching reports whether the mode keeps the process alive to rebuild on change.
func (m Mode) Watching() bool {
	return m == ModeDevelopment
}

var targetNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// BuildTarget identifies one buildable unit.
//
// Name is the output base name shared by the script bundle, the binary module
// and the stylesheet, so the generated loader can locate its binary at runtime.
type BuildTarget struct {
	Name   string
	Script string
	Style  string
	Crate  string
	Static string
	Out    string
	Mode   Mode
}

// ScriptFile returns the file name of the script bundle.
func (t BuildTarget) ScriptFile() string {
	return t.Name + ".js"
}

// BinaryFile returns the file name of the binary module artifact.
func (t BuildTarget) BinaryFile() string {
	return t.Name + ".wasm"
}

// StyleFile returns the file name of the stylesheet.
func (t BuildTarget) StyleFile() string {
	return t.Name + ".css"
}

// OwnedFiles returns the output file names managed by the bundle step, in a fixed order.
func (t BuildTarget) OwnedFiles() []string {
	return []string{t.ScriptFile(), t.BinaryFile(), t.StyleFile()}
}

// ValidateName checks that a target name is usable as an output base name.
func ValidateName(name string) error {
	if !targetNamePattern.MatchString(name) {
		return zerr.With(zerr.Wrap(ErrInvalidTargetName, "validate target"), "target", name)
	}
	return nil
}

// ResolvedInputs holds the validated source locations of a target.
type ResolvedInputs struct {
	Script string
	Style  string
	Crate  string
	Static string
}
