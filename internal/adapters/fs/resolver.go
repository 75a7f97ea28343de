package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
)

var _ ports.AssetResolver = (*Resolver)(nil)

// Input kinds reported by MissingInputError.
const (
	KindScript = "script entry"
	KindStyle  = "style entry"
	KindCrate  = "module crate"
	KindStatic = "static directory"
)

// Resolver implements ports.AssetResolver by checking the file system.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve checks the inputs of a target in the order script, style, crate, static.
// Entries must be regular files and the crate and static inputs must be directories.
func (r *Resolver) Resolve(target domain.BuildTarget) (domain.ResolvedInputs, error) {
	var (
		resolved domain.ResolvedInputs
		err      error
	)
	if resolved.Script, err = resolvePath(target.Script, KindScript, false); err != nil {
		return domain.ResolvedInputs{}, err
	}
	if resolved.Style, err = resolvePath(target.Style, KindStyle, false); err != nil {
		return domain.ResolvedInputs{}, err
	}
	if resolved.Crate, err = resolvePath(target.Crate, KindCrate, true); err != nil {
		return domain.ResolvedInputs{}, err
	}
	if resolved.Static, err = resolvePath(target.Static, KindStatic, true); err != nil {
		return domain.ResolvedInputs{}, err
	}
	return resolved, nil
}

func resolvePath(path, kind string, wantDir bool) (string, error) {
	if path == "" {
		return "", &domain.MissingInputError{Path: path, Kind: kind}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &domain.MissingInputError{Path: path, Kind: kind}
	}

	info, err := os.Stat(abs)
	switch {
	case err != nil:
		return "", &domain.MissingInputError{Path: abs, Kind: kind}
	case wantDir && !info.IsDir():
		return "", &domain.MissingInputError{Path: abs, Kind: kind}
	case !wantDir && !info.Mode().IsRegular():
		return "", &domain.MissingInputError{Path: abs, Kind: kind}
	}
	return abs, nil
}
