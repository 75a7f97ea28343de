package domain

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// StaticIgnoredDirNames are directory name globs skipped inside the static tree.
// Everything else in it is copied into the bundle, so everything else is a source.
var StaticIgnoredDirNames = []string{".git", ".jj", "*" + StagingPattern}

// SourceScope describes the paths a target's build reads. All paths are absolute.
type SourceScope struct {
	// Files are single source files, observed through their parent directory.
	Files []string
	// Pruned are source trees in which directories matching IgnoredDirNames are not sources.
	Pruned []string
	// Verbatim are source trees in which only StaticIgnoredDirNames are skipped.
	Verbatim []string
	// Excluded are directories that never hold sources, even when below a tree.
	Excluded []string
}

// SourceScope returns the scope of the target: both entries, the style entry
// directory and the crate as pruned trees, the static directory verbatim and
// the output directory excluded.
func (t BuildTarget) SourceScope() (SourceScope, error) {
	paths := []string{t.Script, t.Style, filepath.Dir(t.Style), t.Crate, t.Static, t.Out}
	for i, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return SourceScope{}, zerr.With(zerr.Wrap(err, "failed to resolve source path"), "path", path)
		}
		paths[i] = abs
	}

	return SourceScope{
		Files:    paths[0:2],
		Pruned:   paths[2:4],
		Verbatim: paths[4:5],
		Excluded: paths[5:6],
	}, nil
}

// Roots returns the files and trees of the scope, sorted and without duplicates.
func (s SourceScope) Roots() []string {
	roots := slices.Concat(s.Files, s.Pruned, s.Verbatim)
	slices.Sort(roots)
	return slices.Compact(roots)
}

// Contains reports whether a change to path can affect the build.
func (s SourceScope) Contains(path string) bool {
	path = filepath.Clean(path)
	if s.excluded(path) {
		return false
	}
	if slices.Contains(s.Files, path) {
		return true
	}
	return s.inTree(path)
}

// SkipDir reports whether nothing below dir can be a source.
func (s SourceScope) SkipDir(dir string) bool {
	dir = filepath.Clean(dir)
	if s.excluded(dir) {
		return true
	}
	for _, root := range slices.Concat(s.Pruned, s.Verbatim) {
		if _, ok := relParts(dir, root); ok {
			return false
		}
	}
	return !s.inTree(dir)
}

func (s SourceScope) inTree(path string) bool {
	for _, root := range s.Pruned {
		if parts, ok := relParts(root, path); ok && !slices.ContainsFunc(parts, IsIgnoredDir) {
			return true
		}
	}
	for _, root := range s.Verbatim {
		if parts, ok := relParts(root, path); ok && !slices.ContainsFunc(parts, isStaticIgnoredDir) {
			return true
		}
	}
	return false
}

func (s SourceScope) excluded(path string) bool {
	return slices.ContainsFunc(s.Excluded, func(dir string) bool {
		_, ok := relParts(dir, path)
		return ok
	})
}

// relParts splits the path of target relative to base into its components.
// It reports false when target is not base or below it.
func relParts(base, target string) ([]string, bool) {
	rel, err := filepath.Rel(base, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, false
	}
	if rel == "." {
		return nil, true
	}
	return strings.Split(rel, string(filepath.Separator)), true
}

func isStaticIgnoredDir(name string) bool {
	for _, pattern := range StaticIgnoredDirNames {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
