// Package fs provides file system adapters for walking, hashing, resolving and copying files.
package fs

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file under root together with any walk error.
// Paths are yielded as filepath.WalkDir produces them, i.e. prefixed with root.
// .git and .jj are always skipped. An ignore entry that is an absolute path
// skips exactly that directory; any other entry is a glob matched against names.
// Symbolic links to regular files are yielded; links to directories are not followed.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return w.walk(root, func(path string, d fs.DirEntry) (bool, error) {
		return w.shouldSkip(path, d, ignores)
	})
}

// WalkFilesFunc is like WalkFiles but skips the directories for which skipDir
// reports true instead of matching ignore entries.
func (w *Walker) WalkFilesFunc(root string, skipDir func(dir string) bool) iter.Seq2[string, error] {
	return w.walk(root, func(path string, d fs.DirEntry) (bool, error) {
		if !d.IsDir() {
			return false, nil
		}
		if name := d.Name(); name == ".git" || name == ".jj" || skipDir(path) {
			return true, filepath.SkipDir
		}
		return false, nil
	})
}

func (w *Walker) walk(root string, skip func(path string, d fs.DirEntry) (bool, error)) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield(path, err) {
					return filepath.SkipAll
				}
				return nil
			}

			if ok, action := skip(path, d); ok {
				return action
			}

			if !isRegular(path, d) {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// isRegular reports whether the entry is a regular file or a symbolic link to one.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// shouldSkip reports whether the entry is ignored and what WalkDir should do about it.
func (w *Walker) shouldSkip(path string, d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if d.IsDir() && (name == ".git" || name == ".jj") {
		return true, filepath.SkipDir
	}

	for _, ignore := range ignores {
		var matched bool
		if filepath.IsAbs(ignore) {
			matched = d.IsDir() && filepath.Clean(ignore) == filepath.Clean(path)
		} else {
			matched, _ = filepath.Match(ignore, name)
		}
		if !matched {
			continue
		}
		if d.IsDir() {
			return true, filepath.SkipDir
		}
		return true, nil
	}

	return false, nil
}
