package fs

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
)

var _ ports.StaticCopier = (*Copier)(nil)

// Copier implements ports.StaticCopier.
type Copier struct {
	walker *Walker
}

// NewCopier creates a new Copier.
func NewCopier(walker *Walker) *Copier {
	return &Copier{walker: walker}
}

// Copy copies every regular file under staticDir into outDir, preserving relative paths.
// A symbolic link to a file is copied as the content of its target; links to
// directories are skipped. Existing files are overwritten; permissions are not copied.
func (c *Copier) Copy(staticDir, outDir string) ([]string, error) {
	var copied []string

	for path, err := range c.walker.WalkFiles(staticDir, nil) {
		if err != nil {
			return nil, &domain.CopyError{Path: path, Cause: err}
		}

		rel, err := filepath.Rel(staticDir, path)
		if err != nil {
			return nil, &domain.CopyError{Path: path, Cause: err}
		}

		if err := copyFile(path, filepath.Join(outDir, rel)); err != nil {
			return nil, &domain.CopyError{Path: path, Cause: err}
		}
		copied = append(copied, filepath.ToSlash(rel))
	}

	return copied, nil
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // Path comes from walking the static directory
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Read-only file

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm) //nolint:gosec // Destination is inside the output tree
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
