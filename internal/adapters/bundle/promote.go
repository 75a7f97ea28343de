package bundle

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/zerr"
)

// Promote moves every file staged under stagingDir into outDir and removes stagingDir.
// Files are renamed, so stagingDir must be on the same file system as outDir.
// Top-level scripts are moved last: once a bundle script is visible, the files it loads are too.
func (a *Assembler) Promote(stagingDir, outDir string) error {
	var files, scripts []string
	for path, err := range a.walker.WalkFiles(stagingDir, nil) {
		if err != nil {
			return promoteError(err, path)
		}
		rel, err := filepath.Rel(stagingDir, path)
		if err != nil {
			return promoteError(err, path)
		}
		if filepath.Dir(rel) == "." && strings.HasSuffix(rel, ".js") {
			scripts = append(scripts, rel)
			continue
		}
		files = append(files, rel)
	}

	for _, rel := range append(files, scripts...) {
		dst := filepath.Join(outDir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
			return promoteError(err, dst)
		}
		if err := os.Rename(filepath.Join(stagingDir, rel), dst); err != nil {
			return promoteError(err, dst)
		}
	}

	if err := os.RemoveAll(stagingDir); err != nil {
		return promoteError(err, stagingDir)
	}
	return nil
}

func promoteError(err error, path string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrPromoteFailed.Error()), "path", path)
}
