package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// crateIgnores are build output and tooling directories inside a crate.
var crateIgnores = domain.IgnoredDirNames

// styleExtensions are the stylesheet sources that may be imported by a style entry.
var styleExtensions = []string{".css", ".scss", ".sass"}

// Hasher provides hashing functionality for targets and files.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeInputHash computes a single hash representing the target definition and
// every source file the build reads: both entries, the stylesheets next to the
// style entry, the crate sources and the static tree. The output directory is excluded.
func (h *Hasher) ComputeInputHash(target domain.BuildTarget, inputs domain.ResolvedInputs) (string, error) {
	hasher := xxhash.New()

	h.hashTargetDefinition(target, hasher)

	out, err := filepath.Abs(target.Out)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve output directory"), "path", target.Out)
	}

	if err := h.hashFile(inputs.Script, hasher); err != nil {
		return "", err
	}
	if err := h.hashFile(inputs.Style, hasher); err != nil {
		return "", err
	}

	styleDir := filepath.Dir(inputs.Style)
	err = h.hashTree(styleDir, append([]string{out}, crateIgnores...), hasher, func(path string) bool {
		return path != inputs.Style && slices.Contains(styleExtensions, strings.ToLower(filepath.Ext(path)))
	})
	if err != nil {
		return "", err
	}

	if err := h.hashTree(inputs.Crate, append([]string{out}, crateIgnores...), hasher, nil); err != nil {
		return "", err
	}
	if err := h.hashTree(inputs.Static, []string{out}, hasher, nil); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashTargetDefinition hashes the target's name, mode and paths.
func (h *Hasher) hashTargetDefinition(target domain.BuildTarget, hasher *xxhash.Digest) {
	for _, field := range []string{
		target.Name, string(target.Mode), target.Script, target.Style, target.Crate, target.Static, target.Out,
	} {
		_, _ = hasher.WriteString(field)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0}) // Section separator
}

// hashTree hashes every file under root accepted by keep (all files when keep is nil).
func (h *Hasher) hashTree(root string, ignores []string, hasher io.Writer, keep func(string) bool) error {
	for path, err := range h.walker.WalkFiles(root, ignores) {
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to walk input directory"), "path", path)
		}
		if keep != nil && !keep(path) {
			continue
		}
		if err := h.hashFile(path, hasher); err != nil {
			return err
		}
	}
	_, _ = hasher.Write([]byte{0})
	return nil
}

func (h *Hasher) hashFile(path string, mainHasher io.Writer) error {
	_, _ = mainHasher.Write([]byte(path))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}

// ComputeOutputHash computes the hash of the output files.
func (h *Hasher) ComputeOutputHash(outputs []string, root string) (string, error) {
	sortedOutputs := slices.Clone(outputs)
	slices.Sort(sortedOutputs)

	hasher := xxhash.New()

	for _, output := range sortedOutputs {
		path := filepath.Join(root, output)

		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return "", zerr.With(zerr.Wrap(err, "output file missing"), "path", path)
			}
			return "", zerr.With(zerr.Wrap(err, "failed to stat output file"), "path", path)
		}

		_, _ = hasher.WriteString(output)
		_, _ = hasher.Write([]byte{0})

		hash, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}

		if err := binary.Write(hasher, binary.LittleEndian, hash); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
