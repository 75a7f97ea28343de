// Package bundle writes the owned output files of a target and promotes
// staged builds into the output directory.
package bundle

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/brew/internal/adapters/fs"
	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BundleAssembler = (*Assembler)(nil)

// Assembler implements ports.BundleAssembler.
type Assembler struct {
	walker *fs.Walker
}

// NewAssembler creates a new Assembler.
func NewAssembler(walker *fs.Walker) *Assembler {
	return &Assembler{walker: walker}
}

// Banner returns the first line of the script bundle.
func Banner(outName string) string {
	return fmt.Sprintf("/* brew bundle: %s */\n", outName)
}

// WiringBlock returns the statement that exposes the module to the entry script.
func WiringBlock(outName string) string {
	return fmt.Sprintf(
		"const __brew = { name: %q, wasm: new URL(%q, import.meta.url), init: __wbg_init };\n",
		outName, outName+".wasm",
	)
}

// Script concatenates the bundle script: banner, loader, wiring block, entry script.
func Script(outName string, loader, entry []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(Banner(outName))
	buf.Write(loader)
	if len(loader) > 0 && loader[len(loader)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(WiringBlock(outName))
	buf.Write(entry)
	return buf.Bytes()
}

// Assemble writes <outName>.js, <outName>.wasm and <outName>.css into outDir.
// Nothing else in outDir is touched.
func (a *Assembler) Assemble(
	entryScript string, module *domain.ModuleArtifact, css, outDir, outName string,
) ([]string, error) {
	entry, err := os.ReadFile(entryScript) //nolint:gosec // Path was validated by the resolver
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read entry script"), "path", entryScript)
	}

	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", outDir)
	}

	files := []struct {
		name string
		data []byte
	}{
		{outName + ".js", Script(outName, module.Loader, entry)},
		{outName + ".wasm", module.Binary},
		{outName + ".css", []byte(css)},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(outDir, f.name)
		if err := os.WriteFile(path, f.data, domain.FilePerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to write bundle file"), "path", path)
		}
		written = append(written, f.name)
	}

	return written, nil
}
