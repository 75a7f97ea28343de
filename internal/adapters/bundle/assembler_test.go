package bundle_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brew/internal/adapters/bundle"
	"go.trai.ch/brew/internal/adapters/fs"
	"go.trai.ch/brew/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestAssembler_Assemble(t *testing.T) {
	tmp := t.TempDir()
	entry := filepath.Join(tmp, "bootstrap.js")
	writeFile(t, entry, "__brew.init(__brew.wasm);\n")

	module := &domain.ModuleArtifact{
		Binary:     []byte("\x00asm\x01"),
		Loader:     []byte("async function __wbg_init(i) { fetch(new URL('barista.wasm', import.meta.url)); }"),
		BinaryName: "barista.wasm",
	}

	outDir := filepath.Join(tmp, "dist")
	writeFile(t, filepath.Join(outDir, "keep.txt"), "keep")

	a := bundle.NewAssembler(fs.NewWalker())
	files, err := a.Assemble(entry, module, "body {\n  color: red;\n}\n", outDir, "barista")
	require.NoError(t, err)
	assert.Equal(t, []string{"barista.js", "barista.wasm", "barista.css"}, files)

	script := readFile(t, filepath.Join(outDir, "barista.js"))
	want := "/* brew bundle: barista */\n" +
		string(module.Loader) + "\n" +
		"const __brew = { name: \"barista\", wasm: new URL(\"barista.wasm\", import.meta.url), init: __wbg_init };\n" +
		"__brew.init(__brew.wasm);\n"
	assert.Equal(t, want, script)
	assert.True(t, strings.HasPrefix(script, bundle.Banner("barista")))

	assert.Equal(t, "\x00asm\x01", readFile(t, filepath.Join(outDir, "barista.wasm")))
	assert.Equal(t, "body {\n  color: red;\n}\n", readFile(t, filepath.Join(outDir, "barista.css")))
	assert.Equal(t, "keep", readFile(t, filepath.Join(outDir, "keep.txt")))
}

func TestAssembler_Assemble_Deterministic(t *testing.T) {
	tmp := t.TempDir()
	entry := filepath.Join(tmp, "bootstrap.js")
	writeFile(t, entry, "main();\n")
	module := &domain.ModuleArtifact{Binary: []byte("bin"), Loader: []byte("mineweb.wasm\n"), BinaryName: "mineweb.wasm"}

	a := bundle.NewAssembler(fs.NewWalker())
	dirA, dirB := filepath.Join(tmp, "a"), filepath.Join(tmp, "b")
	_, err := a.Assemble(entry, module, "", dirA, "mineweb")
	require.NoError(t, err)
	_, err = a.Assemble(entry, module, "", dirB, "mineweb")
	require.NoError(t, err)

	for _, name := range []string{"mineweb.js", "mineweb.wasm", "mineweb.css"} {
		assert.Equal(t, readFile(t, filepath.Join(dirA, name)), readFile(t, filepath.Join(dirB, name)), name)
	}
	assert.Empty(t, readFile(t, filepath.Join(dirA, "mineweb.css")))
}

func TestAssembler_Assemble_MissingEntry(t *testing.T) {
	a := bundle.NewAssembler(fs.NewWalker())
	_, err := a.Assemble(filepath.Join(t.TempDir(), "missing.js"), &domain.ModuleArtifact{}, "", t.TempDir(), "x")
	require.Error(t, err)
}

func TestAssembler_Promote(t *testing.T) {
	tmp := t.TempDir()
	staging := filepath.Join(tmp, ".dist.brew-staging-1")
	outDir := filepath.Join(tmp, "dist")

	writeFile(t, filepath.Join(staging, "barista.js"), "new js")
	writeFile(t, filepath.Join(staging, "barista.wasm"), "new wasm")
	writeFile(t, filepath.Join(staging, "img", "logo.png"), "png")

	writeFile(t, filepath.Join(outDir, "barista.js"), "old js")
	writeFile(t, filepath.Join(outDir, "other.txt"), "untouched")

	a := bundle.NewAssembler(fs.NewWalker())
	require.NoError(t, a.Promote(staging, outDir))

	assert.Equal(t, "new js", readFile(t, filepath.Join(outDir, "barista.js")))
	assert.Equal(t, "new wasm", readFile(t, filepath.Join(outDir, "barista.wasm")))
	assert.Equal(t, "png", readFile(t, filepath.Join(outDir, "img", "logo.png")))
	assert.Equal(t, "untouched", readFile(t, filepath.Join(outDir, "other.txt")))
	assert.NoDirExists(t, staging)
}

func TestAssembler_Promote_MissingStaging(t *testing.T) {
	a := bundle.NewAssembler(fs.NewWalker())
	err := a.Promote(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.Error(t, err)
}
