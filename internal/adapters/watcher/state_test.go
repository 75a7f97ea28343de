package watcher_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brew/internal/adapters/fs"
	"go.trai.ch/brew/internal/adapters/watcher"
	"go.trai.ch/brew/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func seededState(t *testing.T) (*watcher.State, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bootstrap.js"), "import('./pkg');\n")
	writeFile(t, filepath.Join(root, "style", "main.scss"), "body { color: red; }\n")
	writeFile(t, filepath.Join(root, "static", "img", "logo.svg"), "<svg/>")
	writeFile(t, filepath.Join(root, "static", "pkg", "vendor.js"), "export {};\n")
	writeFile(t, filepath.Join(root, "crate", "src", "lib.rs"), "pub fn start() {}\n")
	writeFile(t, filepath.Join(root, "crate", "target", "debug", "out.rlib"), "binary")
	writeFile(t, filepath.Join(root, "README.md"), "# barista\n")

	scope, err := domain.BuildTarget{
		Name:   "barista",
		Script: filepath.Join(root, "bootstrap.js"),
		Style:  filepath.Join(root, "style", "main.scss"),
		Crate:  filepath.Join(root, "crate"),
		Static: filepath.Join(root, "static"),
		Out:    filepath.Join(root, "dist"),
	}.SourceScope()
	require.NoError(t, err)

	state := watcher.NewState(fs.NewWalker())
	state.Seed(scope)
	return state, root
}

func TestState_Seed(t *testing.T) {
	state, _ := seededState(t)

	// The crate's target/ and files outside the scope are never recorded.
	assert.Equal(t, 5, state.Len())
}

func TestState_Changed_OutOfScope(t *testing.T) {
	state, root := seededState(t)
	readme := filepath.Join(root, "README.md")
	writeFile(t, readme, "# barista 2\n")
	rlib := filepath.Join(root, "crate", "target", "debug", "out.rlib")
	writeFile(t, rlib, "other binary")

	assert.Empty(t, state.Changed([]string{readme, rlib, filepath.Join(root, "crate", "target")}))
	assert.Equal(t, 5, state.Len())
}

func TestState_Changed_StaticPkgDirectory(t *testing.T) {
	state, root := seededState(t)
	vendor := filepath.Join(root, "static", "pkg", "vendor.js")
	writeFile(t, vendor, "export const v = 2;\n")

	assert.Equal(t, []string{vendor}, state.Changed([]string{filepath.Join(root, "static", "pkg")}))
}

func TestState_Changed_IgnoresTouchWithoutEdit(t *testing.T) {
	state, root := seededState(t)
	path := filepath.Join(root, "style", "main.scss")
	writeFile(t, path, "body { color: red; }\n")

	assert.Empty(t, state.Changed([]string{path}))
}

func TestState_Changed_ReportsEdit(t *testing.T) {
	state, root := seededState(t)
	path := filepath.Join(root, "style", "main.scss")
	writeFile(t, path, "body { color: blue; }\n")

	assert.Equal(t, []string{path}, state.Changed([]string{path, path}))
	assert.Empty(t, state.Changed([]string{path}))
}

func TestState_Changed_NewAndRemovedFiles(t *testing.T) {
	state, root := seededState(t)
	added := filepath.Join(root, "static", "favicon.ico")
	writeFile(t, added, "ico")
	removed := filepath.Join(root, "bootstrap.js")
	require.NoError(t, os.Remove(removed))

	assert.Equal(t, []string{removed, added}, state.Changed([]string{added, removed}))
	assert.Equal(t, 5, state.Len())
}

func TestState_Changed_UnknownRemovedPath(t *testing.T) {
	state, root := seededState(t)

	assert.Empty(t, state.Changed([]string{filepath.Join(root, "never-existed.css")}))
}

func TestState_Changed_RenamedDirectory(t *testing.T) {
	state, root := seededState(t)
	oldDir := filepath.Join(root, "static", "img")
	newDir := filepath.Join(root, "static", "pics")
	require.NoError(t, os.Rename(oldDir, newDir))

	changed := state.Changed([]string{oldDir, newDir})

	assert.Equal(t, []string{
		filepath.Join(oldDir, "logo.svg"),
		filepath.Join(newDir, "logo.svg"),
	}, changed)
}

func TestState_Changed_IgnoredDirectory(t *testing.T) {
	state, root := seededState(t)
	out := filepath.Join(root, "dist")
	writeFile(t, filepath.Join(out, "site.js"), "bundle")

	assert.Empty(t, state.Changed([]string{out}))
}
