package fs_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brew/internal/adapters/fs"
	"go.trai.ch/brew/internal/core/domain"
)

func newProject(t *testing.T) (string, domain.BuildTarget) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "bootstrap.js", "import('./barista.js');\n")
	writeFile(t, root, "barista-web/sass/index.scss", "$c: red;\nbody { color: $c; }\n")
	writeFile(t, root, "barista-web/Cargo.toml", "[package]\nname = \"barista-web\"\n")
	writeFile(t, root, "barista-web/src/lib.rs", "")
	writeFile(t, root, "barista-web/static/index.html", "<html></html>")

	return root, domain.BuildTarget{
		Name:   "barista",
		Script: filepath.Join(root, "bootstrap.js"),
		Style:  filepath.Join(root, "barista-web/sass/index.scss"),
		Crate:  filepath.Join(root, "barista-web"),
		Static: filepath.Join(root, "barista-web/static"),
		Out:    filepath.Join(root, "build/dist"),
		Mode:   domain.ModeProduction,
	}
}

func TestResolver_Resolve(t *testing.T) {
	_, target := newProject(t)

	inputs, err := fs.NewResolver().Resolve(target)
	require.NoError(t, err)

	assert.Equal(t, target.Script, inputs.Script)
	assert.Equal(t, target.Style, inputs.Style)
	assert.Equal(t, target.Crate, inputs.Crate)
	assert.Equal(t, target.Static, inputs.Static)
}

func TestResolver_Resolve_Missing(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.BuildTarget, string)
		kind   string
	}{
		{
			name:   "script missing",
			mutate: func(tg *domain.BuildTarget, root string) { tg.Script = filepath.Join(root, "nope.js") },
			kind:   fs.KindScript,
		},
		{
			name:   "style is a directory",
			mutate: func(tg *domain.BuildTarget, root string) { tg.Style = filepath.Join(root, "barista-web/sass") },
			kind:   fs.KindStyle,
		},
		{
			name:   "crate is a file",
			mutate: func(tg *domain.BuildTarget, root string) { tg.Crate = filepath.Join(root, "bootstrap.js") },
			kind:   fs.KindCrate,
		},
		{
			name:   "static missing",
			mutate: func(tg *domain.BuildTarget, root string) { tg.Static = filepath.Join(root, "static") },
			kind:   fs.KindStatic,
		},
		{
			name:   "script checked first",
			mutate: func(tg *domain.BuildTarget, _ string) { tg.Script = ""; tg.Static = "" },
			kind:   fs.KindScript,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, target := newProject(t)
			tt.mutate(&target, root)

			_, err := fs.NewResolver().Resolve(target)
			require.Error(t, err)

			var missing *domain.MissingInputError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.kind, missing.Kind)
			assert.True(t, errors.Is(err, domain.ErrMissingInput))
		})
	}
}
