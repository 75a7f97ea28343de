package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brew/internal/core/domain"
)

func baristaScope(t *testing.T) (domain.SourceScope, string) {
	t.Helper()
	root := t.TempDir()
	scope, err := domain.BuildTarget{
		Name:   "barista",
		Script: filepath.Join(root, "bootstrap.js"),
		Style:  filepath.Join(root, "barista-web", "sass", "index.scss"),
		Crate:  filepath.Join(root, "barista-web"),
		Static: filepath.Join(root, "barista-web", "static"),
		Out:    filepath.Join(root, "dist"),
	}.SourceScope()
	require.NoError(t, err)
	return scope, root
}

func TestSourceScope_Roots(t *testing.T) {
	scope, root := baristaScope(t)

	assert.Equal(t, []string{
		filepath.Join(root, "barista-web"),
		filepath.Join(root, "barista-web", "sass"),
		filepath.Join(root, "barista-web", "sass", "index.scss"),
		filepath.Join(root, "barista-web", "static"),
		filepath.Join(root, "bootstrap.js"),
	}, scope.Roots())
	assert.Equal(t, []string{filepath.Join(root, "dist")}, scope.Excluded)
}

func TestSourceScope_Contains(t *testing.T) {
	scope, root := baristaScope(t)

	tests := []struct {
		path string
		want bool
	}{
		{"bootstrap.js", true},
		{"README.md", false},
		{"barista-web/src/lib.rs", true},
		{"barista-web/sass/_colors.scss", true},
		{"barista-web/target/debug/build.log", false},
		{"barista-web/pkg/barista.js", false},
		{"barista-web/node_modules/x/index.js", false},
		{"barista-web/static/index.html", true},
		{"barista-web/static/pkg/vendor.js", true},
		{"barista-web/static/node_modules/lib.js", true},
		{"barista-web/static/.git/HEAD", false},
		{"barista-web/static/.dist.brew-staging-7/index.html", false},
		{"dist/barista.js", false},
		{"dist", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, scope.Contains(filepath.Join(root, tt.path)))
		})
	}
}

func TestSourceScope_SkipDir(t *testing.T) {
	scope, root := baristaScope(t)

	for _, dir := range []string{"barista-web/target", "barista-web/src/pkg", "dist", "dist/assets", "docs"} {
		assert.True(t, scope.SkipDir(filepath.Join(root, dir)), dir)
	}
	for _, dir := range []string{"", "barista-web", "barista-web/src", "barista-web/static/pkg"} {
		assert.False(t, scope.SkipDir(filepath.Join(root, dir)), dir)
	}
}

func TestSourceScope_IgnoredNamesAboveTreesDoNotCount(t *testing.T) {
	root := filepath.Join(t.TempDir(), "target", "pkg")
	scope, err := domain.BuildTarget{
		Script: filepath.Join(root, "web", "index.js"),
		Style:  filepath.Join(root, "web", "style.css"),
		Crate:  filepath.Join(root, "web"),
		Static: filepath.Join(root, "web", "static"),
		Out:    filepath.Join(root, "dist"),
	}.SourceScope()
	require.NoError(t, err)

	assert.True(t, scope.Contains(filepath.Join(root, "web", "src", "lib.rs")))
	assert.False(t, scope.SkipDir(filepath.Join(root, "web")))
}
