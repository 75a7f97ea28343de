package domain

import "path/filepath"

const (
	// BrewDirName is the name of the internal workspace directory.
	BrewDirName = ".brew"

	// StoreDirName is the name of the build record store directory.
	StoreDirName = "store"

	// PkgDirName is the name of the intermediate compiler output directory.
	PkgDirName = "pkg"

	// BrewFileName is the name of the project configuration file.
	BrewFileName = "brew.yaml"

	// StagingPattern is the os.MkdirTemp pattern suffix for staging directories.
	StagingPattern = ".brew-staging-*"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// IgnoredDirNames are directory name globs never treated as target sources:
// version control metadata, package and compiler output, the brew workspace
// and staging directories of builds in progress.
var IgnoredDirNames = []string{".git", ".jj", "node_modules", "target", PkgDirName, BrewDirName, "*" + StagingPattern}

// IsIgnoredDir reports whether a directory name matches IgnoredDirNames.
func IsIgnoredDir(name string) bool {
	for _, pattern := range IgnoredDirNames {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// DefaultBrewPath returns the default root directory for brew metadata.
func DefaultBrewPath() string {
	return BrewDirName
}

// DefaultStorePath returns the default path for the build record store.
// It joins .brew and store.
func DefaultStorePath() string {
	return filepath.Join(BrewDirName, StoreDirName)
}

// DefaultPkgPath returns the root of the intermediate compiler output.
// It joins .brew and pkg; each target gets a directory named after it below.
func DefaultPkgPath() string {
	return filepath.Join(BrewDirName, PkgDirName)
}
