package domain

import "go.trai.ch/zerr"

// Artifact keys exchanged between the tasks of a target graph.
const (
	ArtifactCSS    = "artifact:css"
	ArtifactModule = "artifact:module"
	ArtifactStatic = "artifact:static"
	ArtifactBundle = "artifact:bundle"
)

// Artifacts maps an artifact key to the value a task produced for it.
type Artifacts map[string]any

// ArtifactAs returns the artifact stored under key as a T.
func ArtifactAs[T any](a Artifacts, key string) (T, error) {
	var zero T
	v, ok := a[key]
	if !ok {
		return zero, zerr.With(zerr.Wrap(ErrMissingOutput, "lookup artifact"), "artifact", key)
	}
	t, ok := v.(T)
	if !ok {
		return zero, zerr.With(zerr.Wrap(ErrArtifactType, "lookup artifact"), "artifact", key)
	}
	return t, nil
}

// ModuleArtifact is the output of the compiled module builder.
// Loader already references BinaryName, so it can be emitted verbatim.
type ModuleArtifact struct {
	Binary     []byte
	Loader     []byte
	BinaryName string
}

// StaticTree describes the files copied from the static directory, relative to the output root.
type StaticTree struct {
	Files []string
}
