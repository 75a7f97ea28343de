package ports

import (
	"context"

	"go.trai.ch/brew/internal/core/domain"
)

// ModuleBuilder compiles a module crate into a binary artifact and its loader script.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type ModuleBuilder interface {
	// Build compiles crateDir. The returned loader references outName+".wasm".
	// When outDir is not empty the binary and loader are also written there.
	// Failures are reported as a *domain.CompileError.
	Build(ctx context.Context, crateDir, outName, outDir string, mode domain.Mode) (*domain.ModuleArtifact, error)
}
