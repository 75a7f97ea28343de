package ports

import "go.trai.ch/brew/internal/core/domain"

// BundleAssembler writes the owned output files of a target.
//
//go:generate go run go.uber.org/mock/mockgen -source=assembler.go -destination=mocks/mock_assembler.go -package=mocks
type BundleAssembler interface {
	// Assemble writes <outName>.js, <outName>.wasm and <outName>.css into outDir
	// and returns their names relative to outDir.
	Assemble(entryScript string, module *domain.ModuleArtifact, css, outDir, outName string) ([]string, error)
	// Promote moves every file staged under stagingDir into outDir and removes stagingDir.
	Promote(stagingDir, outDir string) error
}
