package ports

import "go.trai.ch/brew/internal/core/domain"

// Hasher defines the interface for computing content hashes.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash computes the hash of a single file's content.
	ComputeFileHash(path string) (uint64, error)
	// ComputeInputHash computes one hash over the target definition and every source file it reads.
	ComputeInputHash(target domain.BuildTarget, inputs domain.ResolvedInputs) (string, error)
	// ComputeOutputHash computes one hash over the given files relative to root.
	ComputeOutputHash(files []string, root string) (string, error)
}
