package ports

import "go.trai.ch/brew/internal/core/domain"

// BuildInfoStore defines the interface for storing and retrieving build records.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildInfoStore interface {
	// Get retrieves the build record for a given target of the project at root.
	// Returns nil, nil if not found.
	Get(root, target string) (*domain.BuildInfo, error)
	// Put stores the build record for the project at root.
	Put(root string, info domain.BuildInfo) error
}
