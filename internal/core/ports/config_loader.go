package ports

import "go.trai.ch/brew/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path and returns the target table.
	// When path is a directory, the nearest brew.yaml in it or its parents is used.
	// Relative target paths are resolved against the directory of the file.
	Load(path string) (*domain.Config, error)
}
