package ports

import "go.trai.ch/brew/internal/core/domain"

// AssetResolver validates the source locations of a target.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type AssetResolver interface {
	// Resolve checks that every input of the target exists and returns cleaned paths.
	// A missing input is reported as a *domain.MissingInputError.
	Resolve(target domain.BuildTarget) (domain.ResolvedInputs, error)
}
