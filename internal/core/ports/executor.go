// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/brew/internal/core/domain"
)

// Executor defines the interface for running external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the command to completion.
	//
	// A process that cannot start or exits non-zero is reported as a
	// *domain.ProcessError carrying the exit code and the tail of stderr.
	Execute(ctx context.Context, cmd *domain.Command) error
}
