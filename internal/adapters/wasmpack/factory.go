package wasmpack

import (
	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
)

// Factory builds module builders for a configured compiler.
type Factory struct {
	executor ports.Executor
	logger   ports.Logger
}

// NewFactory creates a new Factory.
func NewFactory(executor ports.Executor, logger ports.Logger) *Factory {
	return &Factory{executor: executor, logger: logger}
}

// New returns a Builder for cfg writing intermediate output under pkgRoot.
func (f *Factory) New(cfg domain.CompilerConfig, pkgRoot string) *Builder {
	return NewBuilder(f.executor, f.logger, cfg, pkgRoot)
}
