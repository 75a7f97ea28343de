package style

import "go.trai.ch/brew/internal/core/ports"

// Factory builds pipelines for a configured Sass compiler.
type Factory struct {
	executor ports.Executor
	logger   ports.Logger
}

// NewFactory creates a new Factory.
func NewFactory(executor ports.Executor, logger ports.Logger) *Factory {
	return &Factory{executor: executor, logger: logger}
}

// New returns the standard compile, normalize, extract pipeline.
func (f *Factory) New(sassCommand string) *Pipeline {
	return NewPipeline(f.logger,
		NewCompileStage(f.executor, sassCommand),
		NewNormalizeStage(f.logger, true),
		ExtractStage{},
	)
}
