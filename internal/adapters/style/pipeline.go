// Package style implements the stylesheet transform pipeline.
//
// A pipeline is a fixed, ordered chain of stages. Each stage receives the text
// produced by the previous one; the first failure stops the chain and no
// partial CSS is returned.
package style

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
)

// Stage names.
const (
	StageRead      = "read"
	StageCompile   = "compile"
	StageNormalize = "normalize"
	StageExtract   = "extract"
)

var _ ports.StyleTransformer = (*Pipeline)(nil)

// Pipeline implements ports.StyleTransformer.
type Pipeline struct {
	logger ports.Logger
	stages []ports.StyleStage
}

// NewPipeline creates a pipeline running the given stages in order.
func NewPipeline(logger ports.Logger, stages ...ports.StyleStage) *Pipeline {
	return &Pipeline{
		logger: logger,
		stages: stages,
	}
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.Name())
	}
	return names
}

// Transform reads the style entry and runs it through every stage.
// Failures are returned as *domain.StyleCompileError.
func (p *Pipeline) Transform(ctx context.Context, stylePath string) (string, error) {
	data, err := os.ReadFile(stylePath) //nolint:gosec // Path was validated by the resolver
	if err != nil {
		return "", &domain.StyleCompileError{
			Stage:    StageRead,
			Message:  err.Error(),
			Location: domain.SourceLocation{File: stylePath},
		}
	}

	text := string(data)
	for _, stage := range p.stages {
		out, err := stage.Apply(ctx, ports.StyleSource{Path: stylePath, Text: text})
		if err != nil {
			return "", asStyleError(err, stage.Name(), stylePath)
		}
		p.logger.Debug(fmt.Sprintf("style stage %s: %s (%d -> %d bytes)", stage.Name(), stylePath, len(text), len(out)))
		text = out
	}

	return text, nil
}

func asStyleError(err error, stage, path string) *domain.StyleCompileError {
	var styleErr *domain.StyleCompileError
	if errors.As(err, &styleErr) {
		if styleErr.Stage == "" {
			styleErr.Stage = stage
		}
		return styleErr
	}
	return &domain.StyleCompileError{
		Stage:    stage,
		Message:  err.Error(),
		Location: domain.SourceLocation{File: path},
	}
}
