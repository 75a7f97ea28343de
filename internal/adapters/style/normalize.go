package style

import (
	"context"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
)

// NormalizeStage reprints CSS through esbuild without minifying it.
// In strict mode warnings reject the input as well as errors.
type NormalizeStage struct {
	logger ports.Logger
	strict bool
}

var _ ports.StyleStage = (*NormalizeStage)(nil)

// NewNormalizeStage creates a normalize stage.
func NewNormalizeStage(logger ports.Logger, strict bool) *NormalizeStage {
	return &NormalizeStage{logger: logger, strict: strict}
}

// Name implements ports.StyleStage.
func (s *NormalizeStage) Name() string {
	return StageNormalize
}

// Apply implements ports.StyleStage.
func (s *NormalizeStage) Apply(_ context.Context, src ports.StyleSource) (string, error) {
	result := api.Transform(src.Text, api.TransformOptions{
		Loader:     api.LoaderCSS,
		Sourcefile: src.Path,
		LogLevel:   api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		return "", messageError(result.Errors[0], src.Path)
	}
	if len(result.Warnings) > 0 {
		if s.strict {
			return "", messageError(result.Warnings[0], src.Path)
		}
		for _, w := range result.Warnings {
			s.logger.Warn(formatMessage(w, src.Path))
		}
	}

	return string(result.Code), nil
}

func messageError(msg api.Message, path string) *domain.StyleCompileError {
	return &domain.StyleCompileError{
		Stage:    StageNormalize,
		Message:  msg.Text,
		Location: location(msg, path),
	}
}

func formatMessage(msg api.Message, path string) string {
	return fmt.Sprintf("%s: %s", location(msg, path), strings.TrimSpace(msg.Text))
}

// location converts an esbuild location (0-based column) to a 1-based SourceLocation.
func location(msg api.Message, path string) domain.SourceLocation {
	loc := domain.SourceLocation{File: path}
	if msg.Location != nil {
		if msg.Location.File != "" {
			loc.File = msg.Location.File
		}
		loc.Line = msg.Location.Line
		loc.Column = msg.Location.Column + 1
	}
	return loc
}
