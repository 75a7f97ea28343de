package style

import (
	"context"
	"strings"

	"go.trai.ch/brew/internal/core/ports"
)

// ExtractStage produces the final stylesheet text: LF line endings, no trailing
// whitespace and exactly one trailing newline. An empty stylesheet stays empty.
type ExtractStage struct{}

var _ ports.StyleStage = ExtractStage{}

// Name implements ports.StyleStage.
func (ExtractStage) Name() string {
	return StageExtract
}

// Apply implements ports.StyleStage.
func (ExtractStage) Apply(_ context.Context, src ports.StyleSource) (string, error) {
	text := strings.ReplaceAll(src.Text, "\r\n", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	text = strings.TrimRight(strings.Join(lines, "\n"), "\n")

	if text == "" {
		return "", nil
	}
	return text + "\n", nil
}
