package style

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
)

// sassLocation matches the trace line of a Sass error, e.g. "  - 2:18  root stylesheet".
var sassLocation = regexp.MustCompile(`(\d+):(\d+)\s+root stylesheet`)

// CompileStage compiles Sass sources to CSS with an external Sass compiler.
// Plain .css sources pass through unchanged.
type CompileStage struct {
	executor ports.Executor
	command  string
}

var _ ports.StyleStage = (*CompileStage)(nil)

// NewCompileStage creates a compile stage running command (domain.DefaultSassCommand when empty).
func NewCompileStage(executor ports.Executor, command string) *CompileStage {
	if command == "" {
		command = domain.DefaultSassCommand
	}
	return &CompileStage{executor: executor, command: command}
}

// Name implements ports.StyleStage.
func (s *CompileStage) Name() string {
	return StageCompile
}

// Apply implements ports.StyleStage.
func (s *CompileStage) Apply(ctx context.Context, src ports.StyleSource) (string, error) {
	ext := strings.ToLower(filepath.Ext(src.Path))
	if ext != ".scss" && ext != ".sass" {
		return src.Text, nil
	}

	args := []string{"--stdin", "--no-source-map", "--load-path=" + filepath.Dir(src.Path)}
	if ext == ".sass" {
		args = append(args, "--indented")
	}

	var stdout, stderr bytes.Buffer
	err := s.executor.Execute(ctx, &domain.Command{
		Name:   s.command,
		Args:   args,
		Dir:    filepath.Dir(src.Path),
		Stdin:  strings.NewReader(src.Text),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		return "", sassError(err, stderr.String(), src.Path)
	}

	return stdout.String(), nil
}

// sassError converts a failed Sass run into a StyleCompileError.
func sassError(err error, stderr, path string) *domain.StyleCompileError {
	var procErr *domain.ProcessError
	if stderr == "" && errors.As(err, &procErr) {
		stderr = procErr.Stderr
	}

	styleErr := &domain.StyleCompileError{
		Stage:    StageCompile,
		Message:  err.Error(),
		Location: domain.SourceLocation{File: path},
	}

	for _, line := range strings.Split(stderr, "\n") {
		if msg, ok := strings.CutPrefix(strings.TrimSpace(line), "Error: "); ok {
			styleErr.Message = msg
			break
		}
	}

	if m := sassLocation.FindStringSubmatch(stderr); m != nil {
		styleErr.Location.Line, _ = strconv.Atoi(m[1])
		styleErr.Location.Column, _ = strconv.Atoi(m[2])
	}

	return styleErr
}
