// Package wasmpack implements the compiled module builder on top of wasm-pack.
package wasmpack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
	"go.trai.ch/zerr"
)

// LoaderSuffix is appended to the output name when the loader is written on its own.
const LoaderSuffix = ".loader.js"

var _ ports.ModuleBuilder = (*Builder)(nil)

// Builder implements ports.ModuleBuilder by running an external compiler
// into an intermediate directory and collecting its artifacts.
type Builder struct {
	executor ports.Executor
	logger   ports.Logger
	command  string
	args     []string
	pkgRoot  string
}

// NewBuilder creates a Builder. Intermediate output goes to pkgRoot/<outName>.
func NewBuilder(executor ports.Executor, logger ports.Logger, cfg domain.CompilerConfig, pkgRoot string) *Builder {
	command := cfg.Command
	if command == "" {
		command = domain.DefaultCompilerCommand
	}
	return &Builder{
		executor: executor,
		logger:   logger,
		command:  command,
		args:     cfg.Args,
		pkgRoot:  pkgRoot,
	}
}

// Build compiles crateDir and returns the binary and a loader referencing outName.wasm.
func (b *Builder) Build(
	ctx context.Context, crateDir, outName, outDir string, mode domain.Mode,
) (*domain.ModuleArtifact, error) {
	pkgDir, err := filepath.Abs(filepath.Join(b.pkgRoot, outName))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve intermediate directory"), "path", pkgDir)
	}
	if err := os.RemoveAll(pkgDir); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to clear intermediate directory"), "path", pkgDir)
	}
	if err := os.MkdirAll(pkgDir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create intermediate directory"), "path", pkgDir)
	}

	cmd := &domain.Command{
		Name: b.command,
		Args: b.buildArgs(crateDir, pkgDir, outName, mode),
		Dir:  crateDir,
	}
	b.logger.Debug(fmt.Sprintf("running %s %v", cmd.Name, cmd.Args))

	if err := b.executor.Execute(ctx, cmd); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var procErr *domain.ProcessError
		if errors.As(err, &procErr) {
			return nil, &domain.CompileError{ExitCode: procErr.ExitCode, StderrSummary: procErr.Stderr}
		}
		return nil, &domain.CompileError{ExitCode: -1, StderrSummary: err.Error()}
	}

	artifact, err := collect(pkgDir, outName)
	if err != nil {
		return nil, err
	}

	if outDir != "" {
		if err := write(artifact, outDir, outName); err != nil {
			return nil, err
		}
	}
	return artifact, nil
}

func (b *Builder) buildArgs(crateDir, pkgDir, outName string, mode domain.Mode) []string {
	args := []string{
		"build", crateDir,
		"--target", "web",
		"--no-typescript",
		"--out-dir", pkgDir,
		"--out-name", outName,
	}
	if mode.Watching() {
		args = append(args, "--dev")
	} else {
		args = append(args, "--release")
	}
	return append(args, b.args...)
}

// collect reads the compiler output and rewrites the loader to reference outName.wasm.
func collect(pkgDir, outName string) (*domain.ModuleArtifact, error) {
	binaryName := outName + ".wasm"

	var (
		binary       []byte
		producedName string
	)
	for _, candidate := range []string{outName + "_bg.wasm", binaryName} {
		data, err := os.ReadFile(filepath.Join(pkgDir, candidate)) //nolint:gosec // Compiler output directory
		if err == nil {
			binary, producedName = data, candidate
			break
		}
	}
	if producedName == "" {
		return nil, &domain.CompileError{StderrSummary: "compiler produced no artifact: " + binaryName}
	}

	loaderName := outName + ".js"
	loader, err := os.ReadFile(filepath.Join(pkgDir, loaderName)) //nolint:gosec // Compiler output directory
	if err != nil {
		return nil, &domain.CompileError{StderrSummary: "compiler produced no artifact: " + loaderName}
	}

	if producedName != binaryName {
		loader = bytes.ReplaceAll(loader, []byte(producedName), []byte(binaryName))
	}
	if !bytes.Contains(loader, []byte(binaryName)) {
		return nil, &domain.CompileError{StderrSummary: "loader does not reference " + binaryName}
	}

	return &domain.ModuleArtifact{
		Binary:     binary,
		Loader:     loader,
		BinaryName: binaryName,
	}, nil
}

func write(artifact *domain.ModuleArtifact, outDir, outName string) error {
	if err := os.MkdirAll(outDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", outDir)
	}
	files := map[string][]byte{
		artifact.BinaryName:   artifact.Binary,
		outName + LoaderSuffix: artifact.Loader,
	}
	for name, data := range files {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write module artifact"), "path", path)
		}
	}
	return nil
}
