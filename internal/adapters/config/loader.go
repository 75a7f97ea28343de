// Package config provides the configuration loader for brew.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only accepted value of the version field.
const SupportedVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path. A directory is searched upwards for brew.yaml.
func (l *Loader) Load(path string) (*domain.Config, error) {
	configPath, err := l.findConfiguration(path)
	if err != nil {
		return nil, err
	}

	var brewfile Brewfile
	if err := readAndUnmarshalYAML(configPath, &brewfile); err != nil {
		return nil, err
	}

	cfg, err := l.toDomain(configPath, &brewfile)
	if err != nil {
		return nil, zerr.With(err, "config", configPath)
	}

	l.Logger.Debug(fmt.Sprintf("loaded %s with %d target(s)", configPath, len(cfg.Targets)))
	return cfg, nil
}

func (l *Loader) findConfiguration(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", abs)
	}
	if !info.IsDir() {
		return abs, nil
	}

	for currentDir := abs; ; {
		candidate := filepath.Join(currentDir, domain.BrewFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", abs)
}

func readAndUnmarshalYAML(path string, out any) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return nil
}

func (l *Loader) toDomain(configPath string, bf *Brewfile) (*domain.Config, error) {
	if bf.Version != SupportedVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedConfigVersion, "check version"), "version", bf.Version)
	}
	if len(bf.Targets) == 0 {
		return nil, zerr.Wrap(domain.ErrNoTargets, "check targets")
	}

	root := filepath.Dir(configPath)
	cfg := &domain.Config{
		Root: root,
		Path: configPath,
		Sass: bf.Sass,
		Compiler: domain.CompilerConfig{
			Command: bf.Compiler.Command,
			Args:    bf.Compiler.Args,
		},
	}

	names := make([]string, 0, len(bf.Targets))
	for name := range bf.Targets {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		target, err := toTarget(root, name, bf.Targets[name])
		if err != nil {
			return nil, err
		}
		cfg.Targets = append(cfg.Targets, target)
	}

	return cfg, nil
}

func toTarget(root, name string, dto TargetDTO) (domain.BuildTarget, error) {
	if err := domain.ValidateName(name); err != nil {
		return domain.BuildTarget{}, err
	}

	fields := []struct {
		name  string
		value string
	}{
		{"script", dto.Script},
		{"style", dto.Style},
		{"crate", dto.Crate},
		{"static", dto.Static},
		{"out", dto.Out},
	}
	for _, f := range fields {
		if f.value == "" {
			err := zerr.With(zerr.Wrap(domain.ErrMissingTargetField, "check target"), "target", name)
			return domain.BuildTarget{}, zerr.With(err, "field", f.name)
		}
	}

	return domain.BuildTarget{
		Name:   name,
		Script: resolvePath(root, dto.Script),
		Style:  resolvePath(root, dto.Style),
		Crate:  resolvePath(root, dto.Crate),
		Static: resolvePath(root, dto.Static),
		Out:    resolvePath(root, dto.Out),
		Mode:   domain.ModeProduction,
	}, nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
