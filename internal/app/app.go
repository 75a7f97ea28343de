// Package app implements the application layer for brew.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/brew/internal/adapters/server"
	"go.trai.ch/brew/internal/adapters/style"
	"go.trai.ch/brew/internal/adapters/wasmpack"
	"go.trai.ch/brew/internal/adapters/watcher"
	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
	"go.trai.ch/brew/internal/engine/orchestrator"
	"go.trai.ch/brew/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Dependencies are the services the application is assembled from.
type Dependencies struct {
	ConfigLoader ports.ConfigLoader
	Logger       ports.Logger
	Resolver     ports.AssetResolver
	Copier       ports.StaticCopier
	Assembler    ports.BundleAssembler
	Hasher       ports.Hasher
	Store        ports.BuildInfoStore
	Telemetry    ports.Telemetry
	Scheduler    *scheduler.Scheduler
	Styles       *style.Factory
	Modules      *wasmpack.Factory
	Watchers     *watcher.Factory
	Server       *server.Server
}

// App represents the main application logic.
type App struct {
	deps Dependencies
}

// New creates a new App instance.
func New(deps Dependencies) *App {
	return &App{deps: deps}
}

// BuildOptions configure a build run.
type BuildOptions struct {
	// ConfigPath is the configuration file or a directory to search upwards from.
	ConfigPath string
	// Targets selects targets by name. Empty means every target.
	Targets []string
	// Mode selects a one-shot production build or a watch session.
	Mode domain.Mode
	// NoCache rebuilds even when the previous bundle is up to date.
	NoCache bool
	// Observer, when set, receives the state transitions of every target.
	Observer orchestrator.Observer
}

// SetVerbose switches debug logging on or off when the logger supports it.
func (a *App) SetVerbose(verbose bool) {
	if l, ok := a.deps.Logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(verbose)
	}
}

// Build builds the selected targets concurrently. In production mode it returns
// an error matching domain.ErrBuildFailed when any target failed. In development
// mode it watches every target until ctx is cancelled.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	cfg, targets, err := a.load(opts.ConfigPath, opts.Targets)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.deps.Telemetry.Close(); err != nil {
			a.deps.Logger.Debug(fmt.Sprintf("telemetry: %v", err))
		}
	}()

	orchestrators := make([]*orchestrator.Orchestrator, 0, len(targets))
	for _, target := range targets {
		if opts.Mode != "" {
			target.Mode = opts.Mode
		}
		orchestrators = append(orchestrators, a.newOrchestrator(cfg, target, opts))
	}

	if opts.Mode.Watching() {
		return a.watch(ctx, orchestrators)
	}
	return a.buildOnce(ctx, orchestrators)
}

func (a *App) buildOnce(ctx context.Context, orchestrators []*orchestrator.Orchestrator) error {
	var (
		mu     sync.Mutex
		failed []string
		g      errgroup.Group
	)

	for _, o := range orchestrators {
		g.Go(func() error {
			if _, err := o.RunOnce(ctx); err != nil {
				mu.Lock()
				failed = append(failed, o.Target().Name)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(failed) > 0 {
		slices.Sort(failed)
		return zerr.With(zerr.Wrap(domain.ErrBuildFailed, "build"), "targets", strings.Join(failed, ","))
	}
	return nil
}

func (a *App) watch(ctx context.Context, orchestrators []*orchestrator.Orchestrator) error {
	sessions := make([]orchestrator.WatchSession, 0, len(orchestrators))
	for range orchestrators {
		w, err := a.deps.Watchers.NewWatcher()
		if err != nil {
			for _, s := range sessions {
				_ = s.Watcher.Stop()
			}
			return zerr.Wrap(err, "failed to create watcher")
		}
		sessions = append(sessions, orchestrator.WatchSession{
			Watcher:      w,
			Tracker:      a.deps.Watchers.NewState(),
			NewDebouncer: a.deps.Watchers.NewDebouncer,
		})
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, o := range orchestrators {
		g.Go(func() error {
			return o.Watch(ctx, sessions[i])
		})
	}

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (a *App) newOrchestrator(cfg *domain.Config, target domain.BuildTarget, opts BuildOptions) *orchestrator.Orchestrator {
	pkgRoot := filepath.Join(cfg.Root, domain.DefaultPkgPath())

	return orchestrator.New(target, orchestrator.Dependencies{
		Resolver:  a.deps.Resolver,
		Style:     a.deps.Styles.New(cfg.Sass),
		Module:    a.deps.Modules.New(cfg.Compiler, pkgRoot),
		Copier:    a.deps.Copier,
		Assembler: a.deps.Assembler,
		Hasher:    a.deps.Hasher,
		Store:     a.deps.Store,
		Scheduler: a.deps.Scheduler,
		Logger:    a.deps.Logger,
	}, orchestrator.Options{
		Root:     cfg.Root,
		NoCache:  opts.NoCache,
		Observer: opts.Observer,
	})
}

// Targets returns every configured target sorted by name.
func (a *App) Targets(configPath string) ([]domain.BuildTarget, error) {
	_, targets, err := a.load(configPath, nil)
	return targets, err
}

// ServeOptions configure the preview server.
type ServeOptions struct {
	ConfigPath string
	Target     string
	Addr       string
}

// Serve serves the output directory of one target until ctx is cancelled.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	_, targets, err := a.load(opts.ConfigPath, []string{opts.Target})
	if err != nil {
		return err
	}
	out := targets[0].Out
	if _, err := os.Stat(out); err != nil {
		return zerr.With(zerr.Wrap(err, "output directory not built"), "path", out)
	}
	return a.deps.Server.Serve(ctx, opts.Addr, out, nil)
}

// Clean removes the brew workspace: build records and intermediate compiler output.
// Output directories are left alone.
func (a *App) Clean(configPath string) error {
	cfg, err := a.deps.ConfigLoader.Load(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	dir := filepath.Join(cfg.Root, domain.DefaultBrewPath())
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove workspace"), "path", dir)
	}
	a.deps.Logger.Info(fmt.Sprintf("removed %s", dir))
	return nil
}

func (a *App) load(configPath string, names []string) (*domain.Config, []domain.BuildTarget, error) {
	cfg, err := a.deps.ConfigLoader.Load(configPath)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}
	targets, err := cfg.Select(names)
	if err != nil {
		return nil, nil, err
	}
	return cfg, targets, nil
}
