// Package orchestrator drives the build of one target through its states,
// once for production or continuously while watching the sources.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
	"go.trai.ch/brew/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// Names of the steps a failure can be attributed to. The graph tasks share the
// names of the artifacts they produce.
const (
	StepResolve = "resolve"
	StepStage   = "stage"
	StepStyle   = "style"
	StepModule  = "module"
	StepStatic  = "static"
	StepBundle  = "bundle"
	StepPromote = "promote"
)

// Event is reported to the observer on every state transition.
// Report is set for terminal states only.
type Event struct {
	Target  string
	Attempt int
	State   domain.BuildState
	Report  *domain.Report
}

// Observer receives state transitions. It is called synchronously and must not block.
type Observer func(Event)

// Dependencies are the collaborators of an Orchestrator.
type Dependencies struct {
	Resolver  ports.AssetResolver
	Style     ports.StyleTransformer
	Module    ports.ModuleBuilder
	Copier    ports.StaticCopier
	Assembler ports.BundleAssembler
	Hasher    ports.Hasher
	Store     ports.BuildInfoStore
	Scheduler *scheduler.Scheduler
	Logger    ports.Logger
}

// Options configure an Orchestrator.
type Options struct {
	// Root is the project directory holding the build record store.
	Root string
	// NoCache disables the up-to-date check of one-shot builds.
	NoCache bool
	// Observer, when set, receives every state transition.
	Observer Observer
}

// Orchestrator builds one target.
type Orchestrator struct {
	deps   Dependencies
	target domain.BuildTarget
	opts   Options

	mu      sync.Mutex
	state   domain.BuildState
	attempt int
}

// New creates an Orchestrator for target in the Idle state.
func New(target domain.BuildTarget, deps Dependencies, opts Options) *Orchestrator {
	return &Orchestrator{
		deps:   deps,
		target: target,
		opts:   opts,
		state:  domain.StateIdle,
	}
}

// State returns the current state.
func (o *Orchestrator) State() domain.BuildState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Target returns the target being built.
func (o *Orchestrator) Target() domain.BuildTarget {
	return o.target
}

// RunOnce performs a single build attempt. A failed attempt is also returned
// as an error carrying the target and the failing step.
func (o *Orchestrator) RunOnce(ctx context.Context) (domain.Report, error) {
	report := o.build(ctx, !o.opts.NoCache)
	if report.Succeeded() {
		return report, nil
	}
	err := zerr.With(zerr.Wrap(report.Err, domain.ErrBuildFailed.Error()), "target", report.Target)
	return report, zerr.With(err, "task", report.FailedTask)
}

// build runs one attempt through Resolving and Building to a terminal state.
func (o *Orchestrator) build(ctx context.Context, useCache bool) domain.Report {
	start := time.Now()
	attempt := o.nextAttempt()
	report := domain.Report{Target: o.target.Name, Attempt: attempt}

	finish := func(state domain.BuildState, step string, err error) domain.Report {
		report.State = state
		report.FailedTask = step
		report.Err = err
		report.Duration = time.Since(start)
		o.transition(attempt, state, &report)
		o.logReport(ctx, report)
		return report
	}

	o.transition(attempt, domain.StateResolving, nil)
	inputs, err := o.deps.Resolver.Resolve(o.target)
	if err != nil {
		return finish(domain.StateFailed, StepResolve, err)
	}

	inputHash, hashErr := o.deps.Hasher.ComputeInputHash(o.target, inputs)
	if hashErr != nil {
		o.deps.Logger.Warn(fmt.Sprintf("%s: build record disabled: %v", o.target.Name, hashErr))
	}

	if useCache && hashErr == nil {
		if files, ok := o.upToDate(inputHash); ok {
			report.UpToDate = true
			report.Files = files
			return finish(domain.StateSucceeded, "", nil)
		}
	}

	o.transition(attempt, domain.StateBuilding, nil)
	files, step, err := o.buildBundle(ctx, inputs, attempt)
	if err != nil {
		return finish(domain.StateFailed, step, err)
	}
	report.Files = files

	if hashErr == nil {
		o.record(inputHash, files)
	}
	return finish(domain.StateSucceeded, "", nil)
}

// buildBundle runs the task graph into a staging directory and promotes the
// result. It returns the promoted files relative to the output directory, or
// the failing step. The output directory is untouched unless promotion starts.
func (o *Orchestrator) buildBundle(ctx context.Context, inputs domain.ResolvedInputs, attempt int) ([]string, string, error) {
	staging, err := o.createStaging()
	if err != nil {
		return nil, StepStage, err
	}
	defer os.RemoveAll(staging) //nolint:errcheck // Already gone after promotion

	graph, err := o.graph(inputs, staging)
	if err != nil {
		return nil, StepStage, err
	}

	res, err := o.deps.Scheduler.Run(ctx, graph, scheduler.Options{
		Parallelism: scheduler.DefaultParallelism,
		Label:       fmt.Sprintf("%s#%d", o.target.Name, attempt),
	})
	if err != nil {
		var taskErr *domain.TaskError
		if errors.As(err, &taskErr) {
			return nil, taskErr.Task, taskErr.Err
		}
		return nil, StepBundle, err
	}

	files, err := domain.ArtifactAs[[]string](res.Artifacts, domain.ArtifactBundle)
	if err != nil {
		return nil, StepBundle, err
	}

	if err := o.deps.Assembler.Promote(staging, o.target.Out); err != nil {
		return nil, StepPromote, err
	}
	return files, "", nil
}

// createStaging creates an empty directory next to the output directory, so the
// promotion is a rename on the same file system.
func (o *Orchestrator) createStaging() (string, error) {
	out := filepath.Clean(o.target.Out)
	parent := filepath.Dir(out)
	if err := os.MkdirAll(parent, domain.DirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create output parent directory"), "path", parent)
	}
	staging, err := os.MkdirTemp(parent, "."+filepath.Base(out)+domain.StagingPattern)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create staging directory"), "path", parent)
	}
	return staging, nil
}

// graph builds the task graph of one attempt. style, module and static are
// independent; bundle consumes all three.
func (o *Orchestrator) graph(inputs domain.ResolvedInputs, staging string) (*domain.Graph, error) {
	name := o.target.Name
	mode := o.target.Mode

	tasks := []*domain.Task{
		domain.NewTask(StepStyle, []string{inputs.Style}, []string{domain.ArtifactCSS},
			func(ctx context.Context, _ domain.Artifacts) (domain.Artifacts, error) {
				css, err := o.deps.Style.Transform(ctx, inputs.Style)
				if err != nil {
					return nil, err
				}
				return domain.Artifacts{domain.ArtifactCSS: css}, nil
			}),
		domain.NewTask(StepModule, []string{inputs.Crate}, []string{domain.ArtifactModule},
			func(ctx context.Context, _ domain.Artifacts) (domain.Artifacts, error) {
				module, err := o.deps.Module.Build(ctx, inputs.Crate, name, "", mode)
				if err != nil {
					return nil, err
				}
				return domain.Artifacts{domain.ArtifactModule: module}, nil
			}),
		domain.NewTask(StepStatic, []string{inputs.Static}, []string{domain.ArtifactStatic},
			func(ctx context.Context, _ domain.Artifacts) (domain.Artifacts, error) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				files, err := o.deps.Copier.Copy(inputs.Static, staging)
				if err != nil {
					return nil, err
				}
				return domain.Artifacts{domain.ArtifactStatic: domain.StaticTree{Files: files}}, nil
			}),
		domain.NewTask(StepBundle,
			[]string{inputs.Script, domain.ArtifactCSS, domain.ArtifactModule, domain.ArtifactStatic},
			[]string{domain.ArtifactBundle},
			func(ctx context.Context, in domain.Artifacts) (domain.Artifacts, error) {
				return o.bundle(ctx, in, inputs.Script, staging)
			}),
	}

	g := domain.NewGraph()
	for _, t := range tasks {
		if err := g.AddTask(t); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (o *Orchestrator) bundle(ctx context.Context, in domain.Artifacts, script, staging string) (domain.Artifacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	css, err := domain.ArtifactAs[string](in, domain.ArtifactCSS)
	if err != nil {
		return nil, err
	}
	module, err := domain.ArtifactAs[*domain.ModuleArtifact](in, domain.ArtifactModule)
	if err != nil {
		return nil, err
	}
	tree, err := domain.ArtifactAs[domain.StaticTree](in, domain.ArtifactStatic)
	if err != nil {
		return nil, err
	}

	owned, err := o.deps.Assembler.Assemble(script, module, css, staging, o.target.Name)
	if err != nil {
		return nil, err
	}

	files := slices.Concat(tree.Files, owned)
	slices.Sort(files)
	return domain.Artifacts{domain.ArtifactBundle: slices.Compact(files)}, nil
}

// upToDate reports whether the recorded bundle was built from the same inputs
// and is still intact in the output directory.
func (o *Orchestrator) upToDate(inputHash string) ([]string, bool) {
	info, err := o.deps.Store.Get(o.opts.Root, o.target.Name)
	if err != nil {
		o.deps.Logger.Warn(fmt.Sprintf("%s: ignoring unreadable build record: %v", o.target.Name, err))
		return nil, false
	}
	if info == nil || info.InputHash != inputHash || len(info.Files) == 0 {
		return nil, false
	}

	outputHash, err := o.deps.Hasher.ComputeOutputHash(info.Files, o.target.Out)
	if err != nil || outputHash != info.OutputHash {
		return nil, false
	}
	return info.Files, true
}

// record stores the build record of a promoted bundle. Failures only cost the next up-to-date check.
func (o *Orchestrator) record(inputHash string, files []string) {
	outputHash, err := o.deps.Hasher.ComputeOutputHash(files, o.target.Out)
	if err != nil {
		o.deps.Logger.Warn(fmt.Sprintf("%s: build record not updated: %v", o.target.Name, err))
		return
	}

	err = o.deps.Store.Put(o.opts.Root, domain.BuildInfo{
		Target:     o.target.Name,
		InputHash:  inputHash,
		OutputHash: outputHash,
		Files:      files,
		Timestamp:  time.Now(),
	})
	if err != nil {
		o.deps.Logger.Warn(fmt.Sprintf("%s: build record not updated: %v", o.target.Name, err))
	}
}

func (o *Orchestrator) nextAttempt() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attempt++
	return o.attempt
}

func (o *Orchestrator) transition(attempt int, state domain.BuildState, report *domain.Report) {
	o.mu.Lock()
	from := o.state
	o.state = state
	o.mu.Unlock()

	o.deps.Logger.Debug(fmt.Sprintf("%s: attempt %d: %s -> %s", o.target.Name, attempt, from, state))
	if o.opts.Observer != nil {
		o.opts.Observer(Event{Target: o.target.Name, Attempt: attempt, State: state, Report: report})
	}
}

func (o *Orchestrator) logReport(ctx context.Context, report domain.Report) {
	switch {
	case report.UpToDate:
		o.deps.Logger.Info(fmt.Sprintf("%s: up to date", report.Target))
	case report.Succeeded():
		o.deps.Logger.Info(fmt.Sprintf("%s: built %d files into %s in %s",
			report.Target, len(report.Files), o.target.Out, report.Duration.Round(time.Millisecond)))
	case ctx.Err() != nil:
		o.deps.Logger.Debug(fmt.Sprintf("%s: attempt %d cancelled", report.Target, report.Attempt))
	default:
		err := zerr.With(zerr.Wrap(report.Err, "build failed"), "target", report.Target)
		o.deps.Logger.Error(zerr.With(err, "task", report.FailedTask))
	}
}
