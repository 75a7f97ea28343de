// Package scheduler runs the tasks of a build graph with bounded parallelism.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultParallelism is the number of tasks run at the same time.
const DefaultParallelism = 3

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task is waiting to be executed or was never started.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the task has finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the task execution failed.
	StatusFailed TaskStatus = "Failed"
)

// Options configures a single run.
type Options struct {
	// Parallelism bounds the number of concurrently running tasks. Values below 1 use DefaultParallelism.
	Parallelism int
	// Label prefixes the telemetry vertex of every task.
	Label string
}

// Result is the outcome of a run.
type Result struct {
	// Artifacts holds every artifact produced by a completed task.
	Artifacts domain.Artifacts
	// Status holds the final status of every task.
	Status map[domain.InternedString]TaskStatus
}

// Scheduler manages the execution of tasks in the dependency graph.
type Scheduler struct {
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(telemetry ports.Telemetry, logger ports.Logger) *Scheduler {
	return &Scheduler{
		telemetry: telemetry,
		logger:    logger,
	}
}

// Run validates the graph and executes its tasks. A task starts once every
// producer of its inputs has completed and receives their artifacts.
//
// The first failing task stops the run: no further task is started, running
// tasks are cancelled and awaited, and the failure is returned as a
// *domain.TaskError. The Result is returned in both cases.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, opts Options) (*Result, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	state := s.newRunState(ctx, graph, opts)
	defer state.cancel()

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		res := <-state.resultsCh
		state.handleResult(res)
	}

	result := &Result{Artifacts: state.artifacts, Status: state.status}
	if state.err != nil {
		return result, state.err
	}
	if err := ctx.Err(); err != nil && state.pendingCount() > 0 {
		return result, err
	}
	return result, nil
}

type result struct {
	task      domain.InternedString
	artifacts domain.Artifacts
	err       error
}

type schedulerRunState struct {
	s           *Scheduler
	graph       *domain.Graph
	ctx         context.Context
	cancel      context.CancelFunc
	label       string
	parallelism int

	inDegree  map[domain.InternedString]int
	status    map[domain.InternedString]TaskStatus
	ready     []domain.InternedString
	active    int
	resultsCh chan result
	artifacts domain.Artifacts
	err       error
}

func (s *Scheduler) newRunState(ctx context.Context, graph *domain.Graph, opts Options) *schedulerRunState {
	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = DefaultParallelism
	}

	taskCount := graph.TaskCount()
	inDegree := make(map[domain.InternedString]int, taskCount)
	status := make(map[domain.InternedString]TaskStatus, taskCount)

	var ready []domain.InternedString
	for task := range graph.Walk() {
		status[task.Name] = StatusPending
		inDegree[task.Name] = len(graph.Dependencies(task.Name))
		if inDegree[task.Name] == 0 {
			ready = append(ready, task.Name)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	return &schedulerRunState{
		s:           s,
		graph:       graph,
		ctx:         runCtx,
		cancel:      cancel,
		label:       opts.Label,
		parallelism: parallelism,
		inDegree:    inDegree,
		status:      status,
		ready:       ready,
		resultsCh:   make(chan result, taskCount),
		artifacts:   make(domain.Artifacts),
	}
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && (len(state.ready) == 0 || state.stopped())
}

// stopped reports whether no new task may start.
func (state *schedulerRunState) stopped() bool {
	return state.err != nil || state.ctx.Err() != nil
}

func (state *schedulerRunState) pendingCount() int {
	n := 0
	for _, st := range state.status {
		if st == StatusPending {
			n++
		}
	}
	return n
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && !state.stopped() {
		name := state.ready[0]
		state.ready = state.ready[1:]

		task, _ := state.graph.GetTask(name)
		in := state.inputsOf(task)

		state.active++
		state.status[name] = StatusRunning

		go func() {
			artifacts, err := state.execute(task, in)
			state.resultsCh <- result{task: name, artifacts: artifacts, err: err}
		}()
	}
}

// inputsOf collects the artifacts produced for the task's inputs.
func (state *schedulerRunState) inputsOf(task *domain.Task) domain.Artifacts {
	in := make(domain.Artifacts, len(task.Inputs))
	for _, key := range task.Inputs {
		if v, ok := state.artifacts[key.String()]; ok {
			in[key.String()] = v
		}
	}
	return in
}

func (state *schedulerRunState) execute(task *domain.Task, in domain.Artifacts) (out domain.Artifacts, err error) {
	name := task.Name.String()
	vertexName := name
	if state.label != "" {
		vertexName = state.label + "/" + name
	}

	ctx, vertex := state.s.telemetry.Record(state.ctx, vertexName)
	start := time.Now()
	defer func() {
		if err != nil {
			vertex.Log(domain.LogLevelError, err.Error())
		}
		vertex.Complete(err)
		state.s.logger.Debug(fmt.Sprintf("task %s finished in %s", vertexName, time.Since(start).Round(time.Millisecond)))
	}()

	defer zerr.Defer(func(panicErr error) {
		out = nil
		err = zerr.With(zerr.Wrap(domain.ErrTaskPanicked, panicErr.Error()), "task", name)
	})

	out, err = task.Run(ctx, in)
	if err != nil {
		return nil, err
	}

	for _, key := range task.Outputs {
		if _, ok := out[key.String()]; !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrMissingOutput, "check outputs"), "output", key.String())
		}
	}
	return out, nil
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--

	if res.err != nil {
		state.status[res.task] = StatusFailed
		if state.err == nil {
			state.err = &domain.TaskError{Task: res.task.String(), Err: res.err}
			state.cancel()
		}
		return
	}

	state.status[res.task] = StatusCompleted
	for key, v := range res.artifacts {
		state.artifacts[key] = v
	}
	for _, dep := range state.graph.Dependents(res.task) {
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}
