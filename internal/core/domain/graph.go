// Package domain contains the core domain models of the bundle build: targets,
// the task graph and the errors reported by a build attempt.
package domain

import (
	"iter"
	"slices"

	"github.com/gammazero/toposort"
	"go.trai.ch/zerr"
)

// Graph is the set of tasks for one build target.
// Edges are not declared explicitly; they are derived from matching outputs and inputs.
type Graph struct {
	tasks          map[InternedString]*Task
	producers      map[InternedString]InternedString
	dependencies   map[InternedString][]InternedString
	dependents     map[InternedString][]InternedString
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks:     make(map[InternedString]*Task),
		producers: make(map[InternedString]InternedString),
	}
}

// AddTask adds a task to the graph.
// It returns an error if a task with the same name already exists or if one of
// its outputs is already produced by another task.
func (g *Graph) AddTask(t *Task) error {
	if _, exists := g.tasks[t.Name]; exists {
		return zerr.With(ErrTaskAlreadyExists, "task_name", t.Name.String())
	}
	for _, out := range t.Outputs {
		if owner, exists := g.producers[out]; exists {
			return zerr.With(zerr.With(ErrDuplicateOutput, "output", out.String()), "task_name", owner.String())
		}
	}
	for _, out := range t.Outputs {
		g.producers[out] = t.Name
	}
	g.tasks[t.Name] = t
	g.executionOrder = nil
	return nil
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.tasks)
}

// GetTask returns the task with the given name.
func (g *Graph) GetTask(name InternedString) (*Task, bool) {
	t, ok := g.tasks[name]
	return t, ok
}

// Producer returns the name of the task that declares the given output.
func (g *Graph) Producer(output InternedString) (InternedString, bool) {
	name, ok := g.producers[output]
	return name, ok
}

// Validate derives the edges of the graph and computes a topological order.
// It populates the executionOrder slice if successful.
func (g *Graph) Validate() error {
	g.dependencies = make(map[InternedString][]InternedString, len(g.tasks))
	g.dependents = make(map[InternedString][]InternedString, len(g.tasks))

	names := g.sortedNames()
	edges := make([]toposort.Edge, 0, len(names))
	for _, name := range names {
		task := g.tasks[name]
		deps := g.upstreamOf(task)
		g.dependencies[name] = deps
		if len(deps) == 0 {
			edges = append(edges, toposort.Edge{nil, name.String()})
			continue
		}
		for _, dep := range deps {
			g.dependents[dep] = append(g.dependents[dep], name)
			edges = append(edges, toposort.Edge{dep.String(), name.String()})
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return zerr.With(zerr.Wrap(ErrCycleDetected, err.Error()), "tasks", len(names))
	}

	g.executionOrder = make([]InternedString, 0, len(g.tasks))
	for _, id := range sorted {
		if id == nil {
			continue
		}
		g.executionOrder = append(g.executionOrder, NewInternedString(id.(string)))
	}
	return nil
}

// upstreamOf returns the producers of a task's inputs, sorted and without duplicates.
func (g *Graph) upstreamOf(task *Task) []InternedString {
	var deps []InternedString
	for _, in := range task.Inputs {
		if producer, ok := g.producers[in]; ok && producer != task.Name {
			deps = append(deps, producer)
		}
	}
	slices.SortFunc(deps, InternedString.Compare)
	return slices.Compact(deps)
}

func (g *Graph) sortedNames() []InternedString {
	names := make([]InternedString, 0, len(g.tasks))
	for name := range g.tasks {
		names = append(names, name)
	}
	slices.SortFunc(names, InternedString.Compare)
	return names
}

// Dependencies returns the tasks the named task waits for.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Dependencies(name InternedString) []InternedString {
	return g.dependencies[name]
}

// Dependents returns the tasks that consume an output of the named task.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Dependents(name InternedString) []InternedString {
	return g.dependents[name]
}

// Walk returns an iterator that yields tasks in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[*Task] {
	return func(yield func(*Task) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}
