package domain

import "context"

// TaskFunc runs a task. It receives the artifacts produced for the task's declared
// inputs and returns the artifacts for its declared outputs.
type TaskFunc func(ctx context.Context, in Artifacts) (Artifacts, error)

// Task represents a unit of work in the build graph.
//
// Inputs and Outputs are either source paths or artifact keys. An output of one
// task that equals an input of another makes the second task depend on the first.
type Task struct {
	Name    InternedString
	Inputs  []InternedString
	Outputs []InternedString
	Run     TaskFunc
}

// NewTask creates a task from plain string inputs and outputs.
func NewTask(name string, inputs, outputs []string, run TaskFunc) *Task {
	return &Task{
		Name:    NewInternedString(name),
		Inputs:  internStrings(inputs),
		Outputs: internStrings(outputs),
		Run:     run,
	}
}

func internStrings(strs []string) []InternedString {
	if len(strs) == 0 {
		return nil
	}
	res := make([]InternedString, len(strs))
	for i, s := range strs {
		res[i] = NewInternedString(s)
	}
	return res
}
