package domain

import "time"

// BuildState is a state of the build orchestrator.
type BuildState string

const (
	// StateIdle is the state before the first attempt.
	StateIdle BuildState = "idle"
	// StateResolving indicates the target inputs are being validated.
	StateResolving BuildState = "resolving"
	// StateBuilding indicates the task graph is running.
	StateBuilding BuildState = "building"
	// StateSucceeded indicates the last attempt promoted a complete bundle.
	StateSucceeded BuildState = "succeeded"
	// StateFailed indicates the last attempt failed and promoted nothing.
	StateFailed BuildState = "failed"
)

// IsTerminal reports whether an attempt has finished in this state.
func (s BuildState) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Report is the outcome of one build attempt.
type Report struct {
	Target     string
	Attempt    int
	State      BuildState
	FailedTask string
	Err        error
	UpToDate   bool
	Files      []string
	Duration   time.Duration
}

// Succeeded reports whether the attempt reached StateSucceeded.
func (r Report) Succeeded() bool {
	return r.State == StateSucceeded
}
