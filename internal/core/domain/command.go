package domain

import "io"

// Command describes an external process run by the executor.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ProcessError reports an external process that failed or could not start.
// ExitCode is -1 when the process did not run to completion.
type ProcessError struct {
	Command  string
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *ProcessError) Error() string {
	return e.Command + ": " + e.Cause.Error()
}

// Unwrap returns the underlying exec error.
func (e *ProcessError) Unwrap() error {
	return e.Cause
}
