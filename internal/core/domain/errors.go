package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrTaskAlreadyExists is returned when attempting to add a task with a name that already exists.
	ErrTaskAlreadyExists = zerr.New("task already exists")

	// ErrDuplicateOutput is returned when two tasks declare the same output.
	ErrDuplicateOutput = zerr.New("output declared by more than one task")

	// ErrCycleDetected is returned when a cycle is detected in the task dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTaskNotFound is returned when a requested task is not found in the graph.
	ErrTaskNotFound = zerr.New("task not found")

	// ErrMissingOutput is returned when a task finishes without producing a declared output.
	ErrMissingOutput = zerr.New("task did not produce declared output")

	// ErrArtifactType is returned when an artifact has an unexpected type.
	ErrArtifactType = zerr.New("artifact has unexpected type")

	// ErrTaskPanicked is returned when a task panics while running.
	ErrTaskPanicked = zerr.New("task panicked")

	// ErrMissingInput is the sentinel matched by MissingInputError.
	ErrMissingInput = zerr.New("missing input")

	// ErrStyleCompile is the sentinel matched by StyleCompileError.
	ErrStyleCompile = zerr.New("style compilation failed")

	// ErrCompile is the sentinel matched by CompileError.
	ErrCompile = zerr.New("module compilation failed")

	// ErrCopy is the sentinel matched by CopyError.
	ErrCopy = zerr.New("static copy failed")

	// ErrBuildFailed is returned when a one-shot build attempt ends in the Failed state.
	ErrBuildFailed = zerr.New("build failed")

	// ErrPromoteFailed is returned when staged outputs cannot be moved into the output directory.
	ErrPromoteFailed = zerr.New("failed to promote staged outputs")

	// ErrInvalidMode is returned for an unknown run mode.
	ErrInvalidMode = zerr.New("invalid mode, expected 'production' or 'watch'")

	// ErrInvalidTargetName is returned when a target name is not a valid output base name.
	ErrInvalidTargetName = zerr.New("target name can only contain alphanumeric characters, hyphens and underscores")

	// ErrTargetNotFound is returned when a requested target is not configured.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrNoTargets is returned when the configuration defines no targets.
	ErrNoTargets = zerr.New("no targets configured")

	// ErrConfigNotFound is returned when no configuration file is found.
	ErrConfigNotFound = zerr.New("could not find brew.yaml in the current directory or any parent")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigVersion is returned when the config file has an unknown version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrMissingTargetField is returned when a target omits a required field.
	ErrMissingTargetField = zerr.New("missing target field")

	// ErrStoreCreateFailed is returned when the build record store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build record store directory")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")
)

// MissingInputError reports a target input that does not exist on disk.
type MissingInputError struct {
	Path string
	Kind string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing %s: %s", e.Kind, e.Path)
}

// Is matches ErrMissingInput.
func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// SourceLocation points at a position in a source file. Line and Column are 1-based; zero means unknown.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (l SourceLocation) String() string {
	switch {
	case l.Line == 0:
		return l.File
	case l.Column == 0:
		return fmt.Sprintf("%s:%d", l.File, l.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
}

// StyleCompileError reports a stylesheet rejected by one of the transform stages.
type StyleCompileError struct {
	Stage    string
	Message  string
	Location SourceLocation
}

func (e *StyleCompileError) Error() string {
	if e.Location.File == "" {
		return fmt.Sprintf("style stage %q: %s", e.Stage, e.Message)
	}
	return fmt.Sprintf("style stage %q: %s: %s", e.Stage, e.Location, e.Message)
}

// Is matches ErrStyleCompile.
func (e *StyleCompileError) Is(target error) bool {
	return target == ErrStyleCompile
}

// CompileError reports a failed or unusable run of the external module compiler.
// ExitCode is -1 when the process could not be started.
type CompileError struct {
	ExitCode      int
	StderrSummary string
}

func (e *CompileError) Error() string {
	if e.StderrSummary == "" {
		return fmt.Sprintf("module compiler failed (exit code %d)", e.ExitCode)
	}
	return fmt.Sprintf("module compiler failed (exit code %d): %s", e.ExitCode, e.StderrSummary)
}

// Is matches ErrCompile.
func (e *CompileError) Is(target error) bool {
	return target == ErrCompile
}

// CopyError reports a static file that could not be copied.
type CopyError struct {
	Path  string
	Cause error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying file system error.
func (e *CopyError) Unwrap() error {
	return e.Cause
}

// Is matches ErrCopy.
func (e *CopyError) Is(target error) bool {
	return target == ErrCopy
}

// TaskError attributes a build failure to the task that caused it.
type TaskError struct {
	Task string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s: %v", e.Task, e.Err)
}

// Unwrap returns the root cause reported by the task.
func (e *TaskError) Unwrap() error {
	return e.Err
}
