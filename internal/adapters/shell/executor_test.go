package shell_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brew/internal/adapters/shell"
	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Debug("line1").Times(1)
	mockLogger.EXPECT().Debug("line2").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), &domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo line1; echo line2"},
		Dir:  t.TempDir(),
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_FragmentedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Debug("part1part2").Times(1)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), &domain.Command{
		Name: "sh",
		Args: []string{"-c", "printf part1; sleep 0.1; echo part2"},
		Dir:  t.TempDir(),
	})
	require.NoError(t, err)
}

func TestExecutor_Execute_RedirectedStreams(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	var stdout, stderr bytes.Buffer
	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), &domain.Command{
		Name:   "sh",
		Args:   []string{"-c", "cat; echo oops >&2"},
		Stdin:  strings.NewReader("a { color: red }"),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	require.NoError(t, err)
	assert.Equal(t, "a { color: red }", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestExecutor_Execute_EnvironmentOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	var stdout bytes.Buffer
	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), &domain.Command{
		Name:   "sh",
		Args:   []string{"-c", "printf %s \"$BREW_TEST_VALUE\""},
		Env:    []string{"BREW_TEST_VALUE=test-value-123"},
		Stdout: &stdout,
	})
	require.NoError(t, err)
	assert.Equal(t, "test-value-123", stdout.String())
}

func TestExecutor_Execute_ExitCodeAndStderrTail(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), &domain.Command{
		Name: "sh",
		Args: []string{"-c", "for i in $(seq 1 30); do echo err$i >&2; done; exit 3"},
	})
	require.Error(t, err)

	var procErr *domain.ProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, 3, procErr.ExitCode)
	assert.Equal(t, "sh", procErr.Command)

	lines := strings.Split(procErr.Stderr, "\n")
	require.Len(t, lines, shell.StderrTailLines)
	assert.Equal(t, "err11", lines[0])
	assert.Equal(t, "err30", lines[len(lines)-1])
}

func TestExecutor_Execute_MissingBinary(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(context.Background(), &domain.Command{
		Name: "brew-definitely-not-installed",
	})
	require.Error(t, err)

	var procErr *domain.ProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Equal(t, -1, procErr.ExitCode)
}

func TestExecutor_Execute_ContextCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(ctx, &domain.Command{Name: "sh", Args: []string{"-c", "sleep 5"}})
	require.Error(t, err)
}

func TestResolveEnvironment(t *testing.T) {
	env := shell.ResolveEnvironment(
		[]string{"PATH=/usr/bin", "HOME=/root"},
		[]string{"HOME=/tmp", "CARGO_TERM_COLOR=never"},
	)
	assert.Equal(t, []string{"PATH=/usr/bin", "HOME=/tmp", "CARGO_TERM_COLOR=never"}, env)
}
