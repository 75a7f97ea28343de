package style_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brew/internal/adapters/style"
	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
	"go.trai.ch/brew/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestCompileStage_PassesCSSThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockExecutor := mocks.NewMockExecutor(ctrl)

	out, err := style.NewCompileStage(mockExecutor, "").Apply(context.Background(), ports.StyleSource{
		Path: "/p/index.css",
		Text: "a{}",
	})
	require.NoError(t, err)
	assert.Equal(t, "a{}", out)
}

func TestCompileStage_RunsSass(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantArgs []string
	}{
		{
			name:     "scss",
			path:     "/p/sass/index.scss",
			wantArgs: []string{"--stdin", "--no-source-map", "--load-path=/p/sass"},
		},
		{
			name:     "indented sass",
			path:     "/p/sass/index.sass",
			wantArgs: []string{"--stdin", "--no-source-map", "--load-path=/p/sass", "--indented"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockExecutor := mocks.NewMockExecutor(ctrl)

			mockExecutor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, cmd *domain.Command) error {
					assert.Equal(t, "dart-sass", cmd.Name)
					assert.Equal(t, tt.wantArgs, cmd.Args)
					in, err := io.ReadAll(cmd.Stdin)
					require.NoError(t, err)
					assert.Equal(t, "$c: red;", string(in))
					_, err = io.WriteString(cmd.Stdout, "body {\n  color: red;\n}\n")
					return err
				})

			out, err := style.NewCompileStage(mockExecutor, "dart-sass").Apply(context.Background(), ports.StyleSource{
				Path: tt.path,
				Text: "$c: red;",
			})
			require.NoError(t, err)
			assert.Equal(t, "body {\n  color: red;\n}\n", out)
		})
	}
}

func TestCompileStage_ReportsSassLocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockExecutor := mocks.NewMockExecutor(ctrl)

	stderr := "Error: expected \"{\".\n  ╷\n2 │ body color: red\n  │            ^\n  ╵\n  - 2:12  root stylesheet\n"
	mockExecutor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd *domain.Command) error {
			_, _ = io.WriteString(cmd.Stderr, stderr)
			return &domain.ProcessError{Command: "sass", ExitCode: 65, Cause: errors.New("exit status 65")}
		})

	_, err := style.NewCompileStage(mockExecutor, "sass").Apply(context.Background(), ports.StyleSource{
		Path: "/p/index.scss",
		Text: "a {}\nbody color: red",
	})
	require.Error(t, err)

	var styleErr *domain.StyleCompileError
	require.True(t, errors.As(err, &styleErr))
	assert.Equal(t, style.StageCompile, styleErr.Stage)
	assert.Equal(t, `expected "{".`, styleErr.Message)
	assert.Equal(t, domain.SourceLocation{File: "/p/index.scss", Line: 2, Column: 12}, styleErr.Location)
}

func TestNormalizeStage(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	stage := style.NewNormalizeStage(mockLogger, true)
	out, err := stage.Apply(context.Background(), ports.StyleSource{Path: "index.css", Text: "a{color:red}"})
	require.NoError(t, err)
	assert.Contains(t, out, "a {")
	assert.Contains(t, out, "color: red;")
}

func TestNormalizeStage_LenientLogsWarnings(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).MinTimes(1)

	stage := style.NewNormalizeStage(mockLogger, false)
	_, err := stage.Apply(context.Background(), ports.StyleSource{Path: "index.css", Text: "a { color: red"})
	require.NoError(t, err)
}

func TestExtractStage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: " \n\t\n", want: ""},
		{name: "crlf", in: "a {\r\n  color: red;\r\n}\r\n", want: "a {\n  color: red;\n}\n"},
		{name: "missing newline", in: "a {}", want: "a {}\n"},
		{name: "trailing blank lines", in: "a {}  \n\n\n", want: "a {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := style.ExtractStage{}.Apply(context.Background(), ports.StyleSource{Text: tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}
