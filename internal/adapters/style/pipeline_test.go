package style_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brew/internal/adapters/style"
	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports"
	"go.trai.ch/brew/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeStyle(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestPipeline_Transform_RunsStagesInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	first := mocks.NewMockStyleStage(ctrl)
	second := mocks.NewMockStyleStage(ctrl)
	first.EXPECT().Name().Return("first").AnyTimes()
	second.EXPECT().Name().Return("second").AnyTimes()

	path := writeStyle(t, "index.css", "source")

	gomock.InOrder(
		first.EXPECT().Apply(gomock.Any(), ports.StyleSource{Path: path, Text: "source"}).Return("one", nil),
		second.EXPECT().Apply(gomock.Any(), ports.StyleSource{Path: path, Text: "one"}).Return("two", nil),
	)

	p := style.NewPipeline(mockLogger, first, second)
	css, err := p.Transform(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "two", css)
	assert.Equal(t, []string{"first", "second"}, p.Stages())
}

func TestPipeline_Transform_StopsAtFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	failing := mocks.NewMockStyleStage(ctrl)
	never := mocks.NewMockStyleStage(ctrl)
	failing.EXPECT().Name().Return("compile").AnyTimes()
	failing.EXPECT().Apply(gomock.Any(), gomock.Any()).Return("", errors.New("unexpected token"))
	// never.Apply has no expectation: calling it fails the test.

	path := writeStyle(t, "index.scss", "body {")

	_, err := style.NewPipeline(mockLogger, failing, never).Transform(context.Background(), path)
	require.Error(t, err)

	var styleErr *domain.StyleCompileError
	require.True(t, errors.As(err, &styleErr))
	assert.Equal(t, "compile", styleErr.Stage)
	assert.Equal(t, "unexpected token", styleErr.Message)
	assert.Equal(t, path, styleErr.Location.File)
	assert.True(t, errors.Is(err, domain.ErrStyleCompile))
}

func TestPipeline_Transform_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	_, err := style.NewPipeline(mockLogger).Transform(context.Background(), filepath.Join(t.TempDir(), "nope.css"))

	var styleErr *domain.StyleCompileError
	require.True(t, errors.As(err, &styleErr))
	assert.Equal(t, style.StageRead, styleErr.Stage)
}

func TestFactory_New_PlainCSS(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockExecutor := mocks.NewMockExecutor(ctrl)

	p := style.NewFactory(mockExecutor, mockLogger).New("")
	assert.Equal(t, []string{style.StageCompile, style.StageNormalize, style.StageExtract}, p.Stages())

	path := writeStyle(t, "index.css", "body{color:red}\r\n")
	first, err := p.Transform(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, first, "color: red")
	assert.Equal(t, byte('\n'), first[len(first)-1])
	assert.NotContains(t, first, "\r")

	second, err := p.Transform(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFactory_New_SyntaxError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockExecutor := mocks.NewMockExecutor(ctrl)

	path := writeStyle(t, "index.css", "body { color: red")

	_, err := style.NewFactory(mockExecutor, mockLogger).New("").Transform(context.Background(), path)
	require.Error(t, err)

	var styleErr *domain.StyleCompileError
	require.True(t, errors.As(err, &styleErr))
	assert.Equal(t, style.StageNormalize, styleErr.Stage)
	assert.Positive(t, styleErr.Location.Line)
}
