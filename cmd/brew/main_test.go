package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/brew/internal/adapters/telemetry"
	"go.trai.ch/brew/internal/app"
	"go.trai.ch/brew/internal/core/domain"
	"go.trai.ch/brew/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newApplication(ctrl *gomock.Controller, loader *mocks.MockConfigLoader, logger *mocks.MockLogger) *app.App {
	return app.New(app.Dependencies{
		ConfigLoader: loader,
		Logger:       logger,
		Telemetry:    telemetry.NewNoop(),
		Resolver:     mocks.NewMockAssetResolver(ctrl),
		Copier:       mocks.NewMockStaticCopier(ctrl),
		Assembler:    mocks.NewMockBundleAssembler(ctrl),
		Hasher:       mocks.NewMockHasher(ctrl),
		Store:        mocks.NewMockBuildInfoStore(ctrl),
	})
}

func provide(a *app.App, logger *mocks.MockLogger) ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: logger}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provide(newApplication(ctrl, loader, logger), logger))
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that other failures are logged once and exit 1.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	loader.EXPECT().Load("").Return(nil, errors.New("load failed"))
	logger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"targets"}, io.Discard, provide(newApplication(ctrl, loader, logger), logger))
	assert.Equal(t, 1, exitCode)
}

// TestRun_BuildFailedIsNotLoggedAgain verifies that failed targets only set the exit code.
func TestRun_BuildFailedIsNotLoggedAgain(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)

	loader.EXPECT().Load("").Return(nil, domain.ErrBuildFailed)
	logger.EXPECT().Error(gomock.Any()).Times(0)

	exitCode := run(context.Background(), []string{"build"}, io.Discard, provide(newApplication(ctrl, loader, logger), logger))
	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that the context is canceled on signal.
func TestRun_Signal(t *testing.T) {
	ctrl := gomock.NewController(t)
	blockCh := make(chan struct{})

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).DoAndReturn(func(string) (*domain.Config, error) {
		select {
		case <-blockCh:
			return nil, context.Canceled
		case <-time.After(5 * time.Second):
			return nil, errors.New("timeout in mock")
		}
	})

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)

	go func() {
		errCh <- run(ctx, []string{"build", "barista"}, io.Discard, provide(newApplication(ctrl, loader, logger), logger))
	}()

	// Wait a bit to ensure run() reaches Load()
	time.Sleep(100 * time.Millisecond)

	cancel()
	close(blockCh)

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("TestRun_Signal timed out waiting for run() to return")
	}
}
