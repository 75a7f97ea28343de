package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/brew/internal/adapters/telemetry/progrock"
	"go.trai.ch/brew/internal/core/domain"
)

func TestRecorder_RecordsTaskLifecycle(t *testing.T) {
	recorder := progrock.New()
	ctx := context.Background()

	_, style := recorder.Record(ctx, "site/style")
	_, err := style.Stdout().Write([]byte("body{color:red}\n"))
	require.NoError(t, err)
	style.Log(domain.LogLevelDebug, "stage compile done")
	style.Complete(nil)

	_, module := recorder.Record(ctx, "site/module")
	_, err = module.Stderr().Write([]byte("error[E0425]: cannot find value\n"))
	require.NoError(t, err)
	module.Log(domain.LogLevelError, "module compiler failed")
	module.Complete(errors.New("module compiler failed (exit code 101)"))

	_, bundle := recorder.Record(ctx, "site/bundle")
	bundle.Cached()

	require.NoError(t, recorder.Close())
}
