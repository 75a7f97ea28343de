package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brew/internal/adapters/cas"
	"go.trai.ch/brew/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	info := domain.BuildInfo{
		Target:     "barista",
		InputHash:  "abc",
		OutputHash: "def",
		Timestamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, store.Put(root, info))

	got, err := store.Get(root, "barista")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, info, *got)

	assert.FileExists(t, filepath.Join(root, ".brew", "store", "barista.json"))
}

func TestStore_GetMissing(t *testing.T) {
	got, err := cas.NewStore().Get(t.TempDir(), "mineweb")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Overwrite(t *testing.T) {
	root := t.TempDir()
	store := cas.NewStore()

	require.NoError(t, store.Put(root, domain.BuildInfo{Target: "barista", InputHash: "1"}))
	require.NoError(t, store.Put(root, domain.BuildInfo{Target: "barista", InputHash: "2"}))

	got, err := store.Get(root, "barista")
	require.NoError(t, err)
	assert.Equal(t, "2", got.InputHash)

	entries, err := os.ReadDir(filepath.Join(root, ".brew", "store"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_Corrupt(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".brew", "store", "barista.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := cas.NewStore().Get(root, "barista")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrStoreReadFailed.Error())
}
