package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brew/internal/adapters/watcher"
)

func TestDebouncer_Add_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var batches [][]string

		d := watcher.NewDebouncer(50*time.Millisecond, func(paths []string) {
			batches = append(batches, paths)
		})

		d.Add("/site/style/main.scss")
		d.Add("/site/bootstrap.js")
		d.Add("/site/style/main.scss")

		time.Sleep(80 * time.Millisecond)
		synctest.Wait()

		require.Len(t, batches, 1)
		assert.Equal(t, []string{"/site/bootstrap.js", "/site/style/main.scss"}, batches[0])
	})
}

func TestDebouncer_Add_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var calls int

		d := watcher.NewDebouncer(100*time.Millisecond, func([]string) {
			mu.Lock()
			calls++
			mu.Unlock()
		})

		d.Add("/site/a.css")
		time.Sleep(60 * time.Millisecond)
		d.Add("/site/b.css")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 0, calls)
		mu.Unlock()

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 1, calls)
		mu.Unlock()
	})
}

func TestDebouncer_SeparateBatches(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var batches [][]string

		d := watcher.NewDebouncer(50*time.Millisecond, func(paths []string) {
			batches = append(batches, paths)
		})

		d.Add("/site/a.css")
		time.Sleep(80 * time.Millisecond)
		synctest.Wait()

		d.Add("/site/b.css")
		time.Sleep(80 * time.Millisecond)
		synctest.Wait()

		assert.Equal(t, [][]string{{"/site/a.css"}, {"/site/b.css"}}, batches)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls int
		var received []string

		d := watcher.NewDebouncer(100*time.Millisecond, func(paths []string) {
			calls++
			received = paths
		})

		d.Add("/site/b.css")
		d.Add("/site/a.css")
		d.Flush()

		require.Equal(t, 1, calls)
		assert.Equal(t, []string{"/site/a.css", "/site/b.css"}, received)

		// The cancelled timer must not deliver the batch again.
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, 1, calls)
	})
}

func TestDebouncer_Flush_Empty(t *testing.T) {
	var calls int
	d := watcher.NewDebouncer(100*time.Millisecond, func([]string) { calls++ })

	d.Flush()

	assert.Equal(t, 0, calls)
}

func TestDebouncer_Stop_DiscardsPending(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls int
		d := watcher.NewDebouncer(50*time.Millisecond, func([]string) { calls++ })

		d.Add("/site/a.css")
		d.Stop()

		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Flush()

		assert.Equal(t, 0, calls)
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)

		d.Add("/site/a.css")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("/site/b.css")
		d.Flush()
	})
}
