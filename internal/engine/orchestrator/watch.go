package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/brew/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WatchSession holds the collaborators of one watch session.
type WatchSession struct {
	Watcher ports.Watcher
	Tracker ports.ChangeTracker
	// NewDebouncer creates the debouncer that batches relevant events for the tracker.
	NewDebouncer func(onBatch func(paths []string)) ports.Debouncer
}

// Watch builds the target, then rebuilds it whenever a relevant source changes,
// until ctx is cancelled. Failed attempts do not end the session, and neither
// do missing sources: they fail the attempt and are watched for until they appear.
// Changes seen while a build runs raise a single rebuild request, served once it finishes.
func (o *Orchestrator) Watch(ctx context.Context, session WatchSession) error {
	scope, err := o.target.SourceScope()
	if err != nil {
		return zerr.With(err, "target", o.target.Name)
	}

	session.Tracker.Seed(scope)

	rebuild := make(chan struct{}, 1)
	debouncer := session.NewDebouncer(func(paths []string) {
		changed := session.Tracker.Changed(paths)
		if len(changed) == 0 {
			return
		}
		o.deps.Logger.Debug(fmt.Sprintf("%s: changed: %s", o.target.Name, strings.Join(changed, ", ")))
		select {
		case rebuild <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	if err := session.Watcher.Start(ctx, scope); err != nil {
		_ = session.Watcher.Stop()
		return zerr.With(zerr.Wrap(err, "failed to start watcher"), "target", o.target.Name)
	}
	defer session.Watcher.Stop() //nolint:errcheck // Best effort on shutdown

	o.deps.Logger.Info(fmt.Sprintf("%s: watching for changes", o.target.Name))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range session.Watcher.Events() {
			if scope.Contains(event.Path) {
				debouncer.Add(event.Path)
			}
		}
		return nil
	})

	g.Go(func() error {
		o.build(ctx, false)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-rebuild:
				o.build(ctx, false)
			}
		}
	})

	return g.Wait()
}
