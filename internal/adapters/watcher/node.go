package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/brew/internal/adapters/fs"
	"go.trai.ch/brew/internal/adapters/logger"
	"go.trai.ch/brew/internal/core/ports"
)

// NodeID is the unique identifier for the watcher factory Graft node.
const NodeID graft.ID = "adapter.watcher"

// Factory creates a watcher and a state per watch session.
type Factory struct {
	logger ports.Logger
	walker *fs.Walker
}

// NewFactory creates a new Factory.
func NewFactory(logger ports.Logger, walker *fs.Walker) *Factory {
	return &Factory{logger: logger, walker: walker}
}

// NewWatcher creates a file system watcher.
func (f *Factory) NewWatcher() (ports.Watcher, error) {
	return NewWatcher(f.logger)
}

// NewDebouncer creates a debouncer with the default window.
func (f *Factory) NewDebouncer(onBatch func(paths []string)) ports.Debouncer {
	return NewDebouncer(DefaultDebounceWindow, onBatch)
}

// NewState creates an empty signature state.
func (f *Factory) NewState() *State {
	return NewState(f.walker)
}

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.WalkerNodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log, walker), nil
		},
	})
}
