package style

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/brew/internal/adapters/logger"
	"go.trai.ch/brew/internal/adapters/shell"
	"go.trai.ch/brew/internal/core/ports"
)

// NodeID is the graft node identifier for the pipeline factory.
const NodeID graft.ID = "adapter.style"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(executor, log), nil
		},
	})
}
