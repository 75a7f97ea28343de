package bundle

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/brew/internal/adapters/fs"
	"go.trai.ch/brew/internal/core/ports"
)

// NodeID is the graft node identifier for the bundle assembler.
const NodeID graft.ID = "adapter.bundle"

func init() {
	graft.Register(graft.Node[ports.BundleAssembler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.BundleAssembler, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewAssembler(walker), nil
		},
	})
}
