package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/brew/internal/adapters/bundle"             //nolint:depguard // Wired in app layer
	"go.trai.ch/brew/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/brew/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/brew/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/brew/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/brew/internal/adapters/server"             //nolint:depguard // Wired in app layer
	"go.trai.ch/brew/internal/adapters/style"              //nolint:depguard // Wired in app layer
	"go.trai.ch/brew/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/brew/internal/adapters/wasmpack"           //nolint:depguard // Wired in app layer
	"go.trai.ch/brew/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/brew/internal/core/ports"
	"go.trai.ch/brew/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the command line needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fs.ResolverNodeID,
			fs.CopierNodeID,
			fs.HasherNodeID,
			bundle.NodeID,
			cas.NodeID,
			progrock.NodeID,
			scheduler.NodeID,
			style.NodeID,
			wasmpack.NodeID,
			watcher.NodeID,
			server.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

//nolint:cyclop // One lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	var (
		deps Dependencies
		err  error
	)

	if deps.ConfigLoader, err = graft.Dep[ports.ConfigLoader](ctx); err != nil {
		return nil, err
	}
	if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if deps.Resolver, err = graft.Dep[ports.AssetResolver](ctx); err != nil {
		return nil, err
	}
	if deps.Copier, err = graft.Dep[ports.StaticCopier](ctx); err != nil {
		return nil, err
	}
	if deps.Hasher, err = graft.Dep[ports.Hasher](ctx); err != nil {
		return nil, err
	}
	if deps.Assembler, err = graft.Dep[ports.BundleAssembler](ctx); err != nil {
		return nil, err
	}
	if deps.Store, err = graft.Dep[ports.BuildInfoStore](ctx); err != nil {
		return nil, err
	}
	if deps.Telemetry, err = graft.Dep[ports.Telemetry](ctx); err != nil {
		return nil, err
	}
	if deps.Scheduler, err = graft.Dep[*scheduler.Scheduler](ctx); err != nil {
		return nil, err
	}
	if deps.Styles, err = graft.Dep[*style.Factory](ctx); err != nil {
		return nil, err
	}
	if deps.Modules, err = graft.Dep[*wasmpack.Factory](ctx); err != nil {
		return nil, err
	}
	if deps.Watchers, err = graft.Dep[*watcher.Factory](ctx); err != nil {
		return nil, err
	}
	if deps.Server, err = graft.Dep[*server.Server](ctx); err != nil {
		return nil, err
	}

	return New(deps), nil
}
