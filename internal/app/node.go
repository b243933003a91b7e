package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gridscript/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/gridscript/internal/adapters/daemon"    //nolint:depguard // Wired in app layer
	"go.trai.ch/gridscript/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/gridscript/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/gridscript/internal/adapters/luavm"     //nolint:depguard // Wired in app layer
	"go.trai.ch/gridscript/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/gridscript/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fs.ResolverNodeID,
			luavm.NodeID,
			telemetry.TracerNodeID,
			daemon.NodeID,
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

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.PathResolver](ctx)
	if err != nil {
		return nil, err
	}

	runtimes, err := graft.Dep[ports.RuntimeFactory](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	connector, err := graft.Dep[ports.DaemonConnector](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, resolver, runtimes, tracer, connector), nil
}
