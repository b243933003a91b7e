package luavm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gridscript/internal/adapters/fs"
	"go.trai.ch/gridscript/internal/adapters/logger"
	"go.trai.ch/gridscript/internal/core/ports"
)

// NodeID is the unique identifier for the Lua runtime factory Graft node.
const NodeID graft.ID = "adapter.luavm"

var _ ports.RuntimeFactory = (*Factory)(nil)

// Factory creates Lua runtimes sharing a logger and short name translator.
type Factory struct {
	logger ports.Logger
	names  ports.ShortNamer
}

// NewFactory creates a new Factory.
func NewFactory(logger ports.Logger, names ports.ShortNamer) *Factory {
	return &Factory{logger: logger, names: names}
}

// NewRuntime creates a runtime recognizing the given extensions.
func (f *Factory) NewRuntime(extensions []string) ports.ScriptRuntime {
	return NewRuntime(f.logger, f.names, extensions)
}

func init() {
	graft.Register(graft.Node[ports.RuntimeFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, fs.NamesNodeID},
		Run: func(ctx context.Context) (ports.RuntimeFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			names, err := graft.Dep[ports.ShortNamer](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log, names), nil
		},
	})
}
