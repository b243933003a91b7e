package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gridscript/internal/core/ports"
)

const (
	// NamesNodeID is the unique identifier for the short name Graft node.
	NamesNodeID graft.ID = "adapter.fs.names"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// ResolverNodeID is the unique identifier for the path resolver Graft node.
	ResolverNodeID graft.ID = "adapter.fs.resolver"
)

func init() {
	graft.Register(graft.Node[ports.ShortNamer]{
		ID:        NamesNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ShortNamer, error) {
			return NewNames(), nil
		},
	})

	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.PathResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NamesNodeID, HasherNodeID},
		Run: func(ctx context.Context) (ports.PathResolver, error) {
			names, err := graft.Dep[ports.ShortNamer](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(names, hasher), nil
		},
	})
}
