package ports

import "go.trai.ch/gridscript/internal/core/domain"

// ConfigLoader defines the interface for loading settings.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. An empty path triggers discovery:
	// the environment variable, then the working directory. A missing file yields defaults.
	Load(path string) (domain.Config, error)
}
