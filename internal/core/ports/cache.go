package ports

import (
	"context"

	"go.trai.ch/gridscript/internal/core/domain"
)

//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks

// ModuleCache maps script filenames to loaded modules. Returned modules are
// owned by the cache and must not be released by callers.
type ModuleCache interface {
	// GetModule returns the module for rawName, importing or reloading it as needed.
	GetModule(ctx context.Context, rawName string) (Module, error)

	// SetFreshnessChecking enables or disables modification time checks.
	SetFreshnessChecking(enabled bool)

	// IsFreshnessChecking reports whether modification time checks are enabled.
	IsFreshnessChecking() bool

	// Stats returns a snapshot of the cached modules.
	Stats() domain.CacheStats

	// Close releases every cached module.
	Close() error
}
