// Package modulecache maps script filenames to loaded modules and reloads them when
// their files change on disk.
package modulecache

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModuleCache = (*Cache)(nil)

// record is the cache entry for one canonical filename. Its module is always a
// fully loaded handle owned by the cache.
type record struct {
	path        domain.CanonicalPath
	module      ports.Module
	modTime     time.Time
	fingerprint uint64
	clean       bool
	reloads     int
}

// Options configures a Cache.
type Options struct {
	// Extensions lists the recognized script extensions.
	Extensions []string
	// Freshness is the initial value of the freshness toggle.
	Freshness bool
}

// Cache is the process-wide module cache. GetModule is fully serialized.
type Cache struct {
	resolver   ports.PathResolver
	runtime    ports.ScriptRuntime
	logger     ports.Logger
	tracer     ports.Tracer
	extensions []string
	freshness  atomic.Bool

	mu      sync.Mutex
	aliases map[string]domain.CanonicalPath
	records map[string]*record
	// dirs maps a canonical directory to the basenames cached from it.
	dirs   map[string]map[string]struct{}
	closed bool
}

// New creates an empty cache importing modules through runtime.
func New(
	resolver ports.PathResolver,
	runtime ports.ScriptRuntime,
	logger ports.Logger,
	tracer ports.Tracer,
	opts Options,
) *Cache {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{domain.DefaultExtension}
	}
	c := &Cache{
		resolver:   resolver,
		runtime:    runtime,
		logger:     logger,
		tracer:     tracer,
		extensions: exts,
		aliases:    make(map[string]domain.CanonicalPath),
		records:    make(map[string]*record),
		dirs:       make(map[string]map[string]struct{}),
	}
	c.freshness.Store(opts.Freshness)
	return c
}

// SetFreshnessChecking enables or disables modification time checks.
func (c *Cache) SetFreshnessChecking(enabled bool) {
	c.freshness.Store(enabled)
}

// IsFreshnessChecking reports whether modification time checks are enabled.
func (c *Cache) IsFreshnessChecking() bool {
	return c.freshness.Load()
}

// GetModule returns the module for rawName. The first request imports it. Later
// requests reuse it, reloading first when freshness checking is on and the file
// was written since the last load. A failed reload keeps the previous module.
func (c *Cache) GetModule(ctx context.Context, rawName string) (ports.Module, error) {
	_, span := c.tracer.Start(ctx, "modulecache.get")
	defer span.End()
	span.SetAttribute("file", rawName)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		err := zerr.With(zerr.Wrap(domain.ErrCacheLoad, "module cache is closed"), "file", rawName)
		span.RecordError(err)
		return nil, err
	}

	cp, err := c.resolve(rawName)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("path", cp.Path)

	rec, ok := c.records[cp.Path]
	if !ok {
		span.SetAttribute("cache_hit", false)
		m, err := c.importModule(cp)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		return m, nil
	}
	span.SetAttribute("cache_hit", true)

	if !c.freshness.Load() {
		return rec.module, nil
	}

	reloaded, err := c.refresh(rec)
	span.SetAttribute("reloaded", reloaded)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return rec.module, nil
}

// resolve memoizes every spelling a caller has used.
func (c *Cache) resolve(rawName string) (domain.CanonicalPath, error) {
	if cp, ok := c.aliases[rawName]; ok {
		return cp, nil
	}
	cp, err := c.resolver.Resolve(rawName)
	if err != nil {
		return domain.CanonicalPath{}, err
	}
	c.aliases[rawName] = cp
	return cp, nil
}

// importModule loads cp for the first time. Nothing is recorded unless the import succeeds.
func (c *Cache) importModule(cp domain.CanonicalPath) (ports.Module, error) {
	if _, _, ext, err := domain.SplitPath(cp.Path); err != nil {
		return nil, loadError(err, cp)
	} else if !domain.ValidExtension(ext, c.extensions) {
		err := zerr.With(zerr.Wrap(domain.ErrUnsupportedExtension, ext), "extensions", c.extensions)
		return nil, loadError(err, cp)
	}

	modTime, err := c.resolver.ModTime(cp.Source)
	if err != nil {
		return nil, loadError(err, cp)
	}

	c.runtime.Lock()
	defer c.runtime.Unlock()

	if err := c.addSearchDir(cp); err != nil {
		return nil, loadError(err, cp)
	}

	m, err := c.withCaseFolding(cp, func() (ports.Module, error) {
		return c.runtime.Import(cp)
	})
	if err != nil {
		return nil, loadError(err, cp)
	}

	c.records[cp.Path] = &record{
		path:        cp,
		module:      m,
		modTime:     modTime,
		fingerprint: c.fingerprint(cp),
		clean:       true,
	}
	c.dirs[cp.Dir][cp.Base] = struct{}{}

	c.logger.Debug("imported module", "path", cp.Path, "module", m.Name())
	return m, nil
}

// addSearchDir inserts the module's directory into the runtime search path once.
func (c *Cache) addSearchDir(cp domain.CanonicalPath) error {
	if _, ok := c.dirs[cp.Dir]; ok {
		return nil
	}
	if err := c.runtime.AddSearchDir(cp.SourceDir()); err != nil {
		return err
	}
	c.dirs[cp.Dir] = make(map[string]struct{})
	return nil
}

// refresh reloads rec when its file was written after the last load.
func (c *Cache) refresh(rec *record) (bool, error) {
	modTime, err := c.resolver.ModTime(rec.path.Source)
	if err != nil {
		return false, err
	}
	if !modTime.After(rec.modTime) {
		return false, nil
	}

	c.runtime.Lock()
	defer c.runtime.Unlock()

	fresh, err := c.withCaseFolding(rec.path, func() (ports.Module, error) {
		return c.runtime.Reload(rec.module)
	})
	if err != nil {
		rec.clean = false
		reloadErr := zerr.With(zerr.Wrap(errors.Join(domain.ErrCacheReload, err), "serving previous module"), "path", rec.path.Path)
		c.logger.Warn("module reload failed", "path", rec.path.Path, "error", reloadErr.Error())
		return false, nil
	}

	old := rec.module
	rec.module = fresh
	rec.modTime = modTime
	rec.fingerprint = c.fingerprint(rec.path)
	rec.clean = true
	rec.reloads++
	old.Release()

	c.logger.Debug("reloaded module", "path", rec.path.Path, "reloads", rec.reloads)
	return true, nil
}

// withCaseFolding turns on case-insensitive imports around load when the basename
// is an ASCII alias, restoring the previous value afterwards.
func (c *Cache) withCaseFolding(cp domain.CanonicalPath, load func() (ports.Module, error)) (ports.Module, error) {
	if !cp.BasenameIsShort {
		return load()
	}
	prev := c.runtime.SetCaseInsensitiveImports(true)
	defer c.runtime.SetCaseInsensitiveImports(prev)
	return load()
}

func (c *Cache) fingerprint(cp domain.CanonicalPath) uint64 {
	fp, err := c.resolver.Fingerprint(cp.Source)
	if err != nil {
		c.logger.Debug("could not fingerprint module", "path", cp.Path, "error", err.Error())
		return 0
	}
	return fp
}

// Stats returns a snapshot of the cached modules, sorted by path.
func (c *Cache) Stats() domain.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	aliases := make(map[string][]string, len(c.records))
	for raw, cp := range c.aliases {
		aliases[cp.Path] = append(aliases[cp.Path], raw)
	}

	stats := domain.CacheStats{
		Freshness:   c.freshness.Load(),
		Directories: slices.Sorted(maps.Keys(c.dirs)),
	}
	for _, key := range slices.Sorted(maps.Keys(c.records)) {
		rec := c.records[key]
		names := aliases[key]
		slices.Sort(names)
		stats.Modules = append(stats.Modules, domain.ModuleStat{
			Path:        rec.path.Path,
			ModTime:     rec.modTime,
			Fingerprint: rec.fingerprint,
			Clean:       rec.clean,
			Reloads:     rec.reloads,
			Aliases:     names,
		})
	}
	return stats
}

// Close releases every cached module. Later GetModule calls fail.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.runtime.Lock()
	defer c.runtime.Unlock()
	for key, rec := range c.records {
		rec.module.Release()
		delete(c.records, key)
	}
	clear(c.aliases)
	clear(c.dirs)
	return nil
}

func loadError(err error, cp domain.CanonicalPath) error {
	return zerr.With(errors.Join(domain.ErrCacheLoad, err), "path", cp.Path)
}
