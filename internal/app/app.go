// Package app implements the application layer for gridscript.
package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/gridscript/internal/adapters/luavm"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/gridscript/internal/engine/dispatch"
	"go.trai.ch/gridscript/internal/engine/modulecache"
	"go.trai.ch/zerr"
)

// Names accepted by LoadedLibrary.
const (
	LibraryLua        = "lua"
	LibraryGridscript = "gridscript"
)

var _ ports.Engine = (*App)(nil)

// Options are the command line settings that apply before the first call.
type Options struct {
	// ConfigPath is an explicit configuration file. Empty means discovery.
	ConfigPath string
	// Verbose forces debug logging.
	Verbose bool
	// JSON forces JSON logs.
	JSON bool
}

// logSettings is implemented by loggers whose output can be reconfigured.
type logSettings interface {
	SetLevel(level slog.Level)
	SetJSON(enable bool)
}

// engine is the in-process call path, built on first use.
type engine struct {
	runtime    ports.ScriptRuntime
	cache      *modulecache.Cache
	dispatcher *dispatch.Dispatcher
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	resolver     ports.PathResolver
	runtimes     ports.RuntimeFactory
	tracer       ports.Tracer
	connector    ports.DaemonConnector

	mu      sync.Mutex
	opts    Options
	config  *domain.Config
	engine  *engine
	closing bool
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	resolver ports.PathResolver,
	runtimes ports.RuntimeFactory,
	tracer ports.Tracer,
	connector ports.DaemonConnector,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		resolver:     resolver,
		runtimes:     runtimes,
		tracer:       tracer,
		connector:    connector,
	}
}

// Configure loads the configuration and applies the log settings. Command line
// flags win over the file.
func (a *App) Configure(opts Options) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.opts = opts
	a.config = nil
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	if s, ok := a.logger.(logSettings); ok {
		level := cfg.LogLevel
		if opts.Verbose {
			level = slog.LevelDebug
		}
		s.SetLevel(level)
		s.SetJSON(cfg.LogJSON || opts.JSON)
	}
	return nil
}

// Config returns the loaded configuration.
func (a *App) Config() (domain.Config, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadConfig()
}

func (a *App) loadConfig() (domain.Config, error) {
	if a.config != nil {
		return *a.config, nil
	}
	cfg, err := a.configLoader.Load(a.opts.ConfigPath)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
	}
	a.config = &cfg
	return cfg, nil
}

// ensureEngine builds the runtime, module cache and dispatcher on first use.
func (a *App) ensureEngine() (*engine, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.engine != nil {
		return a.engine, nil
	}
	if a.closing {
		return nil, zerr.Wrap(domain.ErrCacheLoad, "engine is closed")
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	rt := a.runtimes.NewRuntime(cfg.Extensions)
	if err := addSearchPath(rt, cfg.SearchPath); err != nil {
		_ = rt.Close()
		return nil, err
	}

	cache := modulecache.New(a.resolver, rt, a.logger, a.tracer, modulecache.Options{
		Extensions: cfg.Extensions,
		Freshness:  cfg.FreshnessCheck,
	})
	a.engine = &engine{
		runtime:    rt,
		cache:      cache,
		dispatcher: dispatch.New(cache, rt, a.logger, a.tracer),
	}
	a.logger.Debug("engine ready",
		"extensions", strings.Join(cfg.Extensions, ","),
		"freshness", cfg.FreshnessCheck,
		"search_path", len(cfg.SearchPath),
	)
	return a.engine, nil
}

func addSearchPath(rt ports.ScriptRuntime, dirs []string) error {
	rt.Lock()
	defer rt.Unlock()
	for _, dir := range dirs {
		if err := rt.AddSearchDir(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to add search directory"), "dir", dir)
		}
	}
	return nil
}

// Call runs a script function in process.
func (a *App) Call(ctx context.Context, req ports.CallRequest) (domain.Grid, error) {
	args, err := domain.NewArgs(req.Args...)
	if err != nil {
		return domain.Grid{}, err
	}
	e, err := a.ensureEngine()
	if err != nil {
		return domain.Grid{}, err
	}
	return e.dispatcher.Call(domain.WithCaller(ctx, req.Caller), req.File, req.Function, args)
}

// Freshness sets the freshness flag when set is non-nil and returns the current value.
func (a *App) Freshness(set *bool) (bool, error) {
	e, err := a.ensureEngine()
	if err != nil {
		return false, err
	}
	if set != nil {
		e.cache.SetFreshnessChecking(*set)
		a.logger.Debug("freshness checking changed", "enabled", *set)
	}
	return e.cache.IsFreshnessChecking(), nil
}

// LoadedLibrary returns the location of a named loaded component.
func (a *App) LoadedLibrary(name string) (string, error) {
	switch {
	case strings.EqualFold(name, LibraryGridscript):
		exe, err := os.Executable()
		if err != nil {
			return "", zerr.Wrap(err, "failed to determine executable path")
		}
		return exe, nil
	case strings.EqualFold(name, LibraryLua):
		return luavm.Library(), nil
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownLibrary, ""), "library", name)
	}
}

// Stats returns a snapshot of the module cache. Nothing is loaded before the first call.
func (a *App) Stats() (domain.CacheStats, error) {
	e, err := a.ensureEngine()
	if err != nil {
		return domain.CacheStats{}, err
	}
	return e.cache.Stats(), nil
}

// Close releases every cached module and the runtime.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.closing = true
	if a.engine == nil {
		return nil
	}
	err := errors.Join(a.engine.cache.Close(), a.engine.runtime.Close())
	a.engine = nil
	return err
}
