package app

import (
	"context"
	"errors"
	"path/filepath"

	"go.trai.ch/gridscript/internal/adapters/daemon"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/zerr"
)

// Target selects where a command runs.
type Target int

const (
	// InProcess runs the command in this process.
	InProcess Target = iota
	// Daemon runs the command in the background daemon, spawning it when needed.
	Daemon
)

// Invoke runs a script function on target.
func (a *App) Invoke(ctx context.Context, target Target, req ports.CallRequest) (domain.Grid, error) {
	if target == InProcess {
		return a.Call(ctx, req)
	}
	return withDaemon(ctx, a, func(c ports.DaemonClient) (domain.Grid, error) {
		return c.Call(ctx, req)
	})
}

// SetFreshness queries or sets the freshness flag on target.
func (a *App) SetFreshness(ctx context.Context, target Target, set *bool) (bool, error) {
	if target == InProcess {
		return a.Freshness(set)
	}
	return withDaemon(ctx, a, func(c ports.DaemonClient) (bool, error) {
		return c.Freshness(ctx, set)
	})
}

// Library returns the location of a loaded component on target.
func (a *App) Library(ctx context.Context, target Target, name string) (string, error) {
	if target == InProcess {
		return a.LoadedLibrary(name)
	}
	return withDaemon(ctx, a, func(c ports.DaemonClient) (string, error) {
		return c.LoadedLibrary(ctx, name)
	})
}

func withDaemon[T any](ctx context.Context, a *App, fn func(ports.DaemonClient) (T, error)) (T, error) {
	var zero T
	target, err := a.daemonTarget()
	if err != nil {
		return zero, err
	}
	client, err := a.connector.Connect(ctx, target)
	if err != nil {
		return zero, err
	}
	defer func() { _ = client.Close() }()
	return fn(client)
}

func (a *App) daemonTarget() (ports.DaemonTarget, error) {
	a.mu.Lock()
	cfg, err := a.loadConfig()
	path := a.opts.ConfigPath
	a.mu.Unlock()
	if err != nil {
		return ports.DaemonTarget{}, err
	}

	target := ports.DaemonTarget{SocketPath: cfg.SocketPath}
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return ports.DaemonTarget{}, zerr.Wrap(err, "failed to resolve config path")
		}
		target.ConfigPath = abs
	}
	return target, nil
}

// Serve runs the daemon in the foreground until it is stopped, idles out or ctx ends.
// An empty socketPath uses the configured one.
func (a *App) Serve(ctx context.Context, socketPath string) error {
	cfg, err := a.Config()
	if err != nil {
		return err
	}
	if socketPath == "" {
		socketPath = cfg.SocketPath
	}
	defer func() { _ = a.Close() }()

	lifecycle := daemon.NewLifecycle(cfg.IdleTimeout)
	server := daemon.NewServer(a, lifecycle, a.logger, socketPath)
	if err := server.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// DaemonStatus reports on the daemon. A daemon that is not running is not an error.
func (a *App) DaemonStatus(ctx context.Context) (*ports.DaemonStatus, error) {
	target, err := a.daemonTarget()
	if err != nil {
		return nil, err
	}
	client, err := a.connector.Dial(ctx, target.SocketPath)
	if errors.Is(err, domain.ErrDaemonNotRunning) {
		return &ports.DaemonStatus{Running: false}, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Close() }()
	return client.Status(ctx)
}

// StopDaemon asks a running daemon to shut down. It reports whether one was running.
func (a *App) StopDaemon(ctx context.Context) (bool, error) {
	target, err := a.daemonTarget()
	if err != nil {
		return false, err
	}
	client, err := a.connector.Dial(ctx, target.SocketPath)
	if errors.Is(err, domain.ErrDaemonNotRunning) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer func() { _ = client.Close() }()

	if err := client.Shutdown(ctx); err != nil {
		return true, zerr.Wrap(err, "failed to stop daemon")
	}
	a.logger.Debug("daemon stopped", "socket", target.SocketPath)
	return true, nil
}
