package ports

import (
	"context"
	"time"

	"go.trai.ch/gridscript/internal/core/domain"
)

//go:generate mockgen -source=daemon.go -destination=mocks/mock_daemon.go -package=mocks

// DaemonStatus represents the current state of the daemon.
type DaemonStatus struct {
	Running       bool
	PID           int
	Uptime        time.Duration
	LastActivity  time.Time
	IdleRemaining time.Duration
	Cache         domain.CacheStats
}

// CallRequest is a single function call sent to the daemon.
type CallRequest struct {
	File     string
	Function string
	Args     []domain.Grid
	Caller   domain.Caller
}

// DaemonClient defines the interface for communicating with the daemon.
type DaemonClient interface {
	// Call runs a script function in the daemon.
	Call(ctx context.Context, req CallRequest) (domain.Grid, error)

	// Freshness sets the freshness flag when set is non-nil and returns the current value.
	Freshness(ctx context.Context, set *bool) (bool, error)

	// LoadedLibrary returns the location of a named component loaded by the daemon.
	LoadedLibrary(ctx context.Context, name string) (string, error)

	// Status returns the current daemon status.
	Status(ctx context.Context) (*DaemonStatus, error)

	// Shutdown requests a graceful daemon shutdown.
	Shutdown(ctx context.Context) error

	// Close releases client resources.
	Close() error
}

// DaemonTarget identifies the daemon a CLI invocation talks to.
type DaemonTarget struct {
	// SocketPath is the daemon's Unix domain socket.
	SocketPath string
	// ConfigPath is passed to a spawned daemon when the CLI was given one explicitly.
	ConfigPath string
}

// DaemonConnector manages daemon lifecycle from the CLI perspective.
type DaemonConnector interface {
	// Connect returns a client to the daemon, spawning it if necessary.
	Connect(ctx context.Context, target DaemonTarget) (DaemonClient, error)

	// Dial returns a client to an already running daemon.
	// It fails with domain.ErrDaemonNotRunning when nothing answers on socketPath.
	Dial(ctx context.Context, socketPath string) (DaemonClient, error)

	// IsRunning checks if a responsive daemon listens on socketPath.
	IsRunning(ctx context.Context, socketPath string) bool
}

// Engine is the in-process call path. The CLI runs it directly and the daemon
// serves it over its socket.
type Engine interface {
	// Call runs a script function.
	Call(ctx context.Context, req CallRequest) (domain.Grid, error)

	// Freshness sets the freshness flag when set is non-nil and returns the current value.
	Freshness(set *bool) (bool, error)

	// LoadedLibrary returns the location of a named loaded component.
	LoadedLibrary(name string) (string, error)

	// Stats returns a snapshot of the module cache.
	Stats() (domain.CacheStats, error)
}
