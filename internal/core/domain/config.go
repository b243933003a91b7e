package domain

import (
	"log/slog"
	"time"
)

// Config holds the resolved runtime settings.
type Config struct {
	// FreshnessCheck is the initial value of the module freshness toggle.
	FreshnessCheck bool
	// Extensions lists the recognized script extensions without leading periods.
	Extensions []string
	// SearchPath lists directories added to the runtime search path at startup.
	SearchPath []string
	// LogLevel is the minimum level logged.
	LogLevel slog.Level
	// LogJSON forces JSON log output.
	LogJSON bool
	// SocketPath is the daemon's Unix domain socket.
	SocketPath string
	// IdleTimeout is how long the daemon stays up without requests.
	IdleTimeout time.Duration
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig() Config {
	return Config{
		FreshnessCheck: true,
		Extensions:     []string{DefaultExtension},
		LogLevel:       slog.LevelInfo,
		SocketPath:     DefaultDaemonSocketPath(),
		IdleTimeout:    DefaultIdleTimeout,
	}
}
