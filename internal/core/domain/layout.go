package domain

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// ConfigFileName is the name of the configuration file looked up in the working directory.
	ConfigFileName = "gridscript.yaml"

	// ConfigEnvVar names the environment variable that points at a configuration file.
	ConfigEnvVar = "GRIDSCRIPT_CONFIG"

	// StateDirName is the name of the per-user state directory.
	StateDirName = "gridscript"

	// DaemonSocketName is the file name of the daemon's Unix domain socket.
	DaemonSocketName = "daemon.sock"

	// DaemonPIDName is the file name of the daemon's PID file.
	DaemonPIDName = "daemon.pid"

	// DaemonLogName is the file name of a spawned daemon's log.
	DaemonLogName = "daemon.log"

	// DefaultExtension is the script extension recognized when none is configured.
	DefaultExtension = "lua"

	// DefaultIdleTimeout is how long the daemon waits for a request before exiting.
	DefaultIdleTimeout = 3 * time.Hour

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600

	// SocketPerm is the permission of the daemon socket (rw-------).
	SocketPerm = 0o600
)

// DefaultStateDir returns the directory holding the daemon socket and PID file.
// It prefers the user cache directory and falls back to the temp directory.
func DefaultStateDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, StateDirName)
	}
	return filepath.Join(os.TempDir(), StateDirName)
}

// DefaultDaemonSocketPath returns the default path of the daemon socket.
func DefaultDaemonSocketPath() string {
	return filepath.Join(DefaultStateDir(), DaemonSocketName)
}

// PIDPathFor returns the PID file that sits next to the given socket.
func PIDPathFor(socketPath string) string {
	return filepath.Join(filepath.Dir(socketPath), DaemonPIDName)
}

// LogPathFor returns the daemon log file that sits next to the given socket.
func LogPathFor(socketPath string) string {
	return filepath.Join(filepath.Dir(socketPath), DaemonLogName)
}
