package daemon

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	pollInterval    = 100 * time.Millisecond
	maxPollDuration = 5 * time.Second
	readyTimeout    = time.Second
)

var _ ports.DaemonConnector = (*Connector)(nil)

// Connector implements ports.DaemonConnector.
type Connector struct {
	executablePath string
}

// NewConnector creates a new daemon connector that spawns the running executable.
func NewConnector() (*Connector, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to determine executable path")
	}
	return &Connector{executablePath: exe}, nil
}

// Connect returns a client, spawning the daemon if necessary.
func (c *Connector) Connect(ctx context.Context, target ports.DaemonTarget) (ports.DaemonClient, error) {
	if client, err := c.Dial(ctx, target.SocketPath); err == nil {
		return client, nil
	}

	if err := c.Spawn(ctx, target); err != nil {
		return nil, err
	}

	client, err := c.Dial(ctx, target.SocketPath)
	if err != nil {
		return nil, zerr.Wrap(err, "daemon started but is not responsive")
	}
	return client, nil
}

// Dial returns a client to a daemon that answers on socketPath.
func (c *Connector) Dial(ctx context.Context, socketPath string) (ports.DaemonClient, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrDaemonNotRunning, "no socket"), "socket", socketPath)
	}

	client, err := Dial(socketPath)
	if err != nil {
		return nil, err
	}

	readyCtx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	if _, err := client.Status(readyCtx); err != nil {
		_ = client.Close()
		return nil, zerr.With(zerr.Wrap(domain.ErrDaemonNotRunning, err.Error()), "socket", socketPath)
	}
	return client, nil
}

// IsRunning checks if the daemon is running and responsive.
func (c *Connector) IsRunning(ctx context.Context, socketPath string) bool {
	client, err := c.Dial(ctx, socketPath)
	if err != nil {
		return false
	}
	_ = client.Close()
	return true
}

// Spawn starts the daemon process in the background and waits until it answers.
func (c *Connector) Spawn(ctx context.Context, target ports.DaemonTarget) error {
	if target.SocketPath == "" {
		return zerr.Wrap(domain.ErrDaemonSpawnFailed, "socket path cannot be empty")
	}

	socketPath, err := filepath.Abs(target.SocketPath)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve absolute socket path")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(socketPath), domain.DirPerm); mkdirErr != nil {
		return zerr.Wrap(mkdirErr, "failed to create daemon directory")
	}

	logPath := domain.LogPathFor(socketPath)
	//nolint:gosec // G304: logPath sits next to the configured socket
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.PrivateFilePerm)
	if err != nil {
		return zerr.Wrap(err, "failed to open daemon log")
	}

	args := []string{"serve", "--socket", socketPath}
	if target.ConfigPath != "" {
		args = append(args, "--config", target.ConfigPath)
	}

	//nolint:gosec // G204: executablePath is the running binary
	cmd := exec.Command(c.executablePath, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		_ = logFile.Close()
		return zerr.With(errors.Join(domain.ErrDaemonSpawnFailed, err), "executable", c.executablePath)
	}

	go func() {
		_ = cmd.Wait()
		_ = logFile.Close()
	}()

	return c.waitForDaemonStartup(ctx, socketPath)
}

// waitForDaemonStartup waits for the daemon to become responsive.
func (c *Connector) waitForDaemonStartup(ctx context.Context, socketPath string) error {
	start := time.Now()
	for time.Since(start) < maxPollDuration {
		if c.IsRunning(ctx, socketPath) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
	return zerr.With(zerr.Wrap(domain.ErrDaemonSpawnFailed, "daemon failed to start within timeout"),
		"log", domain.LogPathFor(socketPath))
}
