// Package config provides the configuration loader for gridscript.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path. With an empty path the file named by
// $GRIDSCRIPT_CONFIG is used, then gridscript.yaml in the working directory.
// A discovered file that does not exist yields the defaults; an explicitly named
// one must exist.
func (l *Loader) Load(path string) (domain.Config, error) {
	configPath, explicit, err := l.findConfiguration(path)
	if err != nil {
		return domain.Config{}, err
	}
	if configPath == "" {
		l.Logger.Debug("no config file found, using defaults")
		return domain.DefaultConfig(), nil
	}

	var file Configfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, zerr.With(err, "path", configPath)
	}

	cfg, err := resolve(&file, filepath.Dir(configPath))
	if err != nil {
		return domain.Config{}, zerr.With(err, "path", configPath)
	}
	l.Logger.Debug("loaded config", "path", configPath)
	return cfg, nil
}

func (l *Loader) findConfiguration(path string) (configPath string, explicit bool, err error) {
	if path != "" {
		return path, true, nil
	}
	if env := os.Getenv(domain.ConfigEnvVar); env != "" {
		return env, true, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Join(domain.ErrConfigRead, err)
	}
	candidate := filepath.Join(cwd, domain.ConfigFileName)
	if _, err := os.Stat(candidate); err != nil {
		return "", false, nil
	}
	return candidate, false, nil
}

// resolve applies the file on top of the defaults. Relative search path entries
// are taken relative to the config file's directory.
func resolve(file *Configfile, baseDir string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if file.FreshnessCheck != nil {
		cfg.FreshnessCheck = *file.FreshnessCheck
	}

	if len(file.Extensions) > 0 {
		exts := make([]string, 0, len(file.Extensions))
		for _, ext := range file.Extensions {
			ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
			if ext == "" || strings.ContainsAny(ext, `./\`) {
				return cfg, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "invalid extension"), "extension", ext)
			}
			exts = append(exts, ext)
		}
		cfg.Extensions = exts
	}

	for _, dir := range file.SearchPath {
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(baseDir, dir)
		}
		cfg.SearchPath = append(cfg.SearchPath, filepath.Clean(dir))
	}

	if file.Log.Level != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(file.Log.Level)); err != nil {
			return cfg, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "invalid log level"), "level", file.Log.Level)
		}
		cfg.LogLevel = level
	}
	if file.Log.JSON != nil {
		cfg.LogJSON = *file.Log.JSON
	}

	if file.Daemon.Socket != "" {
		socket := file.Daemon.Socket
		if !filepath.IsAbs(socket) {
			socket = filepath.Join(baseDir, socket)
		}
		cfg.SocketPath = socket
	}
	if file.Daemon.IdleTimeout != "" {
		d, err := time.ParseDuration(file.Daemon.IdleTimeout)
		if err != nil || d <= 0 {
			return cfg, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "invalid idle timeout"), "idle_timeout", file.Daemon.IdleTimeout)
		}
		cfg.IdleTimeout = d
	}

	return cfg, nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is chosen by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Join(domain.ErrConfigRead, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(configFile))
	dec.KnownFields(true)
	if parseErr := dec.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return errors.Join(domain.ErrConfigParse, parseErr)
	}

	return nil
}
