package config_test

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gridscript/internal/adapters/config"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func TestLoader_Load_FullFile(t *testing.T) {
	dir := t.TempDir()
	path := createFile(t, dir, domain.ConfigFileName, `
freshness_check: false
extensions: [".lua", "script"]
search_path:
  - lib
  - /opt/shared
log:
  level: debug
  json: true
daemon:
  socket: run/engine.sock
  idle_timeout: 45m
`)

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.FreshnessCheck)
	assert.Equal(t, []string{"lua", "script"}, cfg.Extensions)
	assert.Equal(t, []string{filepath.Join(dir, "lib"), filepath.Clean("/opt/shared")}, cfg.SearchPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, filepath.Join(dir, "run", "engine.sock"), cfg.SocketPath)
	assert.Equal(t, 45*time.Minute, cfg.IdleTimeout)
}

func TestLoader_Load_PartialFileKeepsDefaults(t *testing.T) {
	path := createFile(t, t.TempDir(), "partial.yaml", "log:\n  level: warn\n")

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)

	want := domain.DefaultConfig()
	want.LogLevel = slog.LevelWarn
	assert.Equal(t, want, cfg)
}

func TestLoader_Load_EmptyFile(t *testing.T) {
	path := createFile(t, t.TempDir(), "empty.yaml", "")

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoader_Load_Discovery(t *testing.T) {
	t.Run("working directory", func(t *testing.T) {
		dir := t.TempDir()
		createFile(t, dir, domain.ConfigFileName, "freshness_check: false\n")
		t.Chdir(dir)
		t.Setenv(domain.ConfigEnvVar, "")

		cfg, err := newLoader(t).Load("")
		require.NoError(t, err)
		assert.False(t, cfg.FreshnessCheck)
	})

	t.Run("environment wins over working directory", func(t *testing.T) {
		dir := t.TempDir()
		createFile(t, dir, domain.ConfigFileName, "freshness_check: false\n")
		envFile := createFile(t, t.TempDir(), "env.yaml", "extensions: [py]\n")
		t.Chdir(dir)
		t.Setenv(domain.ConfigEnvVar, envFile)

		cfg, err := newLoader(t).Load("")
		require.NoError(t, err)
		assert.True(t, cfg.FreshnessCheck)
		assert.Equal(t, []string{"py"}, cfg.Extensions)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv(domain.ConfigEnvVar, "")

		cfg, err := newLoader(t).Load("")
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultConfig(), cfg)
	})
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"bad yaml", "extensions: [lua\n", domain.ErrConfigParse},
		{"unknown key", "freshness: true\n", domain.ErrConfigParse},
		{"bad level", "log:\n  level: loud\n", domain.ErrInvalidConfig},
		{"bad timeout", "daemon:\n  idle_timeout: soon\n", domain.ErrInvalidConfig},
		{"negative timeout", "daemon:\n  idle_timeout: -1m\n", domain.ErrInvalidConfig},
		{"empty extension", "extensions: [\".\"]\n", domain.ErrInvalidConfig},
		{"dotted extension", "extensions: [tar.gz]\n", domain.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createFile(t, t.TempDir(), "bad.yaml", tt.content)
			_, err := newLoader(t).Load(path)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoader_Load_ExplicitMissingFile(t *testing.T) {
	_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, domain.ErrConfigRead)
	require.ErrorIs(t, err, fs.ErrNotExist)
}
