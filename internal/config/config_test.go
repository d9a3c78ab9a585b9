package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, 100*time.Millisecond, cfg.ProgressInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.History.Path)

	cfg, err = Load(filepath.Join(dir, "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".bitbench.yml", `
workers: 3
progress_interval: 250ms
log_level: debug
history:
  in_memory: true
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 250*time.Millisecond, cfg.ProgressInterval)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.True(t, cfg.History.InMemory)
	assert.Empty(t, cfg.History.Path)
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "custom.yaml", "history:\n  disabled: true\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.History.Disabled)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad level", "log_level: verbose\n", "LogLevel"},
		{"too many workers", "workers: 5000\n", "Workers"},
		{"negative workers", "workers: -1\n", "Workers"},
		{"malformed", "workers: [\n", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), ".bitbench.yml", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLevel(t *testing.T) {
	t.Parallel()

	for level, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	} {
		c := Config{LogLevel: level}
		assert.Equal(t, want, c.Level(), level)
	}
}
