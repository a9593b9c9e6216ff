package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWhenNoFilesPresent(t *testing.T) {
	loader := NewLoader(t.TempDir(), Development)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "eager", cfg.Traversal.DefaultStrategy)
	assert.Equal(t, 1.0, cfg.Observability.TraceSampleRate)
	assert.Contains(t, cfg.LoadedFrom, "defaults")
}

func TestLoadOverlaysBaseThenEnvironmentFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("traversal:\n  start_k: 8\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "production.yaml"), []byte("traversal:\n  start_k: 16\n"), 0o644))

	cfg, err := NewLoader(dir, Production).Load()
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Traversal.StartK, "environment file must win over base")
}

func TestLoadEnvironmentVariableOverridesFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("server:\n  port: 9000\n"), 0o644))

	t.Setenv("GRAPHTRAVERSE_SERVER_PORT", "9100")
	cfg, err := NewLoader(dir, Development).Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
}

func TestLoadRejectsInvalidStrategyName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("traversal:\n  default_strategy: bogus\n"), 0o644))

	_, err := NewLoader(dir, Development).Load()
	assert.Error(t, err)
}

func TestValidateRejectsOutOfRangePort(t *testing.T) {
	cfg := defaultConfig(Development)
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMMRLambdaOutOfRange(t *testing.T) {
	cfg := defaultConfig(Development)
	cfg.Traversal.MMRLambda = 1.5
	assert.Error(t, cfg.Validate())
}
