package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 120, cfg.Session.TimeoutSeconds)
	assert.Equal(t, time.Second, cfg.Session.TickInterval)
	assert.Equal(t, 2500*time.Millisecond, cfg.Loan.Delay)
	assert.Equal(t, 0.1, cfg.Loan.CollateralRatio)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Audit.Enabled)
	assert.Equal(t, "bankist:events", cfg.Events.RedisChannel)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yml := "session:\n  timeout_seconds: 30\nloan:\n  delay: 1s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))
	t.Setenv("BANKIST_SERVER_PORT", "9090")
	t.Setenv("BANKIST_DATABASE_PASSWORD", "s3cret")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Session.TimeoutSeconds)
	assert.Equal(t, time.Second, cfg.Loan.Delay)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Database.Password)
}

func TestLoad_BrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("session: [\n"), 0o600))

	_, err := Load(dir)
	assert.Error(t, err)
}
