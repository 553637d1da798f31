package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "UTC", cfg.Database.TimeZone)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 365*24*time.Hour, cfg.Session.RememberDuration)
	// debug profile always hashes cheaply
	assert.Equal(t, 4, cfg.Bcrypt.Cost)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
  port: "9000"
database:
  host: db
  dbname: exams
session:
  secret: "0123456789abcdef0123456789abcdef"
  remember_duration: 720h
bcrypt:
  cost: 10
`)
	t.Setenv("DATABASE_PASSWORD", "s3cret")
	t.Setenv("BCRYPT_LOG_ROUNDS", "11")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 11, cfg.Bcrypt.Cost)
	assert.Equal(t, 720*time.Hour, cfg.Session.RememberDuration)
	assert.Contains(t, cfg.Database.DSN(), "dbname=exams")
	assert.Contains(t, cfg.Database.DSN(), "TimeZone=UTC")
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "short secret in release",
			body: "server:\n  mode: release\nsession:\n  secret: short\n",
		},
		{
			name: "bcrypt cost too high",
			body: "server:\n  mode: release\nsession:\n  secret: \"0123456789abcdef0123456789abcdef\"\nbcrypt:\n  cost: 40\n",
		},
		{
			name: "unknown mode",
			body: "server:\n  mode: staging\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
