package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: 9090
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: vendorvet
  password: secret
  name: vendorvet
  sslMode: require
auth:
  apiKeys:
    acme: key-123
rateLimit:
  capacity: 10
  refillRate: 2
scoring:
  high: 20
  medium: 8
  low: 2
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "key-123", cfg.Auth.APIKeys["acme"])
	assert.Equal(t, 10, cfg.RateLimit.Capacity)
	assert.Equal(t, 20, cfg.Scoring.High)
	assert.Equal(t, 8, cfg.Scoring.Medium)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "database:\n  host: localhost\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 60, cfg.RateLimit.Capacity)
	assert.Equal(t, 1, cfg.RateLimit.RefillRate)
	assert.Equal(t, 15, cfg.Scoring.High)
	assert.Equal(t, 5, cfg.Scoring.Medium)
	assert.Equal(t, 1, cfg.Scoring.Low)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = 3306
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Name = "vendorvet"
	cfg.Database.SSLMode = "disable"

	assert.Equal(t,
		"app:pw@tcp(db.internal:3306)/vendorvet?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.MySQLDSN())
	assert.Equal(t,
		"host=db.internal port=3306 user=app password=pw dbname=vendorvet sslmode=disable",
		cfg.PostgresDSN())
}
