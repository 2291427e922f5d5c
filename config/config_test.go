package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
  name: crew
kafka:
  brokers: ["k1:9092", "k2:9092"]
auth:
  jwt_secret: s3cret
scanner:
  event_timeout_ms: 500
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "bottle-events", cfg.Kafka.BottleEventsTopic)
	assert.Equal(t, 500, cfg.Scanner.EventTimeoutMs)
	assert.Equal(t, 60, cfg.Scanner.KnownCodesCacheTTL)
	assert.Equal(t, 10.0, cfg.Scanner.LowFillThresholdPct)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "host=db.internal port=5432 user=postgres password= dbname=crew sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: from-file
log:
  level: info
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_BROKERS", "a:1,b:2")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Kafka.Brokers)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "http: [unclosed"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "http:\n  address: \":8081\"\n"))
	assert.ErrorContains(t, err, "jwt_secret")
}
