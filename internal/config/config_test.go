package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, 1000, cfg.Processing.PreviewMaxWidth)
	assert.Equal(t, 900, cfg.Processing.PreviewMaxHeight)
	assert.Equal(t, 15, cfg.Processing.DefaultPadding)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel())

	strategy := cfg.DefaultRetryStrategy()
	assert.Equal(t, 3, strategy.Attempts)
	assert.Equal(t, 200*time.Millisecond, strategy.Delay)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
log:
  level: debug
storage:
  type: minio
  minio:
    bucket: stamped
kafka:
  brokers: ["k1:9092", "k2:9092"]
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("SETTINGS_PATH", "/tmp/s.json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "minio", cfg.Storage.Type)
	assert.Equal(t, "stamped", cfg.Storage.MinIO.Bucket)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "/tmp/s.json", cfg.Settings.Path)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  type: ftp\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
