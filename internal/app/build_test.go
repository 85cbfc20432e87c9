package app

import (
	"path/filepath"
	"testing"

	"logo-applier/internal/config"
	"logo-applier/internal/repository/output/cloud/minio"
	"logo-applier/internal/repository/output/local"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	cfg.Settings.Path = filepath.Join(t.TempDir(), "settings.json")
	return cfg
}

func TestBuild(t *testing.T) {
	zlog.Init()
	c, err := Build(testConfig(t), &zlog.Logger)
	require.NoError(t, err)
	assert.NotNil(t, c.Apply)
	assert.NotNil(t, c.Settings)
}

func TestNewStorage(t *testing.T) {
	zlog.Init()
	cfg := testConfig(t)

	s, err := newStorage(cfg, &zlog.Logger)
	require.NoError(t, err)
	assert.IsType(t, &local.FileRepository{}, s)

	cfg.Storage.Type = "minio"
	s, err = newStorage(cfg, &zlog.Logger)
	require.NoError(t, err)
	assert.IsType(t, &minio.FileRepository{}, s)
}
