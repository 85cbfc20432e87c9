package settings

import (
	"os"
	"path/filepath"
	"testing"

	"logo-applier/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/zlog"
)

func testLogger() *zlog.Zerolog {
	zlog.Init()
	return &zlog.Logger
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "settings.json"), testLogger())

	s := repo.Load()

	assert.Equal(t, domain.ModeManual, s.PositionMode)
	assert.Equal(t, domain.CornerTopLeft, s.FixedPosition)
	assert.Equal(t, 10, s.LogoSizePercent)
	assert.Equal(t, 2, s.MarginPercent)
	assert.Equal(t, domain.ColorNone, s.BgColor)
	assert.Equal(t, domain.ShapeRectangle, s.BgShape)
	assert.Empty(t, s.SourceFolder)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"source_folder":"/in","margin_percent":15,"logo_size_percent":7}`), 0o644))

	s := NewFileRepository(path, testLogger()).Load()

	assert.Equal(t, "/in", s.SourceFolder)
	assert.Equal(t, 15, s.MarginPercent)
	assert.Equal(t, 10, s.LogoSizePercent, "values outside the allowed set fall back")
	assert.Equal(t, domain.ShapeRectangle, s.BgShape)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	assert.Equal(t, Default(), NewFileRepository(path, testLogger()).Load())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	repo := NewFileRepository(path, testLogger())

	job := domain.ProcessingJob{
		SourceFolder: "/in",
		LogoFile:     "/logo.png",
		DestFolder:   "/out",
		Options: domain.Options{
			LogoSizePercent: 20,
			MarginPercent:   5,
			PositionMode:    domain.ModeFixed,
			FixedPosition:   domain.CornerBottomRight,
			BgColor:         "sky_blue",
			BgShape:         domain.ShapeOval,
			Padding:         15,
		},
	}

	require.NoError(t, repo.Save(FromJob(job)))

	got := repo.Load()
	assert.Equal(t, FromJob(job), got)
	assert.Equal(t, job.Options, got.Options(15))
}

func TestSave_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := NewFileRepository(filepath.Join(blocker, "settings.json"), testLogger()).Save(Default())
	assert.Error(t, err)
}
