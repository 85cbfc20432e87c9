package source

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeBMP(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, bmp.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 4, 4)
	writePNG(t, filepath.Join(dir, "A.PNG"), 4, 4)
	writeBMP(t, filepath.Join(dir, "c.bmp"), 4, 4)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755))

	paths, err := NewFolderRepository().Scan(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "A.PNG"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.bmp"),
	}, paths)
}

func TestScan_MissingFolder(t *testing.T) {
	_, err := NewFolderRepository().Scan(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	repo := NewFolderRepository()

	t.Run("png", func(t *testing.T) {
		path := filepath.Join(dir, "a.png")
		writePNG(t, path, 7, 3)
		img, err := repo.Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, image.Pt(7, 3), img.Bounds().Size())
	})

	t.Run("bmp", func(t *testing.T) {
		path := filepath.Join(dir, "a.bmp")
		writeBMP(t, path, 5, 6)
		img, err := repo.Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, image.Pt(5, 6), img.Bounds().Size())
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(dir, "fake.jpg")
		require.NoError(t, os.WriteFile(path, []byte("plain text, not a jpeg"), 0o644))
		_, err := repo.Load(context.Background(), path)
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := repo.Load(ctx, filepath.Join(dir, "a.png"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDimensions(t *testing.T) {
	dir := t.TempDir()
	repo := NewFolderRepository()

	path := filepath.Join(dir, "a.bmp")
	writeBMP(t, path, 12, 9)
	size, err := repo.Dimensions(path)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(12, 9), size)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	_, err = repo.Dimensions(bad)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}
