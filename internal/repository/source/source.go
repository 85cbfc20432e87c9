package source

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"logo-applier/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
)

var allowedMIME = []string{"image/jpeg", "image/png", "image/bmp", "image/x-ms-bmp", "image/gif"}

// FolderRepository lists and opens the images of a source folder.
type FolderRepository struct {
	extensions []string
}

func NewFolderRepository() *FolderRepository {
	return &FolderRepository{extensions: domain.SupportedExtensions}
}

// Scan returns the supported images directly inside folder, sorted by path.
// Sub-directories are not descended into.
func (r *FolderRepository) Scan(folder string) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read source folder: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if r.supported(entry.Name()) {
			paths = append(paths, filepath.Join(folder, entry.Name()))
		}
	}

	slices.Sort(paths)
	return paths, nil
}

func (r *FolderRepository) supported(name string) bool {
	return slices.Contains(r.extensions, strings.ToLower(filepath.Ext(name)))
}

// Load sniffs the file content before decoding it, so a file with an image
// extension but other content fails with ErrUnsupportedImage.
func (r *FolderRepository) Load(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := sniff(path); err != nil {
		return nil, err
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	return img, nil
}

// Dimensions reads only the image header.
func (r *FolderRepository) Dimensions(path string) (image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Point{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Point{}, fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, filepath.Base(path), err)
	}

	return image.Pt(cfg.Width, cfg.Height), nil
}

func sniff(path string) error {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	for _, allowed := range allowedMIME {
		if mtype.Is(allowed) {
			return nil
		}
	}

	return fmt.Errorf("%w: %s is %s", ErrUnsupportedImage, filepath.Base(path), mtype.String())
}
