package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"logo-applier/internal/repository/output"
)

// FileRepository writes processed images to the local filesystem.
type FileRepository struct{}

func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// Ensure creates dest and its parents when missing.
func (r *FileRepository) Ensure(ctx context.Context, dest string) error {
	if dest == "" {
		return fmt.Errorf("%w: empty destination", output.ErrStorageValidation)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create destination: %v", output.ErrStorage, err)
	}
	return nil
}

// Save writes data to dest/name, replacing any existing file, and returns the
// written path. A partially written file is removed.
func (r *FileRepository) Save(ctx context.Context, dest, name string, data io.Reader, size int64, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if dest == "" || name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: bad output path %q/%q", output.ErrStorageValidation, dest, name)
	}

	if err := r.Ensure(ctx, dest); err != nil {
		return "", err
	}

	path := filepath.Join(dest, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create %s: %v", output.ErrStorage, path, err)
	}

	written, err := io.Copy(f, data)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && size >= 0 && written != size {
		err = fmt.Errorf("short write: %d of %d bytes", written, size)
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: failed to write %s: %v", output.ErrStorage, path, err)
	}

	return path, nil
}
