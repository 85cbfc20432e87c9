package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"logo-applier/internal/config"
	"logo-applier/internal/repository/output"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// FileRepository stores processed images as objects. The destination of a
// run becomes the object key prefix.
type FileRepository struct {
	client  *minio.Client
	bucket  string
	retries retry.Strategy
	logger  *zlog.Zerolog
}

func NewMinIORepository(cfg *config.Config, retries retry.Strategy, logger *zlog.Zerolog) (*FileRepository, error) {
	mc := cfg.Storage.MinIO

	client, err := minio.New(mc.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(mc.AccessKey, mc.SecretKey, ""),
		Secure: mc.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &FileRepository{
		client:  client,
		bucket:  mc.Bucket,
		retries: retries,
		logger:  logger,
	}, nil
}

// Ensure creates the bucket when it does not exist yet. Prefixes need no
// preparation.
func (r *FileRepository) Ensure(ctx context.Context, dest string) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("%w: failed to check bucket: %v", output.ErrStorage, err)
	}
	if exists {
		return nil
	}

	if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("%w: failed to create bucket: %v", output.ErrStorage, err)
	}

	r.logger.Info().Str("bucket", r.bucket).Msg("Bucket created")
	return nil
}

// Save uploads data under ObjectKey(dest, name). Non-seekable readers are
// buffered so every retry resends the full body.
func (r *FileRepository) Save(ctx context.Context, dest, name string, data io.Reader, size int64, contentType string) (string, error) {
	key := ObjectKey(dest, name)
	if key == "" {
		return "", fmt.Errorf("%w: empty object key", output.ErrStorageValidation)
	}

	body, ok := data.(io.ReadSeeker)
	if !ok {
		buf, err := io.ReadAll(data)
		if err != nil {
			return "", fmt.Errorf("%w: failed to read %s: %v", output.ErrStorage, key, err)
		}
		body = bytes.NewReader(buf)
		size = int64(len(buf))
	}

	err := retry.Do(func() error {
		if _, err := body.Seek(0, io.SeekStart); err != nil {
			return err
		}

		_, err := r.client.PutObject(ctx, r.bucket, key, body, size, minio.PutObjectOptions{
			ContentType: contentType,
		})
		return err
	}, r.retries)
	if err != nil {
		r.logger.Error().Err(err).Str("bucket", r.bucket).Str("key", key).Msg("Failed to upload object")
		return "", fmt.Errorf("%w: failed to upload %s: %v", output.ErrStorage, key, err)
	}

	return r.bucket + "/" + key, nil
}

// ObjectKey joins dest and name into a slash separated key without a
// leading slash.
func ObjectKey(dest, name string) string {
	dest = strings.ReplaceAll(dest, "\\", "/")
	return strings.TrimPrefix(path.Join(dest, name), "/")
}
