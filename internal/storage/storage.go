package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"cdnupload/internal/config"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// Storage is the put-by-key object store the upload pipeline writes to.
// Objects are never overwritten by the pipeline since keys are always fresh.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
}

// New returns the Storage selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (Storage, error) {
	switch cfg.Driver {
	case config.StorageDriverMinIO:
		log.Info("initializing object storage", "driver", cfg.Driver, "endpoint", cfg.MinIO.Endpoint, "bucket", cfg.MinIO.Bucket)
		return NewMinIO(ctx, cfg.MinIO)
	case config.StorageDriverS3:
		log.Info("initializing object storage", "driver", cfg.Driver, "endpoint", cfg.S3.Endpoint, "bucket", cfg.S3.Bucket, "region", cfg.S3.Region)
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
