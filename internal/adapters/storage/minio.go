package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"eventradar/internal/domain"
)

// MinioConfig holds connection settings for an S3-compatible object store.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Config holds configuration for creating image storage.
type Config struct {
	Provider string
	Minio    MinioConfig
}

// NewImageStorage creates image storage from config. Provider "minio" uses an
// S3-compatible bucket; "noop" or unknown only logs deletions.
func NewImageStorage(config Config, logger *slog.Logger) (domain.ImageStorage, error) {
	switch config.Provider {
	case "minio":
		mc := config.Minio
		if mc.Bucket == "" {
			return nil, fmt.Errorf("minio storage: bucket is required")
		}
		client, err := minio.New(mc.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(mc.AccessKey, mc.SecretKey, ""),
			Secure: mc.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("minio storage: %w", err)
		}
		return &minioStorage{client: client, bucket: mc.Bucket, logger: logger}, nil
	case "noop":
		return &noopStorage{logger: logger}, nil
	default:
		logger.Warn("unknown storage provider, using noop", "provider", config.Provider)
		return &noopStorage{logger: logger}, nil
	}
}

// objectRemover is the subset of the minio client used by minioStorage.
type objectRemover interface {
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type minioStorage struct {
	client objectRemover
	bucket string
	logger *slog.Logger
}

// Delete removes the object at path. A missing object is not an error.
func (s *minioStorage) Delete(ctx context.Context, path string) error {
	err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			s.logger.DebugContext(ctx, "image already absent", "bucket", s.bucket, "path", path)
			return nil
		}
		return fmt.Errorf("remove object %s/%s: %w", s.bucket, path, err)
	}
	s.logger.InfoContext(ctx, "image deleted", "bucket", s.bucket, "path", path)
	return nil
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}

type noopStorage struct {
	logger *slog.Logger
}

func (s *noopStorage) Delete(ctx context.Context, path string) error {
	s.logger.InfoContext(ctx, "image would be deleted (noop)", "path", path)
	return nil
}
