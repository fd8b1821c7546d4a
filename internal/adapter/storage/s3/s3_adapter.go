package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/config"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/listing/domain"
	"github.com/xguyNayan/Shelterly-real-code-sub000/internal/platform/logger"
)

// S3Storage implements domain.MediaStorage on a MinIO or S3 bucket. Public
// URLs have the form <base>/<bucket>/<key>.
type S3Storage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	logger  *logger.Logger
}

// NewS3Storage connects to the endpoint and makes sure the bucket exists.
func NewS3Storage(ctx context.Context, cfg config.MinIOConfig, log *logger.Logger) (*S3Storage, error) {
	log.Info("Initializing S3 MinIO storage", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket))

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to make bucket %s: %w", cfg.Bucket, err)
		}
		log.Info("Bucket created", zap.String("bucket", cfg.Bucket))
	}

	base := cfg.PublicURL
	if base == "" {
		base = client.EndpointURL().String()
	}
	return &S3Storage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(base, "/"),
		logger:  log.Named("S3Storage"),
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) (string, error) {
	if size <= 0 {
		size = -1
	}
	info, err := s.client.PutObject(ctx, s.bucket, objectKey, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}
	s.logger.Debug("Object uploaded", zap.String("key", info.Key), zap.Int64("size", info.Size))
	return publicURL(s.baseURL, s.bucket, objectKey), nil
}

// Delete removes the object behind rawURL. A missing object counts as
// deleted.
func (s *S3Storage) Delete(ctx context.Context, rawURL string) error {
	key, err := objectKeyFromURL(s.baseURL, s.bucket, rawURL)
	if err != nil {
		return err
	}
	err = s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	s.logger.Debug("Object removed", zap.String("key", key))
	return nil
}

func publicURL(base, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", base, bucket, key)
}

// objectKeyFromURL reverses publicURL. Anything that is not
// <base>/<bucket>/<key> yields domain.ErrUnrecognizedMediaURL.
func objectKeyFromURL(base, bucket, rawURL string) (string, error) {
	prefix := base + "/" + bucket + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return "", domain.ErrUnrecognizedMediaURL
	}
	key := strings.TrimPrefix(rawURL, prefix)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	key, err := url.PathUnescape(key)
	if err != nil || key == "" {
		return "", domain.ErrUnrecognizedMediaURL
	}
	return key, nil
}
