// package submissionblob stores submission artifacts in S3-compatible
// object storage through MinIO.
package submissionblob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gitlab.com/ppjudge.net/internal/adapter/submissionlog"
	"gitlab.com/ppjudge.net/internal/config"
	"gitlab.com/ppjudge.net/internal/core/ports/primary"
)

// BlobStore implements submissionlog.BlobStore on a MinIO bucket. Object keys
// carry the same slash-separated scheme as the filesystem store, so listing
// by prefix preserves the chronological key order.
type BlobStore struct {
	client *minio.Client
	bucket string
	logger primary.Logger
}

var _ submissionlog.BlobStore = (*BlobStore)(nil)

// NewBlobStore connects to MinIO and ensures the bucket exists
func NewBlobStore(ctx context.Context, cfg *config.MinIOConfig, logger primary.Logger) (*BlobStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client failed: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s failed: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s failed: %w", cfg.Bucket, err)
		}
	}

	return &BlobStore{
		client: client,
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

func (s *BlobStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("Failed to put artifact", "key", key, "error", err)
		return fmt.Errorf("minio put object %s failed: %w", key, err)
	}
	return nil
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("minio get object %s failed: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("minio read object %s failed: %w", key, err)
	}
	return data, nil
}

func (s *BlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("minio list objects under %s failed: %w", prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}
