package upload

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"filter-backend/internal/logger"
)

// MinioUploader stores images in an S3-compatible bucket.
type MinioUploader struct {
	client *minio.Client
	bucket string
}

func NewMinioUploader(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioUploader, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", endpoint, err)
	}

	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("make bucket %s: %w", bucket, err)
		}
		logger.Info("bucket already exists", zap.String("bucket", bucket))
	} else {
		logger.Info("bucket created", zap.String("bucket", bucket))
	}

	return &MinioUploader{client: client, bucket: bucket}, nil
}

func (m *MinioUploader) Upload(ctx context.Context, folder string, file File) (string, error) {
	objectKey := path.Join(strings.Trim(folder, "/"), uuid.NewString()+strings.ToLower(filepath.Ext(file.Name)))

	info, err := m.client.PutObject(ctx, m.bucket, objectKey, bytes.NewReader(file.Data), int64(len(file.Data)), minio.PutObjectOptions{
		ContentType:  file.ContentType,
		UserMetadata: map[string]string{"original-filename": file.Name},
	})
	if err != nil {
		logger.Error("put object failed", zap.String("bucket", m.bucket), zap.String("key", objectKey), zap.Error(err))
		return "", fmt.Errorf("upload object %s: %w", objectKey, err)
	}

	logger.Debug("object uploaded", zap.String("key", info.Key), zap.Int64("size", info.Size))
	return m.objectURL(objectKey), nil
}

func (m *MinioUploader) Delete(ctx context.Context, url string) error {
	key, ok := m.objectKey(url)
	if !ok {
		return fmt.Errorf("url %s is not in bucket %s", url, m.bucket)
	}
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

func (m *MinioUploader) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", m.client.EndpointURL().String(), m.bucket, key)
}

func (m *MinioUploader) objectKey(url string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", m.client.EndpointURL().String(), m.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
