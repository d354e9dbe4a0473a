package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"warga-be-svc/internal/config"
	"warga-be-svc/pkg/logger"
)

// ObjectStorage is the boundary to the managed object store. Uploads return a
// public download URL; deletes take the stored URL back.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, content []byte, contentType string) (string, error)
	DeleteByURL(ctx context.Context, publicURL string) error
}

// OSSStorage implements ObjectStorage on an Aliyun OSS bucket
type OSSStorage struct {
	bucket        *oss.Bucket
	bucketName    string
	endpoint      string
	prefix        string
	publicBaseURL string
	logger        *logger.Logger
}

// NewOSSStorage connects to the configured bucket
func NewOSSStorage(cfg *config.OSSConfig, logger *logger.Logger) (*OSSStorage, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open OSS bucket %q: %w", cfg.Bucket, err)
	}

	return &OSSStorage{
		bucket:        bucket,
		bucketName:    cfg.Bucket,
		endpoint:      cfg.Endpoint,
		prefix:        strings.Trim(cfg.Prefix, "/"),
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Upload stores raw bytes under the namespaced key and returns the public URL
func (s *OSSStorage) Upload(_ context.Context, key string, content []byte, contentType string) (string, error) {
	objectKey := s.objectKey(key)

	opts := []oss.Option{}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}

	if err := s.bucket.PutObject(objectKey, bytes.NewReader(content), opts...); err != nil {
		return "", fmt.Errorf("failed to upload object %q: %w", objectKey, err)
	}

	return s.publicURL(objectKey), nil
}

// DeleteByURL removes the object behind a previously returned public URL
func (s *OSSStorage) DeleteByURL(_ context.Context, publicURL string) error {
	objectKey, err := s.keyFromURL(publicURL)
	if err != nil {
		return err
	}

	if err := s.bucket.DeleteObject(objectKey); err != nil {
		return fmt.Errorf("failed to delete object %q: %w", objectKey, err)
	}

	return nil
}

// objectKey prepends the configured prefix
func (s *OSSStorage) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

// publicURL builds the download URL for an object key
func (s *OSSStorage) publicURL(objectKey string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + objectKey
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, s.endpoint, objectKey)
}

// keyFromURL recovers the object key from a public URL
func (s *OSSStorage) keyFromURL(publicURL string) (string, error) {
	if s.publicBaseURL != "" && strings.HasPrefix(publicURL, s.publicBaseURL+"/") {
		return strings.TrimPrefix(publicURL, s.publicBaseURL+"/"), nil
	}

	parsed, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("invalid object URL %q: %w", publicURL, err)
	}

	key := strings.TrimLeft(parsed.Path, "/")
	if key == "" {
		return "", fmt.Errorf("object URL %q carries no key", publicURL)
	}

	return key, nil
}
