// Package storage implements the professionals context's ObjectStorage port
// on MinIO (or any S3-compatible endpoint). File bytes never flow through
// the API process; clients upload and download via presigned URLs.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fitconnect-backend/internal/professionals/ports"
	"fitconnect-backend/platform/apperr"
	"fitconnect-backend/platform/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// allowedContentTypes lists the MIME types accepted for credential documents.
var allowedContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MinIOStorage holds credential documents in a single bucket.
type MinIOStorage struct {
	client      *minio.Client
	bucket      string
	maxFileSize int64
}

// NewMinIOStorage creates the storage adapter and ensures the document
// bucket exists. Returns nil when MinIO is not configured; the professionals
// service rejects document operations when storage reports disabled.
func NewMinIOStorage(ctx context.Context, cfg config.MinIOConfig) (*MinIOStorage, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, nil
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	s := &MinIOStorage{
		client:      client,
		bucket:      cfg.GetMinioBucketProfessionalDocuments(),
		maxFileSize: cfg.GetMinIOMaxFileSize(),
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MinIOStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// Enabled reports whether the adapter is backed by a configured endpoint.
func (s *MinIOStorage) Enabled() bool {
	return s != nil && s.client != nil
}

// PresignedPutURL returns a URL the client can PUT the document bytes to.
func (s *MinIOStorage) PresignedPutURL(ctx context.Context, key, contentType string, sizeBytes int64, expiry time.Duration) (string, error) {
	if err := validateContentType(contentType); err != nil {
		return "", err
	}
	if err := s.validateFileSize(sizeBytes); err != nil {
		return "", err
	}
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, expiry)
	if err != nil {
		return "", fmt.Errorf("presign upload for %s: %w", key, err)
	}
	return u.String(), nil
}

// PresignedGetURL returns a URL the document can be downloaded from.
func (s *MinIOStorage) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign download for %s: %w", key, err)
	}
	return u.String(), nil
}

// Remove deletes the object behind the key.
func (s *MinIOStorage) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}

func (s *MinIOStorage) validateFileSize(sizeBytes int64) error {
	if sizeBytes <= 0 {
		return apperr.Validation("file size must be greater than 0")
	}
	if s.maxFileSize > 0 && sizeBytes > s.maxFileSize {
		return apperr.Validation(fmt.Sprintf("file size %d bytes exceeds maximum of %d bytes", sizeBytes, s.maxFileSize))
	}
	return nil
}

func validateContentType(contentType string) error {
	normalized := strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
	if !allowedContentTypes[normalized] {
		return apperr.Validation(fmt.Sprintf("content type %q is not allowed", contentType))
	}
	return nil
}

var _ ports.ObjectStorage = (*MinIOStorage)(nil)
