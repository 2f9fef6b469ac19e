// Package minio implements the blob store against any S3-compatible
// object storage via the MinIO client.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"Lark/internal/core/blobs"
)

// Config holds the object-storage connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string

	// URLTTL bounds presigned download URLs. Zero means 7 days, the
	// longest presign the S3 API allows.
	URLTTL time.Duration
}

type blobStore struct {
	cfg    Config
	client *minio.Client
}

// New connects to the object store and returns a blobs.Store.
func New(cfg Config) (blobs.Store, error) {
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	if cfg.URLTTL <= 0 {
		cfg.URLTTL = 7 * 24 * time.Hour
	}

	return &blobStore{cfg: cfg, client: client}, nil
}

// EnsureBucket creates the configured bucket if it does not exist yet.
func EnsureBucket(ctx context.Context, store blobs.Store) error {
	s, ok := store.(*blobStore)
	if !ok {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// Upload writes data under path, overwriting any existing object.
func (s *blobStore) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, path,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", path, err)
	}
	return nil
}

// ResolveURL returns a presigned download URL for the object at path.
func (s *blobStore) ResolveURL(ctx context.Context, path string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, path, s.cfg.URLTTL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", path, err)
	}
	return u.String(), nil
}

// Remove deletes the object at path. Removing a missing object succeeds.
func (s *blobStore) Remove(ctx context.Context, path string) error {
	err := s.client.RemoveObject(ctx, s.cfg.Bucket, path, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove object %s: %w", path, err)
	}
	return nil
}
