// Package miniostore stores image blobs as objects in an S3-compatible
// bucket, one <id>.jpg object per image.
package miniostore

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/vbonduro/homeinv/internal/imagestore"
)

type Store struct {
	client *minio.Client
	bucket string
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	s := &Store{client: client, bucket: cfg.Bucket}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !found {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

func (s *Store) Save(ctx context.Context, id uuid.UUID, r io.Reader) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName(id), r, -1, minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	// GetObject is lazy; Stat forces the first request so absence surfaces
	// here instead of on the first Read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, imagestore.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	return obj, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName(id), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

func objectName(id uuid.UUID) string {
	return id.String() + ".jpg"
}
