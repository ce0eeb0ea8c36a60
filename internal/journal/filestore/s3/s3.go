// Package s3 is a FileStore backed by an S3-compatible object store
// (MinIO, AWS S3). Use it when the journal runs on more than one host and
// a local uploads directory won't do.
package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/wayfarerhq/wayfarer/internal/journal/filestore"
)

// api is the slice of the minio client we use, split out so tests can
// substitute a fake without a running object store.
type api interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

type Store struct {
	api    api
	bucket string
}

// NewStore wraps a minio client and ensures the bucket exists.
func NewStore(ctx context.Context, client *minio.Client, bucket string) (*Store, error) {
	return newStoreWithAPI(ctx, client, bucket)
}

func newStoreWithAPI(ctx context.Context, a api, bucket string) (*Store, error) {
	s := &Store{api: a, bucket: bucket}

	exists, err := s.api.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("s3: check bucket: %w", err)
	}
	if !exists {
		if err := s.api.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("s3: create bucket: %w", err)
		}
	}

	return s, nil
}

func (s *Store) Save(ctx context.Context, name string, r io.Reader, size int64) error {
	_, err := s.api.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("s3: put %s: %w", name, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	// RemoveObject succeeds for absent keys, so stat first to preserve the
	// not-found contract.
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return filestore.ErrNotFound
	}

	if err := s.api.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("s3: remove %s: %w", name, err)
	}
	return nil
}

func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.api.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("s3: stat %s: %w", name, err)
	}
	return true, nil
}
