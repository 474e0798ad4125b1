package storage

import (
	"bytes"
	"context"
	"errors"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/oksasatya/hotel-management/internal/domain/provider"
	"github.com/oksasatya/hotel-management/internal/domain/repository"
	"github.com/oksasatya/hotel-management/pkg/helpers"
)

// ErrNotConfigured is returned when no bucket is set.
var ErrNotConfigured = provider.ErrStorageDisabled

// GCSStore keeps room images and backups in a Cloud Storage bucket.
type GCSStore struct {
	client *gcs.Client
	bucket string
}

func NewGCSStore(client *gcs.Client, bucket string) *GCSStore {
	return &GCSStore{client: client, bucket: bucket}
}

func (s *GCSStore) ready() error {
	if s == nil || s.client == nil || s.bucket == "" {
		return ErrNotConfigured
	}
	return nil
}

func (s *GCSStore) Put(ctx context.Context, object, contentType string, data []byte) (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}
	return helpers.UploadObject(ctx, s.client, s.bucket, object, contentType, bytes.NewReader(data))
}

func (s *GCSStore) Get(ctx context.Context, object string) ([]byte, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rc, err := s.client.Bucket(s.bucket).Object(object).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

func (s *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	it := s.client.Bucket(s.bucket).Objects(ctx, &gcs.Query{Prefix: prefix})
	var out []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, attrs.Name)
	}
	return out, nil
}

var _ provider.ObjectStore = (*GCSStore)(nil)
