package provider

import (
	"context"
	"errors"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
)

// ErrSearchDisabled is returned by room search when no cluster is configured;
// callers fall back to a database filter.
var ErrSearchDisabled = errors.New("search disabled")

// SearchIndex is the full-text index over users and rooms.
type SearchIndex interface {
	IndexUser(ctx context.Context, u *entity.User) error
	SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error)
	IndexRoom(ctx context.Context, r *entity.Room) error
	DeleteRoom(ctx context.Context, id string) error
	SearchRooms(ctx context.Context, q string, size int) ([]string, error)
}

// ErrStorageDisabled is returned by object stores without a bucket.
var ErrStorageDisabled = errors.New("object storage not configured")

// ObjectStore holds room images and database backups.
type ObjectStore interface {
	Put(ctx context.Context, object, contentType string, data []byte) (string, error)
	// Get returns repository.ErrNotFound for missing objects.
	Get(ctx context.Context, object string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

// EmailQueue enqueues outbound email jobs.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}
