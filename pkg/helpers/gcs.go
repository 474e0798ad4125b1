package helpers

import (
	"context"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// UploadObject writes r to bucket/object in a single request and returns
// the object's public URL. Images are cacheable; everything else (backups)
// is marked private.
func UploadObject(ctx context.Context, client *storage.Client, bucket, object, contentType string, r io.Reader) (string, error) {
	wc := client.Bucket(bucket).Object(object).NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = CacheControlFor(contentType)
	wc.ChunkSize = 0
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return PublicURL(bucket, object), nil
}

func CacheControlFor(contentType string) string {
	if strings.HasPrefix(contentType, "image/") {
		return "public, max-age=86400"
	}
	return "private, no-store"
}

// PublicURL builds the storage.googleapis.com URL of an object, escaping
// each path segment.
func PublicURL(bucket, object string) string {
	segs := strings.Split(strings.TrimPrefix(object, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return "https://storage.googleapis.com/" + bucket + "/" + strings.Join(segs, "/")
}
