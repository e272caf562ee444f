package store

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
)

// GCS implements BlobStore on top of a Cloud Storage client with a default
// bucket for uploads.
type GCS struct {
	client *storage.Client
	bucket string
}

func NewGCS(client *storage.Client, defaultBucket string) *GCS {
	return &GCS{client: client, bucket: defaultBucket}
}

var _ BlobStore = (*GCS)(nil)

func (g *GCS) DefaultBucket() string {
	return g.bucket
}

func (g *GCS) SignedURL(bucket, object string, ttl time.Duration) (string, error) {
	url, err := g.client.Bucket(bucket).SignedURL(object, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(ttl),
	})
	if err != nil {
		return "", fmt.Errorf("sign %s/%s: %w", bucket, object, err)
	}
	return url, nil
}

func (g *GCS) Upload(ctx context.Context, object string, data []byte, contentType string) error {
	w := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("upload %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upload %s: %w", object, err)
	}
	return nil
}
