package store

import (
	"context"
	"errors"
	"time"
)

var ErrDocumentNotFound = errors.New("document not found")

// Document is a raw stored document: an id plus an untyped field bag.
// Nothing that comes out of a Document is trusted until it has passed
// through the normalizer.
type Document struct {
	ID   string
	Data map[string]any
}

type Direction int

const (
	Asc Direction = iota
	Desc
)

// Query is an equality-filtered, ordered, windowed read over a collection.
// Builder methods return derived queries; the receiver is never mutated.
type Query interface {
	Where(field, op string, value any) Query
	OrderBy(field string, dir Direction) Query
	Offset(n int) Query
	Limit(n int) Query
	// Count runs a server-side aggregation over the current predicate
	// without materializing the matching documents.
	Count(ctx context.Context) (int64, error)
	Documents(ctx context.Context) ([]Document, error)
}

// DocumentStore is the narrow surface this service needs from the document
// database: point reads, write-once creation with pre-allocated ids, and
// windowed queries.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	NewID(collection string) string
	Set(ctx context.Context, collection, id string, data map[string]any) error
	Query(collection string) Query
}

// BlobStore issues time-limited read URLs and accepts private uploads.
// Signed URLs may target any bucket; uploads always go to the default one.
type BlobStore interface {
	DefaultBucket() string
	SignedURL(bucket, object string, ttl time.Duration) (string, error)
	Upload(ctx context.Context, object string, data []byte, contentType string) error
}
