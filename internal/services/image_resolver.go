package services

import (
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/campus-services/lostfound-backend/internal/store"
)

// signedURLTTL bounds how long a resolved image link stays valid.
const signedURLTTL = time.Hour

type gsLocator struct {
	bucket string
	object string
}

// parseGSLocator recognizes gs://bucket/path references. Malformed locators
// (no separator, empty bucket, empty path) are treated as not a locator at
// all, so the raw value passes through as an already-public URL.
func parseGSLocator(ref string) (gsLocator, bool) {
	rest, ok := strings.CutPrefix(ref, "gs://")
	if !ok {
		return gsLocator{}, false
	}
	slash := strings.Index(rest, "/")
	if slash <= 0 || slash == len(rest)-1 {
		return gsLocator{}, false
	}
	return gsLocator{bucket: rest[:slash], object: rest[slash+1:]}, true
}

// ImageResolver turns stored image references into URLs a client can fetch
// directly. Resolution is best-effort: it never fails the surrounding
// request.
type ImageResolver struct {
	blobs store.BlobStore
}

func NewImageResolver(blobs store.BlobStore) *ImageResolver {
	return &ImageResolver{blobs: blobs}
}

// Resolve maps a single stored reference to a client-fetchable URL. Internal
// locators get a one-hour signed URL; signing failures degrade to the raw
// reference.
func (r *ImageResolver) Resolve(ref string) string {
	loc, ok := parseGSLocator(ref)
	if !ok {
		return ref
	}
	url, err := r.blobs.SignedURL(loc.bucket, loc.object, signedURLTTL)
	if err != nil {
		slog.Warn("image url signing failed, passing raw reference through",
			"bucket", loc.bucket, "object", loc.object, "error", err)
		return ref
	}
	return url
}

// ResolveAll resolves every reference concurrently, preserving input order.
// Sequential resolution would produce the same result; the references are
// independent signing calls.
func (r *ImageResolver) ResolveAll(refs []string) []string {
	if len(refs) == 0 {
		return nil
	}

	urls := make([]string, len(refs))
	var g errgroup.Group
	for i, ref := range refs {
		g.Go(func() error {
			urls[i] = r.Resolve(ref)
			return nil
		})
	}
	_ = g.Wait()
	return urls
}
