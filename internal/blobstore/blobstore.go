// Package blobstore keeps original receipt images in a GCS bucket so each
// stored receipt can carry a durable image reference.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// Store writes and reads image blobs under one bucket. It holds no client:
// a fresh storage handle is constructed per operation, matching the
// short-lived-handle model used by the record stores. Application Default
// Credentials are assumed.
type Store struct {
	bucket string
}

// New builds a Store for the given bucket.
func New(bucket string) *Store {
	return &Store{bucket: bucket}
}

// Upload writes data under objectName and returns the gs:// URI of the new
// object. Uploads are capped at two minutes.
func (s *Store) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("Upload: creating storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("Upload: writing object %q: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("Upload: finalizing object %q: %w", objectName, err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, objectName), nil
}

// Fetch downloads the bytes behind a gs:// URI.
func (s *Store) Fetch(ctx context.Context, uri string) ([]byte, error) {
	bucket, object, err := parseURI(uri)
	if err != nil {
		return nil, fmt.Errorf("Fetch: %w", err)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("Fetch: creating storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("Fetch: opening %s/%s: %w", bucket, object, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("Fetch: reading %s/%s: %w", bucket, object, err)
	}
	return data, nil
}

// List returns the gs:// URIs of every object under prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("List: creating storage client: %w", err)
	}
	defer client.Close()

	var uris []string
	it := client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("List: iterating bucket %q: %w", s.bucket, err)
		}
		uris = append(uris, fmt.Sprintf("gs://%s/%s", s.bucket, attrs.Name))
	}
	return uris, nil
}

// parseURI splits a gs://bucket/object URI into its parts.
func parseURI(uri string) (bucket, object string, err error) {
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", fmt.Errorf("invalid GCS URI: %s", uri)
	}
	trimmed := strings.TrimPrefix(uri, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI (no object path): %s", uri)
	}
	return parts[0], parts[1], nil
}
