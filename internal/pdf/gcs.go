package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/spherical/legal-analyzer/internal/domain"
)

const gcsScheme = "gs://"

// IsRemote reports whether path names a Cloud Storage object.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, gcsScheme)
}

// ParseGCSPath splits gs://bucket/object into its parts.
func ParseGCSPath(path string) (bucket, object string, err error) {
	rest := strings.TrimPrefix(path, gcsScheme)
	bucket, object, ok := strings.Cut(rest, "/")
	if !IsRemote(path) || !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("malformed object path %q, want gs://bucket/object", path)
	}
	return bucket, object, nil
}

// GCSFetcher copies Cloud Storage objects to local temp files.
type GCSFetcher struct {
	client *storage.Client
}

// NewGCSFetcher creates a fetcher using application default credentials.
func NewGCSFetcher(ctx context.Context) (*GCSFetcher, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSFetcher{client: client}, nil
}

// Fetch streams the object to a temp file. The returned cleanup removes it.
func (g *GCSFetcher) Fetch(ctx context.Context, path string) (string, func(), error) {
	bucket, object, err := ParseGCSPath(path)
	if err != nil {
		return "", func() {}, domain.NotFoundError("PDF file not found", err)
	}

	reader, err := g.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return "", func() {}, domain.NotFoundError(fmt.Sprintf("PDF file not found: %s", path), err)
		}
		return "", func() {}, domain.CapabilityError(fmt.Sprintf("read %s", path), err)
	}
	defer reader.Close()

	tmp, err := os.CreateTemp("", "legal-analyzer-*.pdf")
	if err != nil {
		return "", func() {}, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		cleanup()
		return "", func() {}, domain.CapabilityError(fmt.Sprintf("copy %s", path), err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("close temp file: %w", err)
	}

	return tmp.Name(), cleanup, nil
}

// Close releases the storage client.
func (g *GCSFetcher) Close() error {
	return g.client.Close()
}
