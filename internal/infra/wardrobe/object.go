package wardrobe

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectFetcher reads the wardrobe from S3-compatible object storage such as
// MinIO or Cloudflare R2.
type ObjectFetcher struct {
	client *minio.Client
	bucket string
	key    string
}

// NewObjectFetcher constructs the storage adapter.
func NewObjectFetcher(endpoint, accessKey, secretKey, bucket, region, key string) (*ObjectFetcher, error) {
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(endpoint)), "http://")
	client, err := minio.New(sanitizeEndpoint(endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &ObjectFetcher{client: client, bucket: bucket, key: key}, nil
}

// Fetch implements Fetcher.
func (f *ObjectFetcher) Fetch(ctx context.Context) ([]byte, error) {
	obj, err := f.client.GetObject(ctx, f.bucket, f.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, f.wrap(err)
	}
	defer obj.Close()
	// GetObject is lazy; Stat surfaces a missing key before reading.
	if _, err := obj.Stat(); err != nil {
		return nil, f.wrap(err)
	}
	data, err := readDocument(obj)
	if err != nil {
		return nil, fmt.Errorf("read wardrobe object s3://%s/%s: %w", f.bucket, f.key, err)
	}
	return data, nil
}

func (f *ObjectFetcher) wrap(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: s3://%s/%s", ErrNotFound, f.bucket, f.key)
	}
	return fmt.Errorf("get wardrobe object: %w", err)
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
