package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

var _ domain.ObjectStore = (*GCSStore)(nil)

// GCSStore writes and lists export files on Google Cloud Storage.
type GCSStore struct {
	client *gcs.Client
	bucket string
	prefix string
}

// NewGCSStore creates a store bound to a gs://bucket/prefix location. A
// non-empty keyFile selects service account authentication; otherwise
// application default credentials are used.
func NewGCSStore(ctx context.Context, location, keyFile string) (*GCSStore, error) {
	bucket, prefix, err := splitBucketPath(location)
	if err != nil {
		return nil, err
	}

	var clientOpts []option.ClientOption
	if keyFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(keyFile))
	}
	client, err := gcs.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}

	return &GCSStore{client: client, bucket: bucket, prefix: prefix}, nil
}

// Put writes one object under the base location.
func (s *GCSStore) Put(ctx context.Context, name string, body io.Reader) error {
	key := joinKey(s.prefix, name)
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return fmt.Errorf("put gs://%s/%s: %w", s.bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("put gs://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}

// List returns object names under the base location starting with prefix.
func (s *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	keyPrefix := joinKey(s.prefix, prefix)
	it := s.client.Bucket(s.bucket).Objects(ctx, &gcs.Query{Prefix: keyPrefix})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list gs://%s/%s: %w", s.bucket, keyPrefix, err)
		}
		name := strings.TrimPrefix(attrs.Name, s.prefix)
		names = append(names, strings.TrimPrefix(name, "/"))
	}
	return names, nil
}
