// Package store implements bulk store clients over S3, GCS, Azure Blob
// Storage, and the local filesystem. A store is bound to one base location;
// object names are relative to it.
package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

// Options carry backend-specific settings resolved from configuration.
type Options struct {
	S3Region              string
	S3Endpoint            string // optional custom endpoint (path-style addressing)
	GCSKeyFile            string // optional service account key file (ADC otherwise)
	AzureConnectionString string
}

// ForLocation returns the ObjectStore for a location URL, dispatching on its
// scheme: s3://, gs://, az://, file:// or a bare path.
func ForLocation(ctx context.Context, location string, creds domain.Credentials, opts Options) (domain.ObjectStore, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse location %q: %w", location, err)
	}
	switch u.Scheme {
	case "s3":
		return NewS3Store(location, creds, opts.S3Region, opts.S3Endpoint)
	case "gs":
		return NewGCSStore(ctx, location, opts.GCSKeyFile)
	case "az":
		return NewAzureStore(location, opts.AzureConnectionString)
	case "", "file":
		return NewLocalStore(strings.TrimPrefix(location, "file://"))
	default:
		return nil, fmt.Errorf("unsupported location scheme %q in %q", u.Scheme, location)
	}
}

// splitBucketPath extracts bucket/container and key prefix from a storage URI
// like "s3://bucket/path/prefix".
func splitBucketPath(location string) (bucket, prefix string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("parse location %q: %w", location, err)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("missing bucket in location %q", location)
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}

// joinKey joins a key prefix and an object name.
func joinKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
