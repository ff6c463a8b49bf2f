package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

// Compile-time check: S3Store implements the bulk store client.
var _ domain.ObjectStore = (*S3Store)(nil)

// S3Store writes and lists export files on S3-compatible object storage.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store creates a store bound to an s3://bucket/prefix location, using
// the resolved save-operation credentials. A non-empty endpoint selects an
// S3-compatible service with path-style addressing.
func NewS3Store(location string, creds domain.Credentials, region, endpoint string) (*S3Store, error) {
	bucket, prefix, err := splitBucketPath(location)
	if err != nil {
		return nil, err
	}

	opts := s3.Options{
		Region: region,
		Credentials: credentials.NewStaticCredentialsProvider(
			creds.KeyID, creds.Secret, creds.Token,
		),
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String("https://" + endpoint)
		opts.UsePathStyle = true
	}

	return &S3Store{
		client: s3.New(opts),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// Put writes one object under the base location.
func (s *S3Store) Put(ctx context.Context, name string, body io.Reader) error {
	key := joinKey(s.prefix, name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}

// List returns object names under the base location starting with prefix.
func (s *S3Store) List(ctx context.Context, prefix string) ([]string, error) {
	keyPrefix := joinKey(s.prefix, prefix)
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(keyPrefix),
	})

	var names []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", s.bucket, keyPrefix, err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			names = append(names, strings.TrimPrefix(name, "/"))
		}
	}
	return names, nil
}
