package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

var _ domain.ObjectStore = (*AzureStore)(nil)

// AzureStore writes and lists export files on Azure Blob Storage.
type AzureStore struct {
	client    *azblob.Client
	container string
	prefix    string
}

// NewAzureStore creates a store bound to an az://container/prefix location,
// authenticated by a storage account connection string.
func NewAzureStore(location, connectionString string) (*AzureStore, error) {
	container, prefix, err := splitBucketPath(location)
	if err != nil {
		return nil, err
	}
	if connectionString == "" {
		return nil, fmt.Errorf("azure storage connection string is required for %q", location)
	}

	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create Azure blob client: %w", err)
	}

	return &AzureStore{client: client, container: container, prefix: prefix}, nil
}

// Put writes one blob under the base location.
func (s *AzureStore) Put(ctx context.Context, name string, body io.Reader) error {
	key := joinKey(s.prefix, name)
	if _, err := s.client.UploadStream(ctx, s.container, key, body, nil); err != nil {
		return fmt.Errorf("put az://%s/%s: %w", s.container, key, err)
	}
	return nil
}

// List returns blob names under the base location starting with prefix.
func (s *AzureStore) List(ctx context.Context, prefix string) ([]string, error) {
	keyPrefix := joinKey(s.prefix, prefix)
	pager := s.client.NewListBlobsFlatPager(s.container, &azblob.ListBlobsFlatOptions{
		Prefix: &keyPrefix,
	})

	var names []string
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list az://%s/%s: %w", s.container, keyPrefix, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			name := strings.TrimPrefix(*item.Name, s.prefix)
			names = append(names, strings.TrimPrefix(name, "/"))
		}
	}
	return names, nil
}
