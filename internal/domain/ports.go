package domain

import (
	"context"
	"io"
)

// ObjectStore is the bulk store client: it writes export output objects and
// lists them back for the post-export existence check. Implementations are
// bound to one base location (bucket + key prefix or local directory).
type ObjectStore interface {
	// Put writes one object under the store's base location.
	Put(ctx context.Context, name string, body io.Reader) error
	// List returns the object names under the base location that start
	// with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// CredentialsProvider resolves bulk store credentials once per save
// operation. Implementations: static caller-supplied keys, or an
// environment-derived provider chain.
type CredentialsProvider interface {
	Resolve(ctx context.Context) (Credentials, error)
}
