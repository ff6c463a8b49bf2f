// Package creds resolves bulk store credentials for one save operation.
package creds

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/shengyushen/spark-snowflake/internal/domain"
)

// Static returns a provider yielding caller-supplied credentials unchanged.
func Static(c domain.Credentials) domain.CredentialsProvider {
	return staticProvider{creds: c}
}

type staticProvider struct {
	creds domain.Credentials
}

func (p staticProvider) Resolve(_ context.Context) (domain.Credentials, error) {
	if p.creds.KeyID == "" || p.creds.Secret == "" {
		return domain.Credentials{}, domain.ErrConfiguration("incomplete static credentials: key id and secret are required")
	}
	return p.creds, nil
}

// Environment returns a provider backed by the AWS default chain
// (environment variables, shared config/credentials files, instance roles).
func Environment() domain.CredentialsProvider {
	return environmentProvider{}
}

type environmentProvider struct{}

func (environmentProvider) Resolve(ctx context.Context) (domain.Credentials, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("load default credential chain: %w", err)
	}
	c, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("resolve credentials: %w", err)
	}
	return domain.Credentials{
		KeyID:  c.AccessKeyID,
		Secret: c.SecretAccessKey,
		Token:  c.SessionToken,
	}, nil
}

// ProviderFor selects the static provider when explicit credentials are
// supplied, the environment chain otherwise.
func ProviderFor(explicit *domain.Credentials) domain.CredentialsProvider {
	if explicit != nil {
		return Static(*explicit)
	}
	return Environment()
}
