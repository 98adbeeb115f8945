package config

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the part of the S3 client the fetcher needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3TableFetcher downloads COI tables stored in S3.
type S3TableFetcher struct {
	client ObjectGetter
}

// NewS3TableFetcher builds a fetcher from the default AWS credential chain.
func NewS3TableFetcher(ctx context.Context, region string) (*S3TableFetcher, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3TableFetcher{client: s3.NewFromConfig(cfg)}, nil
}

// NewS3TableFetcherWithClient wraps an existing client.
func NewS3TableFetcherWithClient(client ObjectGetter) *S3TableFetcher {
	return &S3TableFetcher{client: client}
}

// Fetch opens the object named by an s3://bucket/key URI. The caller closes
// the returned body.
func (f *S3TableFetcher) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", uri, err)
	}
	return out.Body, nil
}

// ParseS3URI splits s3://bucket/key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 URI: %q", uri)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 URI %q must name a bucket and a key", uri)
	}
	return bucket, key, nil
}
