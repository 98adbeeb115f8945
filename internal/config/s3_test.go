package config

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	bucket, key string
	body        string
	err         error
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		uri        string
		bucket     string
		key        string
		shouldFail bool
	}{
		{"s3://rates/base.csv", "rates", "base.csv", false},
		{"s3://rates/2025/q1/ci.csv", "rates", "2025/q1/ci.csv", false},
		{"s3://rates", "", "", true},
		{"s3:///base.csv", "", "", true},
		{"https://rates/base.csv", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, key, err := ParseS3URI(tt.uri)
			if tt.shouldFail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestS3TableFetcher_Fetch(t *testing.T) {
	client := &fakeS3{body: "age,male_nonsmoker,male_smoker,female_nonsmoker,female_smoker\n10,1,2,3,4\n"}
	fetcher := NewS3TableFetcherWithClient(client)

	table, err := NewTableLoader(fetcher).Load(context.Background(), TableECI, "s3://ilp-rates/eci/2025.csv")
	require.NoError(t, err)

	assert.Equal(t, "ilp-rates", client.bucket)
	assert.Equal(t, "eci/2025.csv", client.key)
	assert.Equal(t, []int{10}, table.Ages())
}

func TestS3TableFetcher_Error(t *testing.T) {
	fetcher := NewS3TableFetcherWithClient(&fakeS3{err: errors.New("access denied")})

	_, err := fetcher.Fetch(context.Background(), "s3://ilp-rates/base.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
