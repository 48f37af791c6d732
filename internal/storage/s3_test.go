package storage

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorage(cfg S3Config) *S3Storage {
	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider("key", "secret", ""),
	}
	return newS3Storage(awsCfg, cfg)
}

func TestPublicBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
		want string
	}{
		{
			name: "aws",
			cfg:  S3Config{Region: "eu-central-1", Bucket: "trips"},
			want: "https://trips.s3.eu-central-1.amazonaws.com",
		},
		{
			name: "custom endpoint",
			cfg:  S3Config{Region: "us-east-1", Bucket: "trips", Endpoint: "http://localhost:9000/"},
			want: "http://localhost:9000/trips",
		},
		{
			name: "public url wins",
			cfg:  S3Config{Bucket: "trips", Endpoint: "http://minio:9000", PublicURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicBaseURL(tt.cfg))
		})
	}
}

func TestURL(t *testing.T) {
	s := testStorage(S3Config{Region: "us-east-1", Bucket: "trips", PublicURL: "https://cdn.example.com"})
	assert.Equal(t, "https://cdn.example.com/trips/7/gallery/a.jpg", s.URL("/trips/7/gallery/a.jpg"))
}

func TestPresignUpload(t *testing.T) {
	s := testStorage(S3Config{
		Region:        "us-east-1",
		Bucket:        "trips",
		Endpoint:      "http://localhost:9000",
		PresignExpiry: 5 * time.Minute,
	})

	upload, err := s.PresignUpload(context.Background(), "trips/7/gallery/a.jpg", "image/jpeg")
	require.NoError(t, err)

	u, err := url.Parse(upload.URL)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/trips/trips/7/gallery/a.jpg"))
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), upload.ExpiresAt, 5*time.Second)
}
