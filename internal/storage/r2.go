package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Client uploads generated exports to an S3-compatible bucket
// (Cloudflare R2).
type R2Client struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// Configured reports whether the R2 environment is set. Exports fall
// back to download-only when it is not.
func Configured() bool {
	return os.Getenv("R2_ENDPOINT") != "" &&
		os.Getenv("R2_ACCESS_KEY") != "" &&
		os.Getenv("R2_SECRET_KEY") != "" &&
		os.Getenv("R2_BUCKET_NAME") != ""
}

func NewR2Client(ctx context.Context) (*R2Client, error) {
	endpoint := os.Getenv("R2_ENDPOINT")
	accessKey := os.Getenv("R2_ACCESS_KEY")
	secretKey := os.Getenv("R2_SECRET_KEY")
	bucket := os.Getenv("R2_BUCKET_NAME")
	baseURL := os.Getenv("R2_PUBLIC_BASE_URL")

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					if service == s3.ServiceID {
						return aws.Endpoint{
							URL:           endpoint,
							SigningRegion: "auto",
						}, nil
					}
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				},
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &R2Client{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// Upload puts body at key and returns the public URL.
func (r *R2Client) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &r.bucket,
		Key:         &key,
		Body:        body,
		ContentType: &contentType,
	})
	if err != nil {
		return "", err
	}

	if r.baseURL != "" {
		return fmt.Sprintf("%s/%s", r.baseURL, key), nil
	}
	return fmt.Sprintf("https://%s/%s", r.bucket, key), nil
}
