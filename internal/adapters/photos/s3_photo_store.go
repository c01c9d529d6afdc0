package photos

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// objectPutter is the subset of the S3 client used for uploads.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket           string
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	CloudFrontDomain string
}

// S3PhotoStore uploads bin photos to S3 and returns their public URL.
type S3PhotoStore struct {
	client           objectPutter
	bucket           string
	region           string
	cloudFrontDomain string
}

// NewS3PhotoStore builds a store from the default AWS credential chain,
// or from static keys when both are configured.
func NewS3PhotoStore(ctx context.Context, cfg S3Config) (*S3PhotoStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 photo store: load aws config: %w", err)
	}

	return newS3PhotoStore(s3.NewFromConfig(sdkConfig), cfg), nil
}

func newS3PhotoStore(client objectPutter, cfg S3Config) *S3PhotoStore {
	return &S3PhotoStore{
		client:           client,
		bucket:           cfg.Bucket,
		region:           cfg.Region,
		cloudFrontDomain: strings.TrimSuffix(cfg.CloudFrontDomain, "/"),
	}
}

func (s *S3PhotoStore) UploadPhoto(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload photo %q: %w", key, err)
	}

	return s.URL(key), nil
}

// URL returns the CloudFront URL when a distribution is configured, the S3 URL otherwise.
func (s *S3PhotoStore) URL(key string) string {
	if s.cloudFrontDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cloudFrontDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
