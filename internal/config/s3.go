package config

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config locates the bucket that holds ticket attachments when
// ATTACHMENT_STORAGE=s3.
type S3Config struct {
	BucketName      string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	// PublicURL is the base URL attachments are served from. Load refuses
	// s3 storage without it.
	PublicURL string
}

func DefaultS3Config() *S3Config {
	return &S3Config{
		BucketName:      getEnvWithDefault("S3_ATTACHMENT_BUCKET", "support-desk-attachments"),
		Region:          getEnvWithDefault("AWS_REGION", "us-east-1"),
		Endpoint:        getEnvWithDefault("AWS_S3_ENDPOINT", ""),
		AccessKeyID:     getEnvWithDefault("AWS_ACCESS_KEY_ID", "dummy"),
		SecretAccessKey: getEnvWithDefault("AWS_SECRET_ACCESS_KEY", "dummy"),
		PublicURL:       getEnvWithDefault("S3_PUBLIC_URL", ""),
	}
}

// GetClient creates an S3 client. A custom endpoint switches to path-style
// addressing, which LocalStack and MinIO require.
func (c *S3Config) GetClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadAWSConfig(ctx, c.Region, c.Endpoint, c.AccessKeyID, c.SecretAccessKey)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
