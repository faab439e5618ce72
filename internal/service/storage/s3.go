package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/kingrain94/support-desk-api/internal/config"
)

// S3API is the subset of the S3 client the store uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps attachments in a bucket under the tickets/ prefix.
type S3Store struct {
	client    S3API
	bucket    string
	publicURL string
}

func NewS3Store(client S3API, cfg *config.S3Config) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}
}

func (s *S3Store) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path.Join(ticketFolder, name)),
		Body:   r,
	}
	if contentType := mime.TypeByExtension(path.Ext(name)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload attachment to S3: %w", err)
	}

	return s.ref(name), nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	name := path.Base(ref)
	if _, err := cleanName(name); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path.Join(ticketFolder, name)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete attachment from S3: %w", err)
	}
	return nil
}

func (s *S3Store) ref(name string) string {
	if s.publicURL == "" {
		return "s3://" + s.bucket + "/" + path.Join(ticketFolder, name)
	}
	return s.publicURL + "/" + path.Join(ticketFolder, name)
}
