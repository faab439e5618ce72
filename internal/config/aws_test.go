package config

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestS3Config_LocalStackEndpoint(t *testing.T) {
	cfg := &S3Config{
		BucketName:      "attachments",
		Region:          "eu-west-1",
		Endpoint:        "http://localhost:4566",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	}

	client, err := cfg.GetClient(context.Background())
	require.NoError(t, err)

	opts := client.Options()
	assert.Equal(t, "eu-west-1", opts.Region)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "http://localhost:4566", aws.ToString(opts.BaseEndpoint))

	creds, err := opts.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test", creds.AccessKeyID)
}

func TestSQSConfig_Defaults(t *testing.T) {
	t.Setenv("AWS_SQS_TICKET_INDEX_QUEUE_URL", "http://localhost:4566/000000000000/custom")

	cfg := DefaultSQSConfig()
	assert.Equal(t, "http://localhost:4566/000000000000/custom", cfg.IndexQueueURL)

	client, err := cfg.GetClient(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.Endpoint, aws.ToString(client.Options().BaseEndpoint))
}
