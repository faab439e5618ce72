package config

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSConfig points at the queue feeding the ticket search indexer.
type SQSConfig struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	IndexQueueURL   string `mapstructure:"index_queue_url"`
}

func DefaultSQSConfig() *SQSConfig {
	return &SQSConfig{
		Region:          getEnvWithDefault("AWS_REGION", "us-east-1"),
		Endpoint:        getEnvWithDefault("AWS_SQS_ENDPOINT", "http://localhost:4566"),
		AccessKeyID:     getEnvWithDefault("AWS_ACCESS_KEY_ID", "dummy"),
		SecretAccessKey: getEnvWithDefault("AWS_SECRET_ACCESS_KEY", "dummy"),
		IndexQueueURL:   getEnvWithDefault("AWS_SQS_TICKET_INDEX_QUEUE_URL", "http://localhost:4566/000000000000/ticket-index-queue"),
	}
}

func (c *SQSConfig) GetClient(ctx context.Context) (*sqs.Client, error) {
	cfg, err := loadAWSConfig(ctx, c.Region, c.Endpoint, c.AccessKeyID, c.SecretAccessKey)
	if err != nil {
		return nil, err
	}

	return sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	}), nil
}
