package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/internal/domain"
)

type MessageType string

const (
	MessageTypeIndex     MessageType = "INDEX"
	MessageTypeBulkIndex MessageType = "BULK_INDEX"
)

type Message struct {
	Type      MessageType             `json:"type"`
	TenantID  string                  `json:"tenant_id"`
	Tickets   []domain.TicketDocument `json:"tickets,omitempty"`
	Timestamp time.Time               `json:"timestamp"`
}

type ReceivedMessage struct {
	Message       Message
	ReceiptHandle *string
}

// SQSAPI is the subset of the SQS client the service uses.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

type SQSService struct {
	client        SQSAPI
	indexQueueURL string
}

func NewSQSService(client SQSAPI, config *config.SQSConfig) *SQSService {
	return &SQSService{
		client:        client,
		indexQueueURL: config.IndexQueueURL,
	}
}

func (s *SQSService) IndexQueueURL() string {
	return s.indexQueueURL
}

// SendIndexMessage queues a ticket for (re)indexing.
func (s *SQSService) SendIndexMessage(ctx context.Context, doc *domain.TicketDocument) error {
	msg := Message{
		Type:      MessageTypeIndex,
		TenantID:  doc.TenantID,
		Tickets:   []domain.TicketDocument{*doc},
		Timestamp: time.Now().UTC(),
	}

	return s.sendMessage(ctx, msg, s.indexQueueURL)
}

func (s *SQSService) SendBulkIndexMessage(ctx context.Context, docs []domain.TicketDocument) error {
	if len(docs) == 0 {
		return nil
	}

	msg := Message{
		Type:      MessageTypeBulkIndex,
		TenantID:  docs[0].TenantID,
		Tickets:   docs,
		Timestamp: time.Now().UTC(),
	}

	return s.sendMessage(ctx, msg, s.indexQueueURL)
}

func (s *SQSService) sendMessage(ctx context.Context, msg Message, queueURL string) error {
	msgBody, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	input := &sqs.SendMessageInput{
		MessageBody: aws.String(string(msgBody)),
		QueueUrl:    aws.String(queueURL),
	}

	_, err = s.client.SendMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

func (s *SQSService) ReceiveMessages(ctx context.Context, queueURL string, maxMessages int32, waitTimeSeconds int32) ([]ReceivedMessage, error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(queueURL),
		MaxNumberOfMessages: maxMessages,
		WaitTimeSeconds:     waitTimeSeconds,
	}

	output, err := s.client.ReceiveMessage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages: %w", err)
	}

	var messages []ReceivedMessage
	for _, msg := range output.Messages {
		var message Message
		if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &message); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		messages = append(messages, ReceivedMessage{
			Message:       message,
			ReceiptHandle: msg.ReceiptHandle,
		})
	}

	return messages, nil
}

func (s *SQSService) DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error {
	input := &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(queueURL),
		ReceiptHandle: receiptHandle,
	}

	_, err := s.client.DeleteMessage(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}
