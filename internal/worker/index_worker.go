package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/service/queue"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

const (
	defaultMaxMessages = 10
	defaultWaitSeconds = 20
)

// MessageSource is the consuming side of the ticket index queue.
type MessageSource interface {
	IndexQueueURL() string
	ReceiveMessages(ctx context.Context, queueURL string, maxMessages int32, waitTimeSeconds int32) ([]queue.ReceivedMessage, error)
	DeleteMessage(ctx context.Context, queueURL string, receiptHandle *string) error
}

// TicketIndexer writes one ticket document into the search index.
type TicketIndexer interface {
	Index(ctx context.Context, doc *domain.TicketDocument) error
}

// IndexWorker drains the ticket index queue into OpenSearch. A message is
// deleted only after every document in it was indexed, so failures are
// redelivered by SQS once the visibility timeout expires.
type IndexWorker struct {
	source       MessageSource
	indexer      TicketIndexer
	logger       *logger.Logger
	workerCount  int
	pollInterval time.Duration
	maxMessages  int32
	waitTime     int32
	ctx          context.Context
	cancel       context.CancelFunc
	waitGroup    sync.WaitGroup
}

func NewIndexWorker(
	source MessageSource,
	indexer TicketIndexer,
	logger *logger.Logger,
	workerCount int,
	pollInterval time.Duration,
) *IndexWorker {
	ctx, cancel := context.WithCancel(context.Background())
	return &IndexWorker{
		source:       source,
		indexer:      indexer,
		logger:       logger,
		workerCount:  max(workerCount, 1),
		pollInterval: pollInterval,
		maxMessages:  defaultMaxMessages,
		waitTime:     defaultWaitSeconds,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (w *IndexWorker) Start() {
	w.logger.Info("Starting index workers", zap.Int("count", w.workerCount))

	for i := 0; i < w.workerCount; i++ {
		w.waitGroup.Add(1)
		go w.runWorker(i)
	}
}

// Stop interrupts any in-flight long poll and waits for workers to return.
func (w *IndexWorker) Stop() {
	w.logger.Info("Stopping index workers...")
	w.cancel()
	w.waitGroup.Wait()
	w.logger.Info("All index workers stopped")
}

func (w *IndexWorker) runWorker(workerID int) {
	defer w.waitGroup.Done()

	w.logger.Infof("Index worker %d started", workerID)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Infof("Index worker %d shutting down", workerID)
			return
		case <-ticker.C:
			if _, err := w.processMessages(w.ctx); err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Error("Failed to process index messages", err, zap.Int("worker", workerID))
			}
		}
	}
}

// processMessages handles one receive batch and returns how many messages
// were fully indexed.
func (w *IndexWorker) processMessages(ctx context.Context) (int, error) {
	queueURL := w.source.IndexQueueURL()

	messages, err := w.source.ReceiveMessages(ctx, queueURL, w.maxMessages, w.waitTime)
	if err != nil {
		return 0, fmt.Errorf("failed to receive messages: %w", err)
	}

	done := 0
	for _, msg := range messages {
		if err := w.processMessage(ctx, msg.Message); err != nil {
			w.logger.Error("Failed to index message", err,
				zap.String("type", string(msg.Message.Type)),
				zap.String("tenant_id", msg.Message.TenantID))
			continue
		}

		if err := w.source.DeleteMessage(ctx, queueURL, msg.ReceiptHandle); err != nil {
			w.logger.Error("Failed to delete message", err)
			continue
		}
		done++
	}

	return done, nil
}

func (w *IndexWorker) processMessage(ctx context.Context, msg queue.Message) error {
	switch msg.Type {
	case queue.MessageTypeIndex:
		if len(msg.Tickets) != 1 {
			return fmt.Errorf("invalid number of tickets for INDEX message: %d", len(msg.Tickets))
		}
	case queue.MessageTypeBulkIndex:
		if len(msg.Tickets) == 0 {
			return fmt.Errorf("empty tickets array for BULK_INDEX message")
		}
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}

	for i := range msg.Tickets {
		doc := &msg.Tickets[i]
		if doc.TenantID != msg.TenantID {
			return fmt.Errorf("ticket %s belongs to tenant %s, message is for %s", doc.ID, doc.TenantID, msg.TenantID)
		}
		if err := w.indexer.Index(ctx, doc); err != nil {
			return fmt.Errorf("failed to index ticket %s: %w", doc.ID, err)
		}
	}
	return nil
}
