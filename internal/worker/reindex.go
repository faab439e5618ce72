package worker

import (
	"context"
	"fmt"

	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/repository"
)

const defaultReindexBatch = 100

// BulkIndexQueue accepts batches of ticket documents for indexing.
type BulkIndexQueue interface {
	SendBulkIndexMessage(ctx context.Context, docs []domain.TicketDocument) error
}

// EnqueueTenantTickets pages through every ticket of a tenant and queues them
// for indexing in batches. It returns the number of tickets queued.
func EnqueueTenantTickets(ctx context.Context, tickets repository.TicketRepository, q BulkIndexQueue, tenantID string, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = defaultReindexBatch
	}

	queued := 0
	for offset := 0; ; offset += batchSize {
		views, err := tickets.List(ctx, tenantID, domain.TicketFilter{Limit: batchSize, Offset: offset})
		if err != nil {
			return queued, fmt.Errorf("failed to list tickets at offset %d: %w", offset, err)
		}
		if len(views) == 0 {
			return queued, nil
		}

		docs := make([]domain.TicketDocument, len(views))
		for i := range views {
			docs[i] = *domain.NewTicketDocument(&views[i])
		}
		if err := q.SendBulkIndexMessage(ctx, docs); err != nil {
			return queued, fmt.Errorf("failed to queue tickets at offset %d: %w", offset, err)
		}
		queued += len(docs)

		if len(views) < batchSize {
			return queued, nil
		}
	}
}
