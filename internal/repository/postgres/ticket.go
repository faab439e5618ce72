package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/repository"
)

// maxNumberAttempts bounds the retries when two creates race for the same
// tenant sequence value.
const maxNumberAttempts = 5

const ticketViewColumns = "tickets.*, " +
	"cu.first_name AS client_first_name, cu.last_name AS client_last_name, " +
	"ag.first_name AS agent_first_name, ag.last_name AS agent_last_name"

// name joins repeat the tenant condition so a foreign id can never pull in another tenant's user
const (
	ticketClientJoin = "LEFT JOIN users cu ON cu.id = tickets.client_id AND cu.tenant_id = tickets.tenant_id"
	ticketAgentJoin  = "LEFT JOIN users ag ON ag.id = tickets.assigned_agent_id AND ag.tenant_id = tickets.tenant_id"
)

type TicketRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewTicketRepository(writerDB, readerDB *gorm.DB) *TicketRepository {
	return &TicketRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

// Create assigns the next tenant sequence number and inserts the ticket.
// The (tenant_id, sequence) unique index rejects a concurrent duplicate, in
// which case the allocation is retried.
func (r *TicketRepository) Create(ctx context.Context, tenantID string, ticket *domain.Ticket) error {
	if tenantID == "" {
		return repository.ErrTenantRequired
	}
	stampHeader(&ticket.RecordHeader, tenantID)

	var err error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		err = r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var last int
			if err := tx.Model(&domain.Ticket{}).
				Where("tenant_id = ?", tenantID).
				Select("COALESCE(MAX(sequence), 0)").
				Scan(&last).Error; err != nil {
				return err
			}

			ticket.Sequence = last + 1
			ticket.Number = domain.FormatTicketNumber(ticket.Sequence)
			return tx.Create(ticket).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return translateError(err)
		}
	}
	return fmt.Errorf("failed to allocate ticket number after %d attempts: %w", maxNumberAttempts, translateError(err))
}

func (r *TicketRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.TicketView, error) {
	db, err := tenantScope(r.readerDB, ctx, "tickets", tenantID)
	if err != nil {
		return nil, err
	}

	var view domain.TicketView
	result := db.Table("tickets").
		Select(ticketViewColumns).
		Joins(ticketClientJoin).
		Joins(ticketAgentJoin).
		Where("tickets.id = ?", id).
		Limit(1).
		Scan(&view)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return &view, nil
}

func (r *TicketRepository) List(ctx context.Context, tenantID string, filter domain.TicketFilter) ([]domain.TicketView, error) {
	db, err := tenantScope(r.readerDB, ctx, "tickets", tenantID)
	if err != nil {
		return nil, err
	}

	db = db.Table("tickets").
		Select(ticketViewColumns).
		Joins(ticketClientJoin).
		Joins(ticketAgentJoin)

	if filter.ClientID != "" {
		db = db.Where("tickets.client_id = ?", filter.ClientID)
	}
	if filter.Status != "" {
		db = db.Where("tickets.status = ?", filter.Status)
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}

	views := make([]domain.TicketView, 0)
	if err := db.Order("tickets.created_at DESC").Order("tickets.sequence DESC").Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// Update applies the non-nil fields of patch and refreshes updated_at.
func (r *TicketRepository) Update(ctx context.Context, tenantID, id string, patch domain.TicketPatch) error {
	db, err := tenantScope(r.writerDB, ctx, "tickets", tenantID)
	if err != nil {
		return err
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if patch.Subject != nil {
		updates["subject"] = *patch.Subject
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.AssignedAgentID != nil {
		updates["assigned_agent_id"] = *patch.AssignedAgentID
	}

	result := db.Model(&domain.Ticket{}).Where("tickets.id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CountByStatus counts a tenant's tickets per status. An empty clientID counts all of them.
func (r *TicketRepository) CountByStatus(ctx context.Context, tenantID, clientID string) (map[domain.TicketStatus]int64, error) {
	db, err := tenantScope(r.readerDB, ctx, "tickets", tenantID)
	if err != nil {
		return nil, err
	}

	db = db.Model(&domain.Ticket{})
	if clientID != "" {
		db = db.Where("tickets.client_id = ?", clientID)
	}

	var rows []struct {
		Status domain.TicketStatus
		Total  int64
	}
	if err := db.Select("tickets.status AS status, COUNT(*) AS total").Group("tickets.status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.TicketStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
