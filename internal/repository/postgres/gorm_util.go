package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/repository"
)

// tenantScope returns a database handle restricted to one tenant's rows of table.
// Every tenant-owned query starts here.
func tenantScope(db *gorm.DB, ctx context.Context, table, tenantID string) (*gorm.DB, error) {
	if tenantID == "" {
		return nil, repository.ErrTenantRequired
	}
	return db.WithContext(ctx).Where(table+".tenant_id = ?", tenantID), nil
}

// stampHeader binds a new row to its tenant and fills in a missing id.
func stampHeader(h *domain.RecordHeader, tenantID string) {
	h.TenantID = tenantID
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrDuplicate
	default:
		return err
	}
}
