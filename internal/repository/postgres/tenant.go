package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kingrain94/support-desk-api/internal/domain"
)

type TenantRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewTenantRepository(writerDB, readerDB *gorm.DB) *TenantRepository {
	return &TenantRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *TenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	if tenant.PrimaryColor == "" {
		tenant.PrimaryColor = domain.DefaultPrimaryColor
	}
	tenant.Subdomain = strings.ToLower(strings.TrimSpace(tenant.Subdomain))

	if err := r.writerDB.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, translateError(err)
	}
	return tenant, nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	if err := r.readerDB.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &tenant, nil
}

func (r *TenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.readerDB.WithContext(ctx).
		First(&tenant, "subdomain = ?", strings.ToLower(strings.TrimSpace(subdomain))).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &tenant, nil
}
