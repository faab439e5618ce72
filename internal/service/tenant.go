package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/repository"
)

type TenantService struct {
	repo repository.Repository
}

func NewTenantService(repo repository.Repository) *TenantService {
	return &TenantService{repo: repo}
}

func (s *TenantService) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	tenant, err := s.repo.Tenant().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	return tenant, nil
}

// Current returns the branding of the caller's tenant.
func (s *TenantService) Current(ctx context.Context, id auth.Identity) (*dto.TenantResponse, error) {
	tenant, err := s.GetByID(ctx, id.TenantID)
	if err != nil {
		return nil, err
	}
	return dto.FromTenant(tenant), nil
}
