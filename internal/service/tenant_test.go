package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/mocks"
	"github.com/kingrain94/support-desk-api/internal/repository"
)

type TenantServiceTestSuite struct {
	suite.Suite
	mockRepo   *mocks.Repository
	mockTenant *mocks.TenantRepository
	service    *TenantService
}

func (s *TenantServiceTestSuite) SetupTest() {
	s.mockRepo = new(mocks.Repository)
	s.mockTenant = new(mocks.TenantRepository)

	s.mockRepo.On("Tenant").Return(s.mockTenant)

	s.service = NewTenantService(s.mockRepo)
}

func TestTenantService(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}

func (s *TenantServiceTestSuite) TestCurrent_Success() {
	// Arrange
	ctx := context.Background()
	logo := "https://cdn.example.com/speccon.png"
	s.mockTenant.On("GetByID", ctx, "tenant1").Return(&domain.Tenant{
		ID:           "tenant1",
		Name:         "Speccon",
		Subdomain:    "speccon",
		LogoURL:      &logo,
		PrimaryColor: domain.DefaultPrimaryColor,
		IsActive:     true,
	}, nil)

	// Act
	resp, err := s.service.Current(ctx, auth.Identity{UserID: "u1", TenantID: "tenant1", Role: domain.RoleClient})

	// Assert
	s.NoError(err)
	s.Equal("Speccon", resp.Name)
	s.Equal(logo, resp.LogoURL)
	s.Equal("#0066cc", resp.PrimaryColor)
	s.Empty(resp.CustomDomain)
	s.mockTenant.AssertExpectations(s.T())
}

func (s *TenantServiceTestSuite) TestGetByID_NotFound() {
	// Arrange
	ctx := context.Background()
	s.mockTenant.On("GetByID", ctx, "missing").Return(nil, repository.ErrNotFound)

	// Act
	tenant, err := s.service.GetByID(ctx, "missing")

	// Assert
	s.ErrorIs(err, ErrTenantNotFound)
	s.Nil(tenant)
}
