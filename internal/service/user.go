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

const consultantSpecialization = "General Consultant"

type UserService struct {
	repo repository.Repository
}

func NewUserService(repo repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// List returns every user of the caller's tenant ordered by role, then last name.
func (s *UserService) List(ctx context.Context, id auth.Identity) ([]dto.UserResponse, error) {
	if !id.CanManageUsers() {
		return nil, ErrForbidden
	}

	tenant, err := s.tenant(ctx, id.TenantID)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.User().List(ctx, id.TenantID, domain.UserFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = dto.FromUser(&users[i], tenant.Name)
	}
	return responses, nil
}

// Roles groups the active users of the tenant by role.
func (s *UserService) Roles(ctx context.Context, id auth.Identity) ([]dto.RoleGroup, error) {
	if !id.IsAdmin() && !id.IsAgent() {
		return nil, ErrForbidden
	}

	users, err := s.repo.User().List(ctx, id.TenantID, domain.UserFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	groups := make([]dto.RoleGroup, 0)
	index := make(map[domain.Role]int)
	for i := range users {
		user := &users[i]
		pos, ok := index[user.Role]
		if !ok {
			pos = len(groups)
			index[user.Role] = pos
			groups = append(groups, dto.RoleGroup{Role: string(user.Role), Users: []dto.UserSummary{}})
		}
		groups[pos].Users = append(groups[pos].Users, dto.UserSummary{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.FullName(),
			Phone: user.Phone,
		})
		groups[pos].Count++
	}
	return groups, nil
}

func (s *UserService) Me(ctx context.Context, id auth.Identity) (*dto.UserResponse, error) {
	return s.Get(ctx, id, id.UserID)
}

// Get returns a user of the caller's tenant. Only admins may look at other users.
func (s *UserService) Get(ctx context.Context, id auth.Identity, userID string) (*dto.UserResponse, error) {
	if !id.IsSelf(userID) && !id.IsAdmin() {
		return nil, ErrForbidden
	}

	user, err := s.repo.User().GetByID(ctx, id.TenantID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	tenant, err := s.tenant(ctx, id.TenantID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromUser(user, tenant.Name)
	return &resp, nil
}

func (s *UserService) Agents(ctx context.Context, id auth.Identity) ([]dto.StaffResponse, error) {
	return s.staff(ctx, id.TenantID, domain.RoleAgent, "")
}

func (s *UserService) Consultants(ctx context.Context, id auth.Identity) ([]dto.StaffResponse, error) {
	return s.staff(ctx, id.TenantID, domain.RoleConsultant, consultantSpecialization)
}

func (s *UserService) staff(ctx context.Context, tenantID string, role domain.Role, specialization string) ([]dto.StaffResponse, error) {
	users, err := s.repo.User().List(ctx, tenantID, domain.UserFilter{Role: role, ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s users: %w", role, err)
	}

	responses := make([]dto.StaffResponse, len(users))
	for i := range users {
		responses[i] = dto.FromStaff(&users[i])
		responses[i].Specialization = specialization
	}
	return responses, nil
}

func (s *UserService) tenant(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenant, err := s.repo.Tenant().GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	return tenant, nil
}
