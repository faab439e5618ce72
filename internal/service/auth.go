package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/repository"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID, tenantID, email string, role domain.Role) (string, error)
}

type AuthService struct {
	repo   repository.Repository
	hasher auth.PasswordHasher
	tokens TokenIssuer
	logger *logger.Logger
	now    func() time.Time
}

func NewAuthService(repo repository.Repository, hasher auth.PasswordHasher, tokens TokenIssuer, logger *logger.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, NewValidationError("email and password are required")
	}

	user, tenant, err := s.findLoginUser(ctx, email, strings.TrimSpace(req.TenantSubdomain))
	if err != nil {
		return nil, err
	}

	credential, err := s.repo.Credential().GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}
	if !tenant.IsActive {
		return nil, ErrTenantInactive
	}
	if credential.IsLocked {
		return nil, ErrAccountLocked
	}

	if !s.hasher.Verify(req.Password, credential.PasswordHash) {
		credential.RecordFailure()
		if err := s.repo.Credential().Update(ctx, credential); err != nil {
			return nil, fmt.Errorf("failed to record login failure: %w", err)
		}
		if credential.IsLocked {
			s.logger.Warnf("Account %s locked after %d failed logins", user.ID, credential.LoginAttempts)
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	credential.RecordSuccess(s.now().UTC())
	if err := s.repo.Credential().Update(ctx, credential); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return s.authResponse(user, tenant)
}

// findLoginUser resolves the account an email refers to. Without a subdomain
// the email must be unique across tenants.
func (s *AuthService) findLoginUser(ctx context.Context, email, subdomain string) (*domain.User, *domain.Tenant, error) {
	if subdomain != "" {
		tenant, err := s.repo.Tenant().GetBySubdomain(ctx, subdomain)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, ErrInvalidCredentials
			}
			return nil, nil, fmt.Errorf("failed to load tenant: %w", err)
		}

		user, err := s.repo.User().GetByEmail(ctx, tenant.ID, email)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil, ErrInvalidCredentials
			}
			return nil, nil, fmt.Errorf("failed to load user: %w", err)
		}
		return user, tenant, nil
	}

	candidates, err := s.repo.User().FindLoginCandidates(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}
	switch len(candidates) {
	case 0:
		return nil, nil, ErrInvalidCredentials
	case 1:
	default:
		return nil, nil, NewValidationError("tenantSubdomain is required")
	}

	user := &candidates[0]
	tenant, err := s.repo.Tenant().GetByID(ctx, user.TenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	return user, tenant, nil
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := domain.NormalizeEmail(req.Email)
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	subdomain := strings.TrimSpace(req.TenantSubdomain)
	if email == "" || req.Password == "" || firstName == "" || lastName == "" || subdomain == "" {
		return nil, NewValidationError("email, password, firstName, lastName and tenantSubdomain are required")
	}

	tenant, err := s.repo.Tenant().GetBySubdomain(ctx, subdomain)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewValidationError(ErrTenantNotFound.Error())
		}
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if !tenant.IsActive {
		return nil, NewValidationError(ErrTenantNotFound.Error())
	}

	if _, err := s.repo.User().GetByEmail(ctx, tenant.ID, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      domain.RoleClient,
		Phone:     strings.TrimSpace(req.Phone),
		IsActive:  true,
	}
	credential := &domain.Credential{PasswordHash: hash}

	if err := s.repo.User().CreateWithCredential(ctx, tenant.ID, user, credential); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Infof("Registered client %s in tenant %s", user.ID, tenant.ID)
	return s.authResponse(user, tenant)
}

func (s *AuthService) authResponse(user *domain.User, tenant *domain.Tenant) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, tenant.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &dto.AuthResponse{
		Success: true,
		Token:   token,
		User:    dto.NewAuthUser(user, tenant),
	}, nil
}
