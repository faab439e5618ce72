package auth

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kingrain94/support-desk-api/internal/domain"
)

var ErrInvalidIdentity = errors.New("token does not carry a usable identity")

// Identity is the authenticated caller. It is built once per request from a
// verified token and handed to handlers and services as a plain value.
type Identity struct {
	UserID   string
	TenantID string
	Email    string
	Role     domain.Role
	TokenID  string
}

func IdentityFromClaims(claims *Claims) (Identity, error) {
	if claims == nil {
		return Identity{}, ErrInvalidIdentity
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return Identity{}, fmt.Errorf("%w: subject: %w", ErrInvalidIdentity, err)
	}
	if _, err := uuid.Parse(claims.TenantID); err != nil {
		return Identity{}, fmt.Errorf("%w: tenant id: %w", ErrInvalidIdentity, err)
	}
	if !domain.IsValidRole(claims.Role) {
		return Identity{}, fmt.Errorf("%w: unknown role %q", ErrInvalidIdentity, claims.Role)
	}

	return Identity{
		UserID:   claims.Subject,
		TenantID: claims.TenantID,
		Email:    claims.Email,
		Role:     domain.Role(claims.Role),
		TokenID:  claims.ID,
	}, nil
}

func (i Identity) IsAdmin() bool      { return i.Role == domain.RoleAdmin }
func (i Identity) IsConsultant() bool { return i.Role == domain.RoleConsultant }
func (i Identity) IsAgent() bool      { return i.Role == domain.RoleAgent }
func (i Identity) IsClient() bool     { return i.Role == domain.RoleClient }

func (i Identity) CanManageTickets() bool {
	return i.Role.In(domain.RoleAdmin, domain.RoleAgent)
}

func (i Identity) CanManageUsers() bool {
	return i.IsAdmin()
}

func (i Identity) CanManageBookings() bool {
	return i.Role.In(domain.RoleAdmin, domain.RoleConsultant, domain.RoleAgent)
}

func (i Identity) CanViewAllTickets() bool {
	return i.Role.In(domain.RoleAdmin, domain.RoleAgent)
}

// IsSelf reports whether userID is the caller.
func (i Identity) IsSelf(userID string) bool {
	return i.UserID == userID
}
