package repository

import (
	"context"
	"errors"

	"github.com/kingrain94/support-desk-api/internal/domain"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("record already exists")
	ErrTenantRequired = errors.New("tenant id is required")
)

//go:generate mockery --name TenantRepository --output ../mocks
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error)
}

// UserRepository methods are scoped to a tenant, except FindLoginCandidates
// which serves the pre-authentication login lookup.
//
//go:generate mockery --name UserRepository --output ../mocks
type UserRepository interface {
	CreateWithCredential(ctx context.Context, tenantID string, user *domain.User, credential *domain.Credential) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*domain.User, error)
	List(ctx context.Context, tenantID string, filter domain.UserFilter) ([]domain.User, error)
	FindLoginCandidates(ctx context.Context, email string) ([]domain.User, error)
}

//go:generate mockery --name CredentialRepository --output ../mocks
type CredentialRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Credential, error)
	Update(ctx context.Context, credential *domain.Credential) error
}

//go:generate mockery --name TicketRepository --output ../mocks
type TicketRepository interface {
	Create(ctx context.Context, tenantID string, ticket *domain.Ticket) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.TicketView, error)
	List(ctx context.Context, tenantID string, filter domain.TicketFilter) ([]domain.TicketView, error)
	Update(ctx context.Context, tenantID, id string, patch domain.TicketPatch) error
	CountByStatus(ctx context.Context, tenantID, clientID string) (map[domain.TicketStatus]int64, error)
}

//go:generate mockery --name BookingRepository --output ../mocks
type BookingRepository interface {
	Create(ctx context.Context, tenantID string, booking *domain.Booking) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.BookingView, error)
	List(ctx context.Context, tenantID string, filter domain.BookingFilter) ([]domain.BookingView, error)
	Count(ctx context.Context, tenantID string, filter domain.BookingFilter) (int64, error)
	UpdateStatus(ctx context.Context, tenantID, id string, status domain.BookingStatus) error
}

//go:generate mockery --name TicketSearchRepository --output ../mocks
type TicketSearchRepository interface {
	Index(ctx context.Context, doc *domain.TicketDocument) error
	Search(ctx context.Context, tenantID string, query domain.TicketSearchQuery) ([]domain.TicketDocument, error)
	DeleteIndex(ctx context.Context, tenantID string) error
}

//go:generate mockery --name PostgresRepository --output ../mocks
type PostgresRepository interface {
	Tenant() TenantRepository
	User() UserRepository
	Credential() CredentialRepository
	Ticket() TicketRepository
	Booking() BookingRepository
}

//go:generate mockery --name Repository --output ../mocks
type Repository interface {
	PostgresRepository
	// Search is nil when ticket search is disabled.
	Search() TicketSearchRepository
}
