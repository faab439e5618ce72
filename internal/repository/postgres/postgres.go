package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/repository"
)

type postgresRepository struct {
	tenantRepo     repository.TenantRepository
	userRepo       repository.UserRepository
	credentialRepo repository.CredentialRepository
	ticketRepo     repository.TicketRepository
	bookingRepo    repository.BookingRepository
}

func NewPostgresRepository(dbConnections *config.DatabaseConnections) repository.PostgresRepository {
	writer, reader := dbConnections.Writer, dbConnections.Reader
	return &postgresRepository{
		tenantRepo:     NewTenantRepository(writer, reader),
		userRepo:       NewUserRepository(writer, reader),
		credentialRepo: NewCredentialRepository(writer, reader),
		ticketRepo:     NewTicketRepository(writer, reader),
		bookingRepo:    NewBookingRepository(writer, reader),
	}
}

func (r *postgresRepository) Tenant() repository.TenantRepository {
	return r.tenantRepo
}

func (r *postgresRepository) User() repository.UserRepository {
	return r.userRepo
}

func (r *postgresRepository) Credential() repository.CredentialRepository {
	return r.credentialRepo
}

func (r *postgresRepository) Ticket() repository.TicketRepository {
	return r.ticketRepo
}

func (r *postgresRepository) Booking() repository.BookingRepository {
	return r.bookingRepo
}

// compositeIndexes cannot be expressed through tags because tenant_id lives in
// the shared record header.
var compositeIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_tenant_email ON users (tenant_id, email)",
	"CREATE INDEX IF NOT EXISTS idx_users_tenant_role ON users (tenant_id, role)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_tickets_tenant_sequence ON tickets (tenant_id, sequence)",
	"CREATE INDEX IF NOT EXISTS idx_tickets_tenant_status ON tickets (tenant_id, status)",
	"CREATE INDEX IF NOT EXISTS idx_tickets_tenant_priority ON tickets (tenant_id, priority)",
}

// Migrate syncs the schema of every persisted entity.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Tenant{},
		&domain.User{},
		&domain.Credential{},
		&domain.Ticket{},
		&domain.Booking{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	for _, stmt := range compositeIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
