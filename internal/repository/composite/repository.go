package composite

import (
	opensearchclient "github.com/opensearch-project/opensearch-go/v2"

	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/internal/repository"
	"github.com/kingrain94/support-desk-api/internal/repository/opensearch"
	"github.com/kingrain94/support-desk-api/internal/repository/postgres"
)

type compositeRepository struct {
	postgresRepo repository.PostgresRepository
	searchRepo   repository.TicketSearchRepository
}

// NewCompositeRepository wires the relational repositories and, when osClient
// is not nil, the ticket search index.
func NewCompositeRepository(dbConnections *config.DatabaseConnections, osClient *opensearchclient.Client, osConfig *config.OpenSearchConfig) repository.Repository {
	r := &compositeRepository{
		postgresRepo: postgres.NewPostgresRepository(dbConnections),
	}
	if osClient != nil {
		r.searchRepo = opensearch.NewRepository(osClient, osConfig)
	}
	return r
}

func (r *compositeRepository) Tenant() repository.TenantRepository {
	return r.postgresRepo.Tenant()
}

func (r *compositeRepository) User() repository.UserRepository {
	return r.postgresRepo.User()
}

func (r *compositeRepository) Credential() repository.CredentialRepository {
	return r.postgresRepo.Credential()
}

func (r *compositeRepository) Ticket() repository.TicketRepository {
	return r.postgresRepo.Ticket()
}

func (r *compositeRepository) Booking() repository.BookingRepository {
	return r.postgresRepo.Booking()
}

func (r *compositeRepository) Search() repository.TicketSearchRepository {
	return r.searchRepo
}
