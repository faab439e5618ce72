package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/repository"
)

type UserRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewUserRepository(writerDB, readerDB *gorm.DB) *UserRepository {
	return &UserRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

// CreateWithCredential inserts the user and its credential in one transaction.
func (r *UserRepository) CreateWithCredential(ctx context.Context, tenantID string, user *domain.User, credential *domain.Credential) error {
	if tenantID == "" {
		return repository.ErrTenantRequired
	}
	stampHeader(&user.RecordHeader, tenantID)
	user.Email = domain.NormalizeEmail(user.Email)

	err := r.writerDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		credential.UserID = user.ID
		return tx.Create(credential).Error
	})
	return translateError(err)
}

func (r *UserRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.User, error) {
	db, err := tenantScope(r.readerDB, ctx, "users", tenantID)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := db.First(&user, "users.id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, tenantID, email string) (*domain.User, error) {
	db, err := tenantScope(r.readerDB, ctx, "users", tenantID)
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := db.First(&user, "LOWER(users.email) = ?", domain.NormalizeEmail(email)).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, tenantID string, filter domain.UserFilter) ([]domain.User, error) {
	db, err := tenantScope(r.readerDB, ctx, "users", tenantID)
	if err != nil {
		return nil, err
	}

	if filter.Role != "" {
		db = db.Where("users.role = ?", filter.Role)
	}
	if filter.ActiveOnly {
		db = db.Where("users.is_active = ?", true)
	}

	var users []domain.User
	if err := db.Order("users.role ASC").Order("users.last_name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindLoginCandidates returns every user, across tenants, registered with email.
func (r *UserRepository) FindLoginCandidates(ctx context.Context, email string) ([]domain.User, error) {
	var users []domain.User
	err := r.readerDB.WithContext(ctx).
		Where("LOWER(email) = ?", domain.NormalizeEmail(email)).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

type CredentialRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewCredentialRepository(writerDB, readerDB *gorm.DB) *CredentialRepository {
	return &CredentialRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *CredentialRepository) GetByUserID(ctx context.Context, userID string) (*domain.Credential, error) {
	var credential domain.Credential
	// lockout state must be read from the writer to see the latest counter
	if err := r.writerDB.WithContext(ctx).First(&credential, "user_id = ?", userID).Error; err != nil {
		return nil, translateError(err)
	}
	return &credential, nil
}

func (r *CredentialRepository) Update(ctx context.Context, credential *domain.Credential) error {
	result := r.writerDB.WithContext(ctx).
		Model(&domain.Credential{}).
		Where("user_id = ?", credential.UserID).
		Updates(map[string]any{
			"password_hash":  credential.PasswordHash,
			"login_attempts": credential.LoginAttempts,
			"is_locked":      credential.IsLocked,
			"last_login_at":  credential.LastLoginAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
