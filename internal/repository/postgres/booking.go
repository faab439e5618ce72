package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/repository"
)

const bookingViewColumns = "bookings.*, " +
	"cu.first_name AS client_first_name, cu.last_name AS client_last_name, " +
	"co.first_name AS consultant_first_name, co.last_name AS consultant_last_name"

const (
	bookingClientJoin     = "LEFT JOIN users cu ON cu.id = bookings.client_id AND cu.tenant_id = bookings.tenant_id"
	bookingConsultantJoin = "LEFT JOIN users co ON co.id = bookings.consultant_id AND co.tenant_id = bookings.tenant_id"
)

type BookingRepository struct {
	writerDB *gorm.DB
	readerDB *gorm.DB
}

func NewBookingRepository(writerDB, readerDB *gorm.DB) *BookingRepository {
	return &BookingRepository{
		writerDB: writerDB,
		readerDB: readerDB,
	}
}

func (r *BookingRepository) Create(ctx context.Context, tenantID string, booking *domain.Booking) error {
	if tenantID == "" {
		return repository.ErrTenantRequired
	}
	stampHeader(&booking.RecordHeader, tenantID)

	return translateError(r.writerDB.WithContext(ctx).Create(booking).Error)
}

func (r *BookingRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.BookingView, error) {
	db, err := tenantScope(r.readerDB, ctx, "bookings", tenantID)
	if err != nil {
		return nil, err
	}

	var view domain.BookingView
	result := db.Table("bookings").
		Select(bookingViewColumns).
		Joins(bookingClientJoin).
		Joins(bookingConsultantJoin).
		Where("bookings.id = ?", id).
		Limit(1).
		Scan(&view)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return &view, nil
}

func (r *BookingRepository) List(ctx context.Context, tenantID string, filter domain.BookingFilter) ([]domain.BookingView, error) {
	db, err := tenantScope(r.readerDB, ctx, "bookings", tenantID)
	if err != nil {
		return nil, err
	}

	db = applyBookingFilter(db.Table("bookings"), filter).
		Select(bookingViewColumns).
		Joins(bookingClientJoin).
		Joins(bookingConsultantJoin)
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}

	views := make([]domain.BookingView, 0)
	if err := db.Order("bookings.start_time DESC").Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

func (r *BookingRepository) Count(ctx context.Context, tenantID string, filter domain.BookingFilter) (int64, error) {
	db, err := tenantScope(r.readerDB, ctx, "bookings", tenantID)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := applyBookingFilter(db.Model(&domain.Booking{}), filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tenantID, id string, status domain.BookingStatus) error {
	db, err := tenantScope(r.writerDB, ctx, "bookings", tenantID)
	if err != nil {
		return err
	}

	result := db.Model(&domain.Booking{}).
		Where("bookings.id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func applyBookingFilter(db *gorm.DB, filter domain.BookingFilter) *gorm.DB {
	if filter.ClientID != "" {
		db = db.Where("bookings.client_id = ?", filter.ClientID)
	}
	if filter.ConsultantID != "" {
		db = db.Where("bookings.consultant_id = ?", filter.ConsultantID)
	}
	if len(filter.Statuses) > 0 {
		db = db.Where("bookings.status IN ?", filter.Statuses)
	}
	if !filter.StartFrom.IsZero() {
		db = db.Where("bookings.start_time >= ?", filter.StartFrom)
	}
	if !filter.StartTo.IsZero() {
		db = db.Where("bookings.start_time <= ?", filter.StartTo)
	}
	return db
}
