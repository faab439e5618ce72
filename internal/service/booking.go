package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/repository"
	"github.com/kingrain94/support-desk-api/pkg/utils"
)

type BookingService struct {
	repo repository.Repository
}

func NewBookingService(repo repository.Repository) *BookingService {
	return &BookingService{repo: repo}
}

func (s *BookingService) List(ctx context.Context, id auth.Identity, query dto.BookingListQuery) ([]dto.BookingResponse, error) {
	filter := visibleBookings(id)

	if query.From != "" {
		from, err := utils.ParseUserTime(query.From, false)
		if err != nil {
			return nil, NewValidationError(err.Error())
		}
		filter.StartFrom = from
	}
	if query.To != "" {
		to, err := utils.ParseUserTime(query.To, true)
		if err != nil {
			return nil, NewValidationError(err.Error())
		}
		filter.StartTo = to
	}

	views, err := s.repo.Booking().List(ctx, id.TenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return dto.FromBookingViews(views), nil
}

// visibleBookings narrows a listing to what the caller may see.
func visibleBookings(id auth.Identity) domain.BookingFilter {
	switch {
	case id.IsAdmin() || id.IsAgent():
		return domain.BookingFilter{}
	case id.IsConsultant():
		return domain.BookingFilter{ConsultantID: id.UserID}
	default:
		return domain.BookingFilter{ClientID: id.UserID}
	}
}

func canSeeBooking(id auth.Identity, b *domain.Booking) bool {
	switch {
	case id.IsAdmin() || id.IsAgent():
		return true
	case id.IsConsultant():
		return b.ConsultantID == id.UserID
	default:
		return b.ClientID == id.UserID
	}
}

func (s *BookingService) Get(ctx context.Context, id auth.Identity, bookingID string) (*dto.BookingResponse, error) {
	view, err := s.load(ctx, id, bookingID)
	if err != nil {
		return nil, err
	}
	return dto.FromBookingView(view), nil
}

func (s *BookingService) load(ctx context.Context, id auth.Identity, bookingID string) (*domain.BookingView, error) {
	view, err := s.repo.Booking().GetByID(ctx, id.TenantID, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if !canSeeBooking(id, &view.Booking) {
		return nil, ErrBookingNotFound
	}
	return view, nil
}

// Create books a session. Clients book for themselves; booking managers name
// the client. Both members must be active users of the caller's tenant.
func (s *BookingService) Create(ctx context.Context, id auth.Identity, req dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	clientID := strings.TrimSpace(req.ClientID)
	switch {
	case id.IsClient():
		if clientID != "" && clientID != id.UserID {
			return nil, ErrForbidden
		}
		clientID = id.UserID
	case id.CanManageBookings():
		if clientID == "" {
			return nil, NewValidationError("clientId is required")
		}
	default:
		return nil, ErrForbidden
	}

	consultantID := strings.TrimSpace(req.ConsultantID)
	serviceType := strings.TrimSpace(req.ServiceType)
	if consultantID == "" || serviceType == "" {
		return nil, NewValidationError("consultantId and serviceType are required")
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, NewValidationError("startTime and endTime are required")
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, NewValidationError("endTime must be after startTime")
	}
	if req.TotalAmount.IsNegative() {
		return nil, NewValidationError("totalAmount must not be negative")
	}

	location := domain.LocationOnline
	if req.LocationType != "" {
		if !domain.IsValidLocationType(req.LocationType) {
			return nil, NewValidationError(fmt.Sprintf("invalid locationType %q", req.LocationType))
		}
		location = domain.LocationType(req.LocationType)
	}

	if err := s.requireMember(ctx, id.TenantID, clientID, domain.RoleClient, "clientId"); err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, id.TenantID, consultantID, domain.RoleConsultant, "consultantId"); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ClientID:     clientID,
		ConsultantID: consultantID,
		StartTime:    req.StartTime.UTC(),
		EndTime:      req.EndTime.UTC(),
		ServiceType:  serviceType,
		LocationType: location,
		Address:      optional(req.Address),
		Instructions: optional(req.Instructions),
		TotalAmount:  req.TotalAmount.Round(2),
		Status:       domain.BookingStatusConfirmed,
	}

	if err := s.repo.Booking().Create(ctx, id.TenantID, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	view, err := s.repo.Booking().GetByID(ctx, id.TenantID, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created booking: %w", err)
	}
	return dto.FromBookingView(view), nil
}

// requireMember checks that userID is an active user with role in tenantID.
func (s *BookingService) requireMember(ctx context.Context, tenantID, userID string, role domain.Role, field string) error {
	user, err := s.repo.User().GetByID(ctx, tenantID, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to load %s: %w", field, err)
	}
	if user == nil || !user.IsActive || user.Role != role {
		return NewValidationError(fmt.Sprintf("%s must reference an active %s", field, role))
	}
	return nil
}

// UpdateStatus changes a booking's status. Booking managers may set any
// status on bookings they can see; the owning client may only cancel.
func (s *BookingService) UpdateStatus(ctx context.Context, id auth.Identity, bookingID string, req dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	if !domain.IsValidBookingStatus(req.Status) {
		return nil, NewValidationError(fmt.Sprintf("invalid status %q", req.Status))
	}
	status := domain.BookingStatus(req.Status)

	view, err := s.load(ctx, id, bookingID)
	if err != nil {
		return nil, err
	}

	if !id.CanManageBookings() && status != domain.BookingStatusCancelled {
		return nil, ErrForbidden
	}

	if err := s.repo.Booking().UpdateStatus(ctx, id.TenantID, bookingID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	view.Status = status
	return dto.FromBookingView(view), nil
}
