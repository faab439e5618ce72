package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/domain"
	"github.com/kingrain94/support-desk-api/internal/repository"
)

const (
	recentTicketCount  = 10
	recentBookingCount = 5
)

type DashboardService struct {
	repo repository.Repository
	now  func() time.Time
}

func NewDashboardService(repo repository.Repository) *DashboardService {
	return &DashboardService{repo: repo, now: time.Now}
}

// ClientDashboard summarises one client's tickets and bookings. Only the
// client themselves and ticket managers may view it.
func (s *DashboardService) ClientDashboard(ctx context.Context, id auth.Identity, userID string) (*dto.DashboardResponse, error) {
	if !id.IsSelf(userID) && !id.CanViewAllTickets() {
		return nil, ErrForbidden
	}

	user, err := s.repo.User().GetByID(ctx, id.TenantID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.Role != domain.RoleClient {
		return nil, ErrUserNotFound
	}

	counts, err := s.repo.Ticket().CountByStatus(ctx, id.TenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}
	var stats dto.DashboardStats
	for _, n := range counts {
		stats.TotalTickets += n
	}
	stats.ResolvedTickets = counts[domain.TicketStatusClosed]
	stats.OpenTickets = stats.TotalTickets - stats.ResolvedTickets
	stats.InProgressTickets = counts[domain.TicketStatusInProgress]

	active := domain.BookingFilter{ClientID: userID, Statuses: domain.ActiveBookingStatuses}
	if stats.PendingBookings, err = s.repo.Booking().Count(ctx, id.TenantID, active); err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	active.StartFrom = s.now().UTC()
	if stats.UpcomingBookings, err = s.repo.Booking().Count(ctx, id.TenantID, active); err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	tickets, err := s.repo.Ticket().List(ctx, id.TenantID, domain.TicketFilter{ClientID: userID, Limit: recentTicketCount})
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	bookings, err := s.repo.Booking().List(ctx, id.TenantID, domain.BookingFilter{ClientID: userID, Limit: recentBookingCount})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return &dto.DashboardResponse{
		Stats:          stats,
		RecentTickets:  dto.FromTicketViews(tickets),
		RecentBookings: dto.FromBookingViews(bookings),
		User: dto.DashboardUser{
			ID:       user.ID,
			Email:    user.Email,
			Name:     user.FullName(),
			Role:     string(user.Role),
			Phone:    user.Phone,
			TenantID: user.TenantID,
		},
	}, nil
}
