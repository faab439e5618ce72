package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/service"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) List(ctx context.Context, id auth.Identity, query dto.BookingListQuery) ([]dto.BookingResponse, error) {
	args := m.Called(ctx, id, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.BookingResponse), args.Error(1)
}

func (m *MockBookingService) Get(ctx context.Context, id auth.Identity, bookingID string) (*dto.BookingResponse, error) {
	args := m.Called(ctx, id, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BookingResponse), args.Error(1)
}

func (m *MockBookingService) Create(ctx context.Context, id auth.Identity, req dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BookingResponse), args.Error(1)
}

func (m *MockBookingService) UpdateStatus(ctx context.Context, id auth.Identity, bookingID string, req dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	args := m.Called(ctx, id, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BookingResponse), args.Error(1)
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockBookingService
}

func (s *BookingHandlerTestSuite) SetupTest() {
	s.router = newTestRouter()
	s.mockService = new(MockBookingService)
	h := NewBookingHandler(s.mockService, logger.NewNop())

	s.router.GET("/bookings", withIdentity(clientIdentity, h.ListBookings))
	s.router.GET("/bookings/:id", withIdentity(clientIdentity, h.GetBooking))
	s.router.POST("/bookings", withIdentity(clientIdentity, h.CreateBooking))
	s.router.PUT("/bookings/:id/status", withIdentity(clientIdentity, h.UpdateBookingStatus))
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockService.AssertExpectations(s.T())
}

func TestBookingHandler(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestListBookings_DateRange() {
	query := dto.BookingListQuery{From: "2025-01-01", To: "2025-01-31"}
	s.mockService.On("List", mock.Anything, clientIdentity, query).
		Return([]dto.BookingResponse{{ID: "b-1", Status: "confirmed"}}, nil)

	w := doJSON(s.router, http.MethodGet, "/bookings?from=2025-01-01&to=2025-01-31", nil)

	s.Equal(http.StatusOK, w.Code)
	var bookings []dto.BookingResponse
	decodeBody(s.T(), w, &bookings)
	s.Require().Len(bookings, 1)
	s.Equal("confirmed", bookings[0].Status)
}

func (s *BookingHandlerTestSuite) TestGetBooking_NotFound() {
	s.mockService.On("Get", mock.Anything, clientIdentity, "b-9").Return(nil, service.ErrBookingNotFound)

	w := doJSON(s.router, http.MethodGet, "/bookings/b-9", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *BookingHandlerTestSuite) TestCreateBooking_Success() {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	body := map[string]interface{}{
		"consultantId": "c-1",
		"startTime":    start.Format(time.RFC3339),
		"endTime":      start.Add(time.Hour).Format(time.RFC3339),
		"serviceType":  "Tax advisory",
		"totalAmount":  "450.50",
	}
	s.mockService.On("Create", mock.Anything, clientIdentity, mock.MatchedBy(func(req dto.CreateBookingRequest) bool {
		return req.ConsultantID == "c-1" &&
			req.StartTime.Equal(start) &&
			req.EndTime.Equal(start.Add(time.Hour)) &&
			req.TotalAmount.Equal(decimal.RequireFromString("450.50"))
	})).Return(&dto.BookingResponse{ID: "b-1", Status: "confirmed"}, nil)

	w := doJSON(s.router, http.MethodPost, "/bookings", body)

	s.Equal(http.StatusCreated, w.Code)
}

func (s *BookingHandlerTestSuite) TestCreateBooking_Validation() {
	s.mockService.On("Create", mock.Anything, clientIdentity, mock.Anything).
		Return(nil, service.NewValidationError("consultantId is required"))

	w := doJSON(s.router, http.MethodPost, "/bookings", map[string]string{"serviceType": "Audit"})

	s.Equal(http.StatusBadRequest, w.Code)
	var body map[string]string
	decodeBody(s.T(), w, &body)
	s.Equal("consultantId is required", body["error"])
}

func (s *BookingHandlerTestSuite) TestUpdateBookingStatus_Cancel() {
	req := dto.UpdateBookingStatusRequest{Status: "cancelled"}
	s.mockService.On("UpdateStatus", mock.Anything, clientIdentity, "b-1", req).
		Return(&dto.BookingResponse{ID: "b-1", Status: "cancelled"}, nil)

	w := doJSON(s.router, http.MethodPut, "/bookings/b-1/status", req)

	s.Equal(http.StatusOK, w.Code)
	var booking dto.BookingResponse
	decodeBody(s.T(), w, &booking)
	s.Equal("cancelled", booking.Status)
}
