package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

type BookingService interface {
	List(ctx context.Context, id auth.Identity, query dto.BookingListQuery) ([]dto.BookingResponse, error)
	Get(ctx context.Context, id auth.Identity, bookingID string) (*dto.BookingResponse, error)
	Create(ctx context.Context, id auth.Identity, req dto.CreateBookingRequest) (*dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id auth.Identity, bookingID string, req dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
}

type BookingHandler struct {
	*BaseHandler
	service BookingService
}

func NewBookingHandler(service BookingService, logger *logger.Logger) *BookingHandler {
	return &BookingHandler{BaseHandler: &BaseHandler{logger: logger}, service: service}
}

func (h *BookingHandler) ListBookings(c *gin.Context, id auth.Identity) {
	var query dto.BookingListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.badRequest(c, "invalid query parameters")
		return
	}

	bookings, err := h.service.List(h.RequestCtx(c), id, query)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(c *gin.Context, id auth.Identity) {
	booking, err := h.service.Get(h.RequestCtx(c), id, c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) CreateBooking(c *gin.Context, id auth.Identity) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	booking, err := h.service.Create(h.RequestCtx(c), id, req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) UpdateBookingStatus(c *gin.Context, id auth.Identity) {
	var req dto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	booking, err := h.service.UpdateStatus(h.RequestCtx(c), id, c.Param("id"), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
