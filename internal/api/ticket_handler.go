package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

const attachmentField = "file"

type TicketService interface {
	List(ctx context.Context, id auth.Identity, query dto.TicketListQuery) ([]dto.TicketResponse, error)
	Get(ctx context.Context, id auth.Identity, ticketID string) (*dto.TicketResponse, error)
	Create(ctx context.Context, id auth.Identity, req dto.CreateTicketRequest, upload *dto.AttachmentUpload) (*dto.TicketResponse, error)
	Update(ctx context.Context, id auth.Identity, ticketID string, req dto.UpdateTicketRequest) (*dto.TicketResponse, error)
	Search(ctx context.Context, id auth.Identity, req dto.TicketSearchRequest) ([]dto.TicketResponse, error)
}

type TicketHandler struct {
	*BaseHandler
	service TicketService
}

func NewTicketHandler(service TicketService, logger *logger.Logger) *TicketHandler {
	return &TicketHandler{BaseHandler: &BaseHandler{logger: logger}, service: service}
}

func (h *TicketHandler) ListTickets(c *gin.Context, id auth.Identity) {
	var query dto.TicketListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.badRequest(c, "invalid query parameters")
		return
	}

	tickets, err := h.service.List(h.RequestCtx(c), id, query)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) GetTicket(c *gin.Context, id auth.Identity) {
	ticket, err := h.service.Get(h.RequestCtx(c), id, c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// CreateTicket accepts a multipart form with an optional file attachment
func (h *TicketHandler) CreateTicket(c *gin.Context, id auth.Identity) {
	var req dto.CreateTicketRequest
	if err := c.ShouldBind(&req); err != nil {
		h.badRequest(c, "invalid form data")
		return
	}

	var upload *dto.AttachmentUpload
	fileHeader, err := c.FormFile(attachmentField)
	switch {
	case err == nil:
		file, err := fileHeader.Open()
		if err != nil {
			h.badRequest(c, "unable to read attachment")
			return
		}
		defer file.Close()
		upload = &dto.AttachmentUpload{
			Filename: fileHeader.Filename,
			Size:     fileHeader.Size,
			Content:  file,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		h.badRequest(c, "invalid attachment")
		return
	}

	ticket, err := h.service.Create(h.RequestCtx(c), id, req, upload)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

func (h *TicketHandler) UpdateTicket(c *gin.Context, id auth.Identity) {
	var req dto.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	ticket, err := h.service.Update(h.RequestCtx(c), id, c.Param("id"), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) SearchTickets(c *gin.Context, id auth.Identity) {
	var req dto.TicketSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "invalid query parameters")
		return
	}

	tickets, err := h.service.Search(h.RequestCtx(c), id, req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tickets)
}
