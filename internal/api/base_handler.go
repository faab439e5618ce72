package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/service"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

type BaseHandler struct {
	logger *logger.Logger
}

func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	return ginCtx.Request.Context()
}

// RespondError maps service errors to HTTP statuses. Anything unrecognised is
// logged and reported as a bare 500.
func (h *BaseHandler) RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountInactive),
		errors.Is(err, service.ErrTenantInactive),
		errors.Is(err, service.ErrAccountLocked):
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.Error{Error: "Insufficient permissions"})
	case errors.Is(err, service.ErrTicketNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrTenantNotFound):
		c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrSearchDisabled):
		c.JSON(http.StatusServiceUnavailable, dto.Error{Error: err.Error()})
	default:
		_ = c.Error(err)
		if h.logger != nil {
			h.logger.Error("Unhandled request error", err,
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path))
		}
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal server error"})
	}
}

func (h *BaseHandler) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.Error{Error: message})
}
