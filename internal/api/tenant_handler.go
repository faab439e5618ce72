package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

type TenantService interface {
	Current(ctx context.Context, id auth.Identity) (*dto.TenantResponse, error)
}

type TenantHandler struct {
	*BaseHandler
	service TenantService
}

func NewTenantHandler(service TenantService, logger *logger.Logger) *TenantHandler {
	return &TenantHandler{BaseHandler: &BaseHandler{logger: logger}, service: service}
}

// CurrentTenant returns the branding of the caller's tenant
func (h *TenantHandler) CurrentTenant(c *gin.Context, id auth.Identity) {
	tenant, err := h.service.Current(h.RequestCtx(c), id)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}
