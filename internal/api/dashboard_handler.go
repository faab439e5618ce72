package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

type DashboardService interface {
	ClientDashboard(ctx context.Context, id auth.Identity, userID string) (*dto.DashboardResponse, error)
}

type DashboardHandler struct {
	*BaseHandler
	service DashboardService
}

func NewDashboardHandler(service DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{BaseHandler: &BaseHandler{logger: logger}, service: service}
}

// ClientDashboard returns ticket and booking statistics for one client
func (h *DashboardHandler) ClientDashboard(c *gin.Context, id auth.Identity) {
	dashboard, err := h.service.ClientDashboard(h.RequestCtx(c), id, c.Param("userId"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
