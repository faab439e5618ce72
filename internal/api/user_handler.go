package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

type UserService interface {
	List(ctx context.Context, id auth.Identity) ([]dto.UserResponse, error)
	Roles(ctx context.Context, id auth.Identity) ([]dto.RoleGroup, error)
	Me(ctx context.Context, id auth.Identity) (*dto.UserResponse, error)
	Get(ctx context.Context, id auth.Identity, userID string) (*dto.UserResponse, error)
	Agents(ctx context.Context, id auth.Identity) ([]dto.StaffResponse, error)
	Consultants(ctx context.Context, id auth.Identity) ([]dto.StaffResponse, error)
}

type UserHandler struct {
	*BaseHandler
	service UserService
}

func NewUserHandler(service UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{BaseHandler: &BaseHandler{logger: logger}, service: service}
}

func (h *UserHandler) ListUsers(c *gin.Context, id auth.Identity) {
	users, err := h.service.List(h.RequestCtx(c), id)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) ListRoles(c *gin.Context, id auth.Identity) {
	groups, err := h.service.Roles(h.RequestCtx(c), id)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *UserHandler) Me(c *gin.Context, id auth.Identity) {
	user, err := h.service.Me(h.RequestCtx(c), id)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetUser(c *gin.Context, id auth.Identity) {
	user, err := h.service.Get(h.RequestCtx(c), id, c.Param("id"))
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListAgents(c *gin.Context, id auth.Identity) {
	agents, err := h.service.Agents(h.RequestCtx(c), id)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, agents)
}

func (h *UserHandler) ListConsultants(c *gin.Context, id auth.Identity) {
	consultants, err := h.service.Consultants(h.RequestCtx(c), id)
	if err != nil {
		h.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, consultants)
}
