package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/support-desk-api/internal/api/dto"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
}

type AuthHandler struct {
	*BaseHandler
	service AuthService
}

func NewAuthHandler(service AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{BaseHandler: &BaseHandler{logger: logger}, service: service}
}

// Login exchanges email and password for an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(h.RequestCtx(c), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Register creates a client account in an existing tenant
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Register(h.RequestCtx(c), req)
	if err != nil {
		h.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
