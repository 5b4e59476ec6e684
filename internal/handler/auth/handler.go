package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authService "github.com/findamedi/clinics-api/internal/service/auth"
	"github.com/findamedi/clinics-api/pkg/httputil"
)

type Handler struct {
	service authService.AuthServicer
}

func NewHandler(service authService.AuthServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Error(c, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authService.ErrInvalidCredentials) {
			httputil.Error(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		httputil.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
