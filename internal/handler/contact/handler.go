package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/findamedi/clinics-api/internal/model"
	contactService "github.com/findamedi/clinics-api/internal/service/contact"
	"github.com/findamedi/clinics-api/pkg/httputil"
)

type Handler struct {
	service contactService.ContactServicer
}

func NewHandler(service contactService.ContactServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/contact", h.SubmitContact)
}

// All four fields are presence-checked only; the 400 message promises
// nothing beyond "all fields are required".
type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *Handler) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Error(c, http.StatusBadRequest, "Tüm alanlar zorunludur")
		return
	}

	sub := &model.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.service.Submit(c.Request.Context(), sub); err != nil {
		httputil.InternalError(c, err)
		return
	}

	httputil.Message(c, http.StatusOK, "Mesaj başarıyla alındı")
}
