package category

import (
	"net/http"

	"github.com/gin-gonic/gin"

	categoryService "github.com/findamedi/clinics-api/internal/service/category"
	"github.com/findamedi/clinics-api/pkg/httputil"
)

type Handler struct {
	service categoryService.CategoryServicer
}

func NewHandler(service categoryService.CategoryServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/categories", h.ListCategories)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		httputil.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
