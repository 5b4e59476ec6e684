package clinic

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
	clinicService "github.com/findamedi/clinics-api/internal/service/clinic"
	"github.com/findamedi/clinics-api/pkg/httputil"
)

type Handler struct {
	service clinicService.ClinicServicer
}

func NewHandler(service clinicService.ClinicServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	clinics := r.Group("/clinics")
	{
		clinics.GET("", h.ListClinics)
		clinics.GET("/compare", h.CompareClinics)
		clinics.GET("/:slug", h.GetClinic)
	}
}

type listClinicsRequest struct {
	Category string   `form:"category" binding:"omitempty,slug"`
	PriceMin *int     `form:"priceMin" binding:"omitempty,min=0"`
	PriceMax *int     `form:"priceMax" binding:"omitempty,min=0"`
	Rating   *float64 `form:"rating" binding:"omitempty,min=0,max=5"`
	Location string   `form:"location"`
	Page     int      `form:"page"`
	Limit    int      `form:"limit" binding:"omitempty,max=100"`
	Sort     string   `form:"sort" binding:"omitempty,oneof=featured rating price-asc price-desc"`
}

func (h *Handler) ListClinics(c *gin.Context) {
	var req listClinicsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.Error(c, http.StatusBadRequest, "invalid query parameters")
		return
	}

	filter := &model.ClinicFilter{
		Category: req.Category,
		PriceMin: req.PriceMin,
		PriceMax: req.PriceMax,
		Rating:   req.Rating,
		Location: req.Location,
		Page:     req.Page,
		Limit:    req.Limit,
		Sort:     req.Sort,
	}
	filter.Normalize()

	clinics, total, err := h.service.ListClinics(c.Request.Context(), filter)
	if err != nil {
		httputil.InternalError(c, err)
		return
	}
	if clinics == nil {
		clinics = []*model.Clinic{}
	}

	c.JSON(http.StatusOK, gin.H{
		"clinics":    clinics,
		"pagination": httputil.NewPagination(filter.Page, filter.Limit, total),
	})
}

func (h *Handler) GetClinic(c *gin.Context) {
	slug := c.Param("slug")

	view := model.ViewEvent{
		VisitorID: c.ClientIP(),
		Country:   c.GetHeader("CF-IPCountry"),
	}

	clinic, err := h.service.GetClinicBySlug(c.Request.Context(), slug, view)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httputil.Error(c, http.StatusNotFound, "Clinic not found")
			return
		}
		httputil.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, clinic)
}

// CompareClinics resolves a comma-separated id list; ids that cannot be
// resolved are dropped from the result rather than reported.
func (h *Handler) CompareClinics(c *gin.Context) {
	raw := c.Query("ids")
	if raw == "" {
		httputil.Error(c, http.StatusBadRequest, "ids is required")
		return
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			// Malformed ids behave like unresolvable ones.
			continue
		}
		ids = append(ids, id)
	}

	clinics, err := h.service.CompareClinics(c.Request.Context(), ids)
	if err != nil {
		httputil.InternalError(c, err)
		return
	}
	if clinics == nil {
		clinics = []*model.Clinic{}
	}

	c.JSON(http.StatusOK, gin.H{"clinics": clinics})
}
