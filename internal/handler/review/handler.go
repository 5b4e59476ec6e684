package review

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
	reviewService "github.com/findamedi/clinics-api/internal/service/review"
	"github.com/findamedi/clinics-api/pkg/httputil"
)

type Handler struct {
	service reviewService.ReviewServicer
}

func NewHandler(service reviewService.ReviewServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/clinics/:slug/reviews", h.SubmitReview)
}

type submitReviewRequest struct {
	Name      string `json:"name" binding:"required"`
	Country   string `json:"country"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"required"`
	Treatment string `json:"treatment"`
}

func (h *Handler) SubmitReview(c *gin.Context) {
	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Error(c, http.StatusBadRequest, "invalid review")
		return
	}

	review := &model.Review{
		Name:      req.Name,
		Country:   req.Country,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Treatment: req.Treatment,
	}

	if err := h.service.SubmitReview(c.Request.Context(), c.Param("slug"), review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httputil.Error(c, http.StatusNotFound, "Clinic not found")
			return
		}
		httputil.InternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}
