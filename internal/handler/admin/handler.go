package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/findamedi/clinics-api/internal/middleware"
	"github.com/findamedi/clinics-api/internal/model"
	"github.com/findamedi/clinics-api/internal/repository"
	reviewService "github.com/findamedi/clinics-api/internal/service/review"
	statsService "github.com/findamedi/clinics-api/internal/service/stats"
	"github.com/findamedi/clinics-api/pkg/httputil"
)

// Handler serves the operator endpoints: review moderation and per-clinic
// view statistics.
type Handler struct {
	reviews reviewService.ReviewServicer
	stats   statsService.StatsServicer
	auth    *middleware.AuthMiddleware
}

func NewHandler(reviews reviewService.ReviewServicer, stats statsService.StatsServicer, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{reviews: reviews, stats: stats, auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(h.auth.RequireAdmin())
	{
		admin.GET("/reviews", h.ListReviews)
		admin.POST("/reviews/:id/approve", h.ApproveReview)
		admin.POST("/reviews/:id/reject", h.RejectReview)
		admin.GET("/clinics/:id/stats", h.ClinicStats)
	}
}

func (h *Handler) ListReviews(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", model.ReviewStatusPending, model.ReviewStatusApproved, model.ReviewStatusRejected:
	default:
		httputil.Error(c, http.StatusBadRequest, "invalid status")
		return
	}

	reviews, err := h.reviews.ListByStatus(c.Request.Context(), status)
	if err != nil {
		httputil.InternalError(c, err)
		return
	}
	if reviews == nil {
		reviews = []*model.Review{}
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

type moderateRequest struct {
	AdminResponse string `json:"adminResponse"`
}

func (h *Handler) ApproveReview(c *gin.Context) {
	h.moderate(c, h.reviews.Approve)
}

func (h *Handler) RejectReview(c *gin.Context) {
	h.moderate(c, h.reviews.Reject)
}

func (h *Handler) moderate(c *gin.Context, action func(ctx context.Context, id uuid.UUID, adminResponse string) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, http.StatusBadRequest, "invalid review id")
		return
	}

	var req moderateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httputil.Error(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if err := action(c.Request.Context(), id, req.AdminResponse); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httputil.Error(c, http.StatusNotFound, "Review not found")
			return
		}
		httputil.InternalError(c, err)
		return
	}

	httputil.Message(c, http.StatusOK, "ok")
}

func (h *Handler) ClinicStats(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, http.StatusBadRequest, "invalid clinic id")
		return
	}

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse("2006-01-02", v); err != nil {
			httputil.Error(c, http.StatusBadRequest, "invalid from date")
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse("2006-01-02", v); err != nil {
			httputil.Error(c, http.StatusBadRequest, "invalid to date")
			return
		}
	}

	stats, err := h.stats.ListRange(c.Request.Context(), clinicID, from, to)
	if err != nil {
		httputil.InternalError(c, err)
		return
	}
	if stats == nil {
		stats = []*model.ClinicStats{}
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
