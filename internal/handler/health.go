package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Pinger reports broker health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health serves the liveness and readiness probes.
type Health struct {
	db     *sqlx.DB
	broker Pinger
}

func NewHealth(db *sqlx.DB, broker Pinger) *Health {
	return &Health{db: db, broker: broker}
}

func (h *Health) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Health) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok", "broker": "ok"}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = "unreachable"
		status = http.StatusServiceUnavailable
	}
	if h.broker != nil {
		if err := h.broker.Ping(ctx); err != nil {
			checks["broker"] = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, checks)
}
