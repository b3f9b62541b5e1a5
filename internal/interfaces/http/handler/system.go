package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ratehub/backend/internal/infrastructure/persistence"
	"github.com/ratehub/backend/internal/interfaces/http/dto"
)

// SystemHandler exposes health and readiness probes
type SystemHandler struct {
	BaseHandler
	db *persistence.Database
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{db: db}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
}

// Health reports process liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

// Ready reports whether the service can take traffic. The database is
// the only hard dependency; the idempotency store degrades to in-memory.
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(dto.ErrCodeUnavailable, "Database is unreachable"))
			return
		}
	}

	h.Success(c, dto.HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC(),
	})
}
