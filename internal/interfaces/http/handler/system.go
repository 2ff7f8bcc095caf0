package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SystemHandler exposes liveness and readiness endpoints. These are
// registered outside the authenticated API group.
type SystemHandler struct {
	BaseHandler
	db     *gorm.DB
	logger *zap.Logger
}

func NewSystemHandler(db *gorm.DB, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{db: db, logger: logger}
}

// RegisterRoutes registers the health endpoints on the given group.
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// Health handles GET /health and reports process liveness only.
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready and verifies the database connection.
func (h *SystemHandler) Ready(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	h.Success(c, gin.H{"status": "ready"})
}
