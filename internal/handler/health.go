package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewHealthHandler(db *gorm.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb}
}

// Health godoc
// @Summary      Service health
// @Description  Reports database and redis connectivity.
// @Tags         health
// @Produce      json
// @Success      200  {object} map[string]string
// @Failure      503  {object} map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := gin.H{"status": "ok", "database": "up", "redis": "up"}
	code := http.StatusOK

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status["database"] = "down"
		status["status"] = "degraded"
		code = http.StatusServiceUnavailable
	}

	if h.rdb == nil || h.rdb.Ping(c.Request.Context()).Err() != nil {
		status["redis"] = "down"
		if status["status"] == "ok" {
			status["status"] = "degraded"
		}
	}

	c.JSON(code, status)
}
