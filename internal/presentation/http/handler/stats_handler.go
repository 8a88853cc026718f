package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mesahq/mesa-api/internal/application/service"
	"github.com/mesahq/mesa-api/internal/presentation/http/dto/response"
	"github.com/mesahq/mesa-api/internal/presentation/http/middleware"
)

// StatsHandler handles reporting endpoints
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// BusinessStats returns order counts, revenue and top items for an optional
// date range
func (h *StatsHandler) BusinessStats(c *gin.Context) {
	businessID := middleware.GetBusinessID(c)

	var from, to *time.Time
	if fromStr := c.Query("date_from"); fromStr != "" {
		if t, err := time.Parse("2006-01-02", fromStr); err == nil {
			from = &t
		}
	}
	if toStr := c.Query("date_to"); toStr != "" {
		if t, err := time.Parse("2006-01-02", toStr); err == nil {
			to = &t
		}
	}

	stats, err := h.statsService.GetBusinessStats(c.Request.Context(), businessID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business statistics retrieved successfully", stats)
}

// Dashboard returns today/week/month stats plus recent orders
func (h *StatsHandler) Dashboard(c *gin.Context) {
	businessID := middleware.GetBusinessID(c)

	stats, err := h.statsService.GetDashboardStats(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard statistics retrieved successfully", stats)
}
