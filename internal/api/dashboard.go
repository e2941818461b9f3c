package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/renewals/backend/internal/service"
)

type DashboardHandler struct {
	dashboard service.IDashboardService
}

func NewDashboardHandler(dashboard service.IDashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/stats", h.GetStats)
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboard.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
