package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srs-go-api/internal/service"
	"github.com/noah-isme/srs-go-api/pkg/response"
)

// DashboardHandler serves the admin dashboard.
type DashboardHandler struct {
	reports *service.ReportService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(reports *service.ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// Summary godoc
// @Summary Admin dashboard statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	stats, cached, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if cached {
		c.Header("X-Cache", "HIT")
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
