package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srs-go-api/internal/service"
	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
	"github.com/noah-isme/srs-go-api/pkg/response"
)

// ExportHandler serves file downloads of student data.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Students godoc
// @Summary Export students to CSV or Excel
// @Tags Export
// @Produce octet-stream
// @Param format query string false "csv or xlsx" default(csv)
// @Param q query string false "Search filter"
// @Success 200 {file} file
// @Router /students/export [get]
func (h *ExportHandler) Students(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	search := strings.TrimSpace(c.Query("q"))

	file, err := h.exports.Students(c.Request.Context(), principal, search, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

// DashboardSummary godoc
// @Summary Export the dashboard summary to PDF
// @Tags Export
// @Produce octet-stream
// @Success 200 {file} file
// @Router /dashboard/export [get]
func (h *ExportHandler) DashboardSummary(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	file, err := h.exports.DashboardSummary(c.Request.Context(), principal)
	if err != nil {
		response.Error(c, err)
		return
	}
	serveFile(c, file)
}

func serveFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
