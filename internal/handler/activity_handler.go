package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srs-go-api/internal/service"
	"github.com/noah-isme/srs-go-api/pkg/response"
)

// ActivityHandler serves the audit trail view.
type ActivityHandler struct {
	activity *service.ActivityService
}

// NewActivityHandler constructs ActivityHandler.
func NewActivityHandler(activity *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List godoc
// @Summary List activity log entries, newest first
// @Tags Activity
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /activity-logs [get]
func (h *ActivityHandler) List(c *gin.Context) {
	entries, err := h.activity.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
