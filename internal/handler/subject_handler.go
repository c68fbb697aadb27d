package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srs-go-api/internal/service"
	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
	"github.com/noah-isme/srs-go-api/pkg/response"
)

// SubjectHandler exposes subject administration endpoints.
type SubjectHandler struct {
	subjects *service.SubjectService
}

// NewSubjectHandler constructs SubjectHandler.
func NewSubjectHandler(subjects *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects}
}

// List godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.subjects.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// Create godoc
// @Summary Create subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body service.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req service.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	subject, err := h.subjects.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// Delete godoc
// @Summary Delete subject and its students
// @Tags Subjects
// @Param id path string true "Subject ID"
// @Success 204
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	if err := h.subjects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
