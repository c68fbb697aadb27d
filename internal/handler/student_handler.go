package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srs-go-api/internal/models"
	"github.com/noah-isme/srs-go-api/internal/service"
	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
	"github.com/noah-isme/srs-go-api/pkg/response"
)

// defaultPageSize matches the interactive listing page length.
const defaultPageSize = 5

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students *service.StudentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List students visible to the caller
// @Tags Students
// @Produce json
// @Param q query string false "Search by name, roll number or subject"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var filter models.StudentFilter
	filter.Search = strings.TrimSpace(c.Query("q"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize))); err == nil {
		filter.PageSize = size
	}

	students, pagination, err := h.students.List(c.Request.Context(), principal, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Get godoc
// @Summary Get student detail
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	student, err := h.students.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), principal, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.UpdateStudentRequest true "Student payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Param id path string true "Student ID"
// @Success 204
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.students.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
