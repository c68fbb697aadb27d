package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srs-go-api/internal/models"
	"github.com/noah-isme/srs-go-api/internal/service"
	appErrors "github.com/noah-isme/srs-go-api/pkg/errors"
	"github.com/noah-isme/srs-go-api/pkg/response"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary Authenticate a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Logout godoc
// @Summary Log out the current user
// @Tags Auth
// @Produce json
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	h.auth.Logout(c.Request.Context(), principal)
	response.NoContent(c)
}
