package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srs-go-api/internal/middleware"
	"github.com/noah-isme/srs-go-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// principalFromContext builds the acting principal from the validated claims
// plus the request metadata the audit trail records.
func principalFromContext(c *gin.Context) (models.Principal, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		return models.Principal{}, false
	}
	return models.Principal{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Roles:     claims.Roles,
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}, true
}
