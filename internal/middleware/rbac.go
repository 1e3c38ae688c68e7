package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/bccodingclub/notice-board-api/internal/models"
	appErrors "github.com/bccodingclub/notice-board-api/pkg/errors"
	"github.com/bccodingclub/notice-board-api/pkg/response"
)

// RequireAdmin blocks requests whose session claims do not carry the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextSessionKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.SessionClaims)
		if !ok || claims.Role != models.RoleAdmin {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
