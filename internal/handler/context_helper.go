package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bccodingclub/notice-board-api/internal/middleware"
	"github.com/bccodingclub/notice-board-api/internal/models"
)

// roleFromContext resolves the request role. Anything without valid admin
// claims is a visitor.
func roleFromContext(c *gin.Context) models.Role {
	value, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return models.RoleVisitor
	}
	claims, ok := value.(*models.SessionClaims)
	if !ok || claims.Role != models.RoleAdmin {
		return models.RoleVisitor
	}
	return models.RoleAdmin
}
