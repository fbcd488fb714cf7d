package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
)

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			Fail(c, apperr.UnauthorizedErr("Please log in to open the admin console."))
			return
		}
		if !u.IsAdmin() {
			Fail(c, apperr.ForbiddenErr("Admin access required."))
			return
		}
		c.Next()
	}
}
