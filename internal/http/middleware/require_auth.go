package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
)

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}
		Fail(c, apperr.UnauthorizedErr("Please log in to continue."))
	}
}
