package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/drashti611/gowear-frontend/internal/http/middleware"
	"github.com/drashti611/gowear-frontend/internal/http/validation"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
)

// ProductSource fetches a product as the backend has it now.
type ProductSource interface {
	Product(ctx context.Context, id string) (catalog.Product, error)
}

// bindJSON binds and validates dst, failing the request on error.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.Fail(c, validation.Invalid(err, dst))
		return false
	}
	return true
}

func sessionOf(c *gin.Context) (context.Context, string) {
	return c.Request.Context(), middleware.SessionID(c)
}
