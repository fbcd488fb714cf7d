package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drashti611/gowear-frontend/internal/http/middleware"
	"github.com/drashti611/gowear-frontend/internal/modules/likes"
	"github.com/drashti611/gowear-frontend/pkg/view"
)

type CartBadgeHandler struct {
	Likes *likes.Service
}

func NewCartBadgeHandler(l *likes.Service) *CartBadgeHandler {
	return &CartBadgeHandler{Likes: l}
}

// GetBadge handles GET /api/cart/badge behind middleware.CartCount.
func (h *CartBadgeHandler) GetBadge(c *gin.Context) {
	ctx, ns := sessionOf(c)
	n := middleware.GetCartCount(c)
	c.JSON(http.StatusOK, gin.H{
		"cartCount":  n,
		"label":      view.Badge(n),
		"likesCount": h.Likes.Count(ctx, ns),
	})
}
