package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drashti611/gowear-frontend/internal/http/middleware"
	"github.com/drashti611/gowear-frontend/internal/modules/likes"
	"github.com/drashti611/gowear-frontend/pkg/view"
)

type LikesHandler struct {
	Likes     *likes.Service
	Products  ProductSource
	ImageBase string
}

func NewLikesHandler(l *likes.Service, products ProductSource, imageBase string) *LikesHandler {
	return &LikesHandler{Likes: l, Products: products, ImageBase: imageBase}
}

func (h *LikesHandler) cards(items []likes.Entry) []view.ProductCard {
	out := make([]view.ProductCard, 0, len(items))
	for _, e := range items {
		out = append(out, view.NewProductCard(e.Product, h.ImageBase, true))
	}
	return out
}

// List handles GET /api/likes.
func (h *LikesHandler) List(c *gin.Context) {
	ctx, ns := sessionOf(c)
	items := h.Likes.Items(ctx, ns)
	resp := gin.H{"items": h.cards(items)}
	if len(items) == 0 {
		resp["message"] = "You have no liked products yet."
	}
	c.JSON(http.StatusOK, resp)
}

// Toggle handles POST /api/likes/:id/toggle.
func (h *LikesHandler) Toggle(c *gin.Context) {
	ctx, ns := sessionOf(c)
	p, err := h.Products.Product(ctx, c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	liked, err := h.Likes.Toggle(ctx, ns, p)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	msg := `Removed "` + p.Name + `" from likes`
	if liked {
		msg = `Added "` + p.Name + `" to likes`
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked, "message": msg, "likesCount": h.Likes.Count(ctx, ns)})
}

// Remove handles DELETE /api/likes/:id.
func (h *LikesHandler) Remove(c *gin.Context) {
	ctx, ns := sessionOf(c)
	items, err := h.Likes.Remove(ctx, ns, c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.cards(items)})
}

// MoveToCart handles POST /api/likes/:id/cart.
func (h *LikesHandler) MoveToCart(c *gin.Context) {
	ctx, ns := sessionOf(c)
	status, err := h.Likes.MoveToCart(ctx, ns, c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "message": status.Message()})
}
