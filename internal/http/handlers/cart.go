package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drashti611/gowear-frontend/internal/http/middleware"
	"github.com/drashti611/gowear-frontend/internal/modules/cart"
	"github.com/drashti611/gowear-frontend/internal/modules/pricing"
	"github.com/drashti611/gowear-frontend/pkg/view"
)

type CartHandler struct {
	Carts     *cart.Service
	Products  ProductSource
	ImageBase string
}

func NewCartHandler(carts *cart.Service, products ProductSource, imageBase string) *CartHandler {
	return &CartHandler{Carts: carts, Products: products, ImageBase: imageBase}
}

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Color     string `json:"color" binding:"max=40"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" binding:"gte=1,lte=99"`
}

func (h *CartHandler) page(items []cart.Entry) view.CartPage {
	return view.NewCartPage(items, pricing.Summarize(items), h.ImageBase)
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	ctx, ns := sessionOf(c)
	c.JSON(http.StatusOK, h.page(h.Carts.Items(ctx, ns)))
}

// Add handles POST /api/cart/items. A product already in the cart is not an
// error: the response says so and the cart is unchanged.
func (h *CartHandler) Add(c *gin.Context) {
	var req addToCartRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, ns := sessionOf(c)

	p, err := h.Products.Product(ctx, req.ProductID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	items, status, err := h.Carts.Add(ctx, ns, p, req.Color)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"message": status.Message(),
		"cart":    h.page(items),
	})
}

// SetQuantity handles PATCH /api/cart/items/:id.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req setQuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx, ns := sessionOf(c)
	items, err := h.Carts.SetQuantity(ctx, ns, c.Param("id"), req.Quantity)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.page(items))
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	ctx, ns := sessionOf(c)
	if err := h.Carts.Clear(ctx, ns); err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.page(nil))
}

// Remove handles DELETE /api/cart/items/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	ctx, ns := sessionOf(c)
	items, err := h.Carts.Remove(ctx, ns, c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.page(items))
}
