package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drashti611/gowear-frontend/internal/http/middleware"
	"github.com/drashti611/gowear-frontend/internal/modules/cart"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/modules/likes"
	"github.com/drashti611/gowear-frontend/pkg/view"
)

// StorefrontHandler proxies catalog browsing for shoppers.
type StorefrontHandler struct {
	Catalog   *catalog.Catalog
	Likes     *likes.Service
	Carts     *cart.Service
	ImageBase string
}

func NewStorefrontHandler(cat *catalog.Catalog, l *likes.Service, carts *cart.Service, imageBase string) *StorefrontHandler {
	return &StorefrontHandler{Catalog: cat, Likes: l, Carts: carts, ImageBase: imageBase}
}

// Categories handles GET /api/categories.
func (h *StorefrontHandler) Categories(c *gin.Context) {
	items, err := h.Catalog.Categories.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	out := make([]view.NamedImage, 0, len(items))
	for _, it := range items {
		out = append(out, view.NewNamedImage(it.ID, it.Name, it.Images, h.ImageBase))
	}
	c.JSON(http.StatusOK, out)
}

// SubCategories handles GET /api/categories/:id/subcategories.
func (h *StorefrontHandler) SubCategories(c *gin.Context) {
	items, err := h.Catalog.SubCategoriesByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, namedSubCategories(items, h.ImageBase))
}

func namedSubCategories(items []catalog.SubCategory, imageBase string) []view.NamedImage {
	out := make([]view.NamedImage, 0, len(items))
	for _, it := range items {
		out = append(out, view.NewNamedImage(it.ID, it.Name, it.Images, imageBase))
	}
	return out
}

// Brands handles GET /api/brands.
func (h *StorefrontHandler) Brands(c *gin.Context) {
	items, err := h.Catalog.Brands.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	out := make([]view.NamedImage, 0, len(items))
	for _, it := range items {
		out = append(out, view.NewNamedImage(it.ID, it.Name, it.Images, h.ImageBase))
	}
	c.JSON(http.StatusOK, out)
}

// Products handles GET /api/subcategories/:id/products.
func (h *StorefrontHandler) Products(c *gin.Context) {
	ctx, ns := sessionOf(c)
	items, err := h.Catalog.ProductsBySubCategory(ctx, c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	liked := h.Likes.Items(ctx, ns)
	out := make([]view.ProductCard, 0, len(items))
	for _, p := range items {
		out = append(out, view.NewProductCard(p, h.ImageBase, likes.Contains(liked, p.ID)))
	}
	c.JSON(http.StatusOK, out)
}

// Product handles GET /api/products/:id.
func (h *StorefrontHandler) Product(c *gin.Context) {
	ctx, ns := sessionOf(c)
	p, err := h.Catalog.Product(ctx, c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.NewProductDetail(p, h.ImageBase,
		h.Likes.IsLiked(ctx, ns, p.ID),
		cart.Contains(h.Carts.Items(ctx, ns), p.ID),
	))
}
