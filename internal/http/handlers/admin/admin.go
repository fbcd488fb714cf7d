package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drashti611/gowear-frontend/internal/http/middleware"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/storage"
	"github.com/drashti611/gowear-frontend/pkg/view"
)

type UserLister interface {
	Users(ctx context.Context, token string) ([]string, error)
}

type Handler struct {
	Catalog   *catalog.Catalog
	Users     UserLister
	ImageBase string

	Categories    *Resource[catalog.Category]
	SubCategories *Resource[catalog.SubCategory]
	Brands        *Resource[catalog.Brand]
	ProductTypes  *Resource[catalog.ProductType]
	Products      *Resource[catalog.Product]
}

func NewHandler(cat *catalog.Catalog, images storage.Storage, users UserLister, imageBase string) *Handler {
	named := func(id, name string, imgs []string) any {
		return view.NewNamedImage(id, name, imgs, imageBase)
	}
	return &Handler{
		Catalog:   cat,
		Users:     users,
		ImageBase: imageBase,
		Categories: &Resource[catalog.Category]{
			Manager: cat.Categories,
			Images:  images,
			Row:     func(v catalog.Category) any { return named(v.ID, v.Name, v.Images) },
			NewForm: func() form { return &categoryForm{} },
		},
		SubCategories: &Resource[catalog.SubCategory]{
			Manager: cat.SubCategories,
			Images:  images,
			NewForm: func() form { return &subCategoryForm{} },
		},
		Brands: &Resource[catalog.Brand]{
			Manager: cat.Brands,
			Images:  images,
			Row:     func(v catalog.Brand) any { return named(v.ID, v.Name, v.Images) },
			NewForm: func() form { return &brandForm{} },
		},
		ProductTypes: &Resource[catalog.ProductType]{
			Manager: cat.ProductTypes,
			NewForm: func() form { return &productTypeForm{} },
		},
		Products: &Resource[catalog.Product]{
			Manager: cat.Products,
			Images:  images,
			Row:     func(p catalog.Product) any { return view.NewAdminProductRow(p, imageBase) },
			NewForm: func() form { return &productForm{} },
		},
	}
}

// Mount registers the console under g, which must already require the
// admin role.
func (h *Handler) Mount(g *gin.RouterGroup) {
	h.Categories.Mount(g.Group("/categories"))

	sub := g.Group("/subcategories")
	h.SubCategories.Mount(sub)
	sub.GET("/by-category/:categoryId", h.SubCategoriesByCategory)

	h.Brands.Mount(g.Group("/brands"))

	types := g.Group("/product-types")
	h.ProductTypes.Mount(types)
	types.GET("/by-subcategory/:subCategoryId", h.ProductTypesBySubCategory)

	products := g.Group("/products")
	products.GET("/export", h.ExportProducts)
	h.Products.Mount(products)

	g.GET("/users", h.ListUsers)
}

// SubCategoriesByCategory feeds the product form's dependent dropdown.
func (h *Handler) SubCategoriesByCategory(c *gin.Context) {
	items, err := h.Catalog.SubCategoriesByCategory(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) ProductTypesBySubCategory(c *gin.Context) {
	items, err := h.Catalog.ProductTypesBySubCategory(c.Request.Context(), c.Param("subCategoryId"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ListUsers handles GET /api/admin/users.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.Users(c.Request.Context(), token(c))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
