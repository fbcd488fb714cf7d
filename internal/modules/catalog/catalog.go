package catalog

import (
	"context"

	"github.com/drashti611/gowear-frontend/internal/backend"
)

var (
	CategoryRoutes = Routes{
		List:   "/category",
		Create: "/category",
		Update: "/category/:id",
		Delete: "/category/:id",
	}
	SubCategoryRoutes = Routes{
		List:   "/subcategory/viewSubCategory",
		Create: "/subcategory/addSubCategory",
		Update: "/subcategory/update/:id",
		Delete: "/subcategory/delete/:id",
	}
	BrandRoutes = Routes{
		List:   "/brand/viewBrand",
		Create: "/brand/addBrand",
		Update: "/brand/update/:id",
		Delete: "/brand/delete/:id",
	}
	ProductTypeRoutes = Routes{
		List:   "/product_type",
		Create: "/product_type/addProductType",
		Update: "/product_type/:id",
		Delete: "/product_type/:id",
	}
	ProductRoutes = Routes{
		List:   "/product/getProducts",
		Get:    "/product/getProduct/:id",
		Create: "/product/addProduct",
		Update: "/product/updateProduct/:id",
		Delete: "/product/deleteProduct/:id",
	}
)

const (
	subCategoriesByCategoryRoute   = "/subcategory/viewSubCategoryByCategoryID/:id"
	productTypesBySubCategoryRoute = "/product_type/subcategory/:id"
	productsBySubCategoryRoute     = "/product/getProductsBySubCategory/:id"
)

type Catalog struct {
	Categories    *Manager[Category]
	SubCategories *Manager[SubCategory]
	Brands        *Manager[Brand]
	ProductTypes  *Manager[ProductType]
	Products      *Manager[Product]
}

func New(c *backend.Client) *Catalog {
	return &Catalog{
		Categories:    NewManager[Category](c, "category", "categories", CategoryRoutes),
		SubCategories: NewManager[SubCategory](c, "subcategory", "subcategories", SubCategoryRoutes),
		Brands:        NewManager[Brand](c, "brand", "brands", BrandRoutes),
		ProductTypes:  NewManager[ProductType](c, "product type", "product types", ProductTypeRoutes),
		Products:      NewManager[Product](c, "product", "products", ProductRoutes),
	}
}

func (c *Catalog) SubCategoriesByCategory(ctx context.Context, categoryID string) ([]SubCategory, error) {
	return c.SubCategories.listAt(ctx, withID(subCategoriesByCategoryRoute, categoryID))
}

func (c *Catalog) ProductTypesBySubCategory(ctx context.Context, subCategoryID string) ([]ProductType, error) {
	return c.ProductTypes.listAt(ctx, withID(productTypesBySubCategoryRoute, subCategoryID))
}

func (c *Catalog) ProductsBySubCategory(ctx context.Context, subCategoryID string) ([]Product, error) {
	return c.Products.listAt(ctx, withID(productsBySubCategoryRoute, subCategoryID))
}

func (c *Catalog) Product(ctx context.Context, id string) (Product, error) {
	return c.Products.Get(ctx, id)
}
