package view

import "github.com/drashti611/gowear-frontend/internal/modules/catalog"

type AdminProductRow struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	SubCategory string   `json:"subCategory"`
	Brand       string   `json:"brand"`
	Price       string   `json:"price"`
	Discount    string   `json:"discount"`
	TotalStock  int      `json:"totalStock"`
	LowStock    bool     `json:"lowStock"`
	Images      []string `json:"images"`
}

func refName(r *catalog.Ref) string {
	if r == nil {
		return ""
	}
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

func NewAdminProductRow(p catalog.Product, imageBase string) AdminProductRow {
	row := AdminProductRow{
		ID:          p.ID,
		Name:        p.Name,
		Category:    refName(p.CategoryID),
		SubCategory: refName(p.SubCategoryID),
		Brand:       refName(p.BrandID),
		Price:       PriceLabel(p),
		Discount:    p.Discount.String(),
		TotalStock:  catalog.TotalStock(p),
		LowStock:    catalog.IsLowStock(p),
		Images:      make([]string, 0, len(p.Images)),
	}
	for _, img := range p.Images {
		row.Images = append(row.Images, catalog.ImageURL(imageBase, img))
	}
	return row
}
