package admin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/drashti611/gowear-frontend/internal/http/middleware"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
	"github.com/drashti611/gowear-frontend/pkg/view"
)

var exportHeaders = []string{
	"ID", "Name", "Category", "SubCategory", "Brand",
	"Price", "Discount", "TotalStock", "LowStock", "Colors", "Images",
}

// ExportProducts handles GET /api/admin/products/export with the same ?q=
// filter as the list.
func (h *Handler) ExportProducts(c *gin.Context) {
	items, err := h.Catalog.Products.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	items = catalog.FilterByName(items, c.Query("q"))

	file, err := productSheet(items, h.ImageBase)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		_ = c.Error(apperr.Wrap(err))
	}
}

func productSheet(items []catalog.Product, imageBase string) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, p := range items {
		r := view.NewAdminProductRow(p, imageBase)
		colors := make([]string, 0, len(p.Variants))
		for _, v := range p.Variants {
			colors = append(colors, v.Color)
		}

		row := sheet.AddRow()
		row.AddCell().SetValue(r.ID)
		row.AddCell().SetValue(r.Name)
		row.AddCell().SetValue(r.Category)
		row.AddCell().SetValue(r.SubCategory)
		row.AddCell().SetValue(r.Brand)
		row.AddCell().SetValue(r.Price)
		row.AddCell().SetValue(r.Discount)
		row.AddCell().SetValue(r.TotalStock)
		row.AddCell().SetValue(r.LowStock)
		row.AddCell().SetValue(strings.Join(colors, ","))
		row.AddCell().SetValue(strings.Join(r.Images, ","))
	}
	return file, nil
}
