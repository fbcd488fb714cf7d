package checkout

import (
	"sort"

	"github.com/drashti611/gowear-frontend/internal/modules/cart"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
)

// CheckStock compares each cart line with the current catalog. The stock of
// a line is the total across sizes of the selected color; a product that is
// gone counts as zero available.
func CheckStock(entries []cart.Entry, current map[string]catalog.Product) error {
	var oos []OutOfStockItem
	for _, e := range entries {
		if e.Quantity <= 0 {
			continue
		}
		avail := 0
		p, ok := current[e.ID]
		if ok {
			if n, found := catalog.VariantStock(p, e.SelectedColor); found {
				avail = n
			} else if len(p.Variants) == 0 {
				avail = e.Quantity
			}
		}
		if avail < e.Quantity {
			oos = append(oos, OutOfStockItem{
				ProductID: e.ID,
				Name:      e.Name,
				Color:     e.SelectedColor,
				Requested: e.Quantity,
				Available: avail,
			})
		}
	}
	if len(oos) == 0 {
		return nil
	}
	sort.Slice(oos, func(i, j int) bool { return oos[i].ProductID < oos[j].ProductID })
	return &OutOfStockError{Items: oos}
}
