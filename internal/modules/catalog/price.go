package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LowStockThreshold flags products with fewer units left across all variants.
const LowStockThreshold = 5

// PriceFor is the unit price of product in color: the first size of the
// matching variant when positive, else the flat product price when positive,
// else zero.
func PriceFor(p Product, color string) decimal.Decimal {
	for _, v := range p.Variants {
		if v.Color != color {
			continue
		}
		if len(v.Sizes) > 0 && positive(v.Sizes[0].Price) {
			return *v.Sizes[0].Price
		}
		break
	}
	if positive(p.Price) {
		return *p.Price
	}
	return decimal.Zero
}

// FirstColor is the color of the first variant, or "".
func FirstColor(p Product) string {
	if len(p.Variants) == 0 {
		return ""
	}
	return p.Variants[0].Color
}

// HasColor reports whether color names one of the variants. A product
// without variants accepts any color.
func HasColor(p Product, color string) bool {
	if len(p.Variants) == 0 {
		return true
	}
	for _, v := range p.Variants {
		if v.Color == color {
			return true
		}
	}
	return false
}

// PriceRange returns the lowest and highest size price. Products without
// variants fall back to the flat price (zero when unset); ok is false when
// variants exist but none has a price.
func PriceRange(p Product) (lo, hi decimal.Decimal, ok bool) {
	if len(p.Variants) == 0 {
		if p.Price != nil {
			return *p.Price, *p.Price, true
		}
		return decimal.Zero, decimal.Zero, true
	}
	for _, v := range p.Variants {
		for _, s := range v.Sizes {
			if s.Price == nil {
				continue
			}
			if !ok {
				lo, hi, ok = *s.Price, *s.Price, true
				continue
			}
			if s.Price.LessThan(lo) {
				lo = *s.Price
			}
			if s.Price.GreaterThan(hi) {
				hi = *s.Price
			}
		}
	}
	return lo, hi, ok
}

func TotalStock(p Product) int {
	total := 0
	for _, v := range p.Variants {
		for _, s := range v.Sizes {
			if s.Stock > 0 {
				total += s.Stock
			}
		}
	}
	return total
}

func IsLowStock(p Product) bool { return TotalStock(p) < LowStockThreshold }

// VariantStock is the stock of every size of the variant in color.
func VariantStock(p Product, color string) (int, bool) {
	for _, v := range p.Variants {
		if v.Color != color {
			continue
		}
		total := 0
		for _, s := range v.Sizes {
			if s.Stock > 0 {
				total += s.Stock
			}
		}
		return total, true
	}
	return 0, false
}

// CardPrice is the price of the first size of the first variant, shown on
// product cards.
func CardPrice(p Product) (decimal.Decimal, bool) {
	if len(p.Variants) == 0 || len(p.Variants[0].Sizes) == 0 {
		return decimal.Zero, false
	}
	if !positive(p.Variants[0].Sizes[0].Price) {
		return decimal.Zero, false
	}
	return *p.Variants[0].Sizes[0].Price, true
}

// FilterByName keeps the items whose name contains q, ignoring case.
func FilterByName[T Entity](items []T, q string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.EntityName()), q) {
			out = append(out, it)
		}
	}
	return out
}

// ImageURL joins a stored image path onto the image host.
func ImageURL(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func positive(d *decimal.Decimal) bool {
	return d != nil && d.IsPositive()
}
