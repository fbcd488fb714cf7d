package view

import (
	"github.com/shopspring/decimal"

	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
)

const CurrencySymbol = "₹"

// Money renders an amount with two decimals, e.g. "₹2400.00".
func Money(d decimal.Decimal) string {
	return CurrencySymbol + d.StringFixed(2)
}

// PriceLabel is the admin price column: "₹min - ₹max", a single price, or
// "Price not set".
func PriceLabel(p catalog.Product) string {
	lo, hi, ok := catalog.PriceRange(p)
	if !ok {
		return "Price not set"
	}
	if lo.Equal(hi) {
		return Money(lo)
	}
	return Money(lo) + " - " + Money(hi)
}

// CardPriceLabel is the price on product cards, "N/A" when unset.
func CardPriceLabel(p catalog.Product) string {
	price, ok := catalog.CardPrice(p)
	if !ok {
		return CurrencySymbol + "N/A"
	}
	return Money(price)
}

func ShippingLabel(fee decimal.Decimal) string {
	if fee.IsZero() {
		return "Free Shipping"
	}
	return Money(fee)
}

// FreeShippingHint is empty once shipping is free.
func FreeShippingHint(left decimal.Decimal) string {
	if !left.IsPositive() {
		return ""
	}
	return "Add " + Money(left) + " more to get Free Shipping!"
}
