// Package pricing turns a cart into per-line prices and order totals.
// Amounts are exact decimals; rounding is left to presentation.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/drashti611/gowear-frontend/internal/modules/cart"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
)

var (
	FreeShippingThreshold = decimal.NewFromInt(3000)
	FlatShippingFee       = decimal.NewFromInt(100)

	hundred = decimal.NewFromInt(100)
)

type Line struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	Color        string          `json:"color"`
	Quantity     int             `json:"quantity"`
	Discount     decimal.Decimal `json:"discount"`
	BasePrice    decimal.Decimal `json:"basePrice"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	LineMRP      decimal.Decimal `json:"lineMrp"`
	LineDiscount decimal.Decimal `json:"lineDiscount"`
	LineTotal    decimal.Decimal `json:"lineTotal"`
}

type Summary struct {
	Lines                []Line          `json:"lines"`
	TotalItems           int             `json:"totalItems"`
	TotalMRP             decimal.Decimal `json:"totalMrp"`
	TotalDiscount        decimal.Decimal `json:"totalDiscount"`
	TotalAmount          decimal.Decimal `json:"totalAmount"`
	ShippingFee          decimal.Decimal `json:"shippingFee"`
	AmountToFreeShipping decimal.Decimal `json:"amountToFreeShipping"`
	GrandTotal           decimal.Decimal `json:"grandTotal"`
	Empty                bool            `json:"empty"`
}

func BasePrice(e cart.Entry) decimal.Decimal {
	return catalog.PriceFor(e.Product, e.SelectedColor)
}

// Discount is the product-level percentage within [0, 100]. Per-size
// discounts do not take part in totals.
func Discount(e cart.Entry) decimal.Decimal {
	d := e.Product.Discount
	switch {
	case !d.IsPositive():
		return decimal.Zero
	case d.GreaterThan(hundred):
		return hundred
	default:
		return d
	}
}

func DiscountedUnitPrice(e cart.Entry) decimal.Decimal {
	base := BasePrice(e)
	d := Discount(e)
	if d.IsZero() {
		return base
	}
	return base.Mul(hundred.Sub(d)).Div(hundred)
}

// LineTotal is zero for a non-positive quantity.
func LineTotal(e cart.Entry) decimal.Decimal {
	if e.Quantity <= 0 {
		return decimal.Zero
	}
	return DiscountedUnitPrice(e).Mul(decimal.NewFromInt(int64(e.Quantity)))
}

func ShippingFee(totalAmount decimal.Decimal) decimal.Decimal {
	if totalAmount.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingFee
}

func AmountToFreeShipping(totalAmount decimal.Decimal) decimal.Decimal {
	left := FreeShippingThreshold.Sub(totalAmount)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}

// Summarize prices every line and totals the cart. A cart without any
// positive quantity is Empty: every amount is zero and no shipping is charged.
func Summarize(entries []cart.Entry) Summary {
	s := Summary{
		Lines:         make([]Line, 0, len(entries)),
		TotalMRP:      decimal.Zero,
		TotalDiscount: decimal.Zero,
	}

	for _, e := range entries {
		base := BasePrice(e)
		unit := DiscountedUnitPrice(e)
		qty := e.Quantity
		if qty < 0 {
			qty = 0
		}
		q := decimal.NewFromInt(int64(qty))

		l := Line{
			ProductID:    e.ID,
			Name:         e.Name,
			Color:        e.SelectedColor,
			Quantity:     e.Quantity,
			Discount:     Discount(e),
			BasePrice:    base,
			UnitPrice:    unit,
			LineMRP:      base.Mul(q),
			LineDiscount: base.Sub(unit).Mul(q),
			LineTotal:    LineTotal(e),
		}
		s.Lines = append(s.Lines, l)

		s.TotalItems += qty
		s.TotalMRP = s.TotalMRP.Add(l.LineMRP)
		s.TotalDiscount = s.TotalDiscount.Add(l.LineDiscount)
	}

	s.TotalAmount = s.TotalMRP.Sub(s.TotalDiscount)

	if s.TotalItems == 0 {
		s.Empty = true
		s.ShippingFee = decimal.Zero
		s.AmountToFreeShipping = decimal.Zero
		s.GrandTotal = decimal.Zero
		return s
	}

	s.ShippingFee = ShippingFee(s.TotalAmount)
	s.AmountToFreeShipping = AmountToFreeShipping(s.TotalAmount)
	s.GrandTotal = s.TotalAmount.Add(s.ShippingFee)
	return s
}
