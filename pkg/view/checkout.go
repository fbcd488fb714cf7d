package view

import (
	"strconv"

	"github.com/drashti611/gowear-frontend/internal/modules/cart"
	"github.com/drashti611/gowear-frontend/internal/modules/pricing"
)

type CartLine struct {
	ProductID       string `json:"productId"`
	Name            string `json:"name"`
	Color           string `json:"color"`
	ImageURL        string `json:"imageUrl"`
	Quantity        int    `json:"quantity"`
	Discount        string `json:"discount,omitempty"`
	BasePrice       string `json:"basePrice"`
	DiscountedPrice string `json:"discountedPrice"`
	LineTotal       string `json:"lineTotal"`
}

type CheckoutSummary struct {
	Items            int    `json:"items"`
	TotalMRP         string `json:"totalMrp"`
	TotalDiscount    string `json:"totalDiscount"`
	Subtotal         string `json:"subtotal"`
	Shipping         string `json:"shipping"`
	Total            string `json:"total"`
	FreeShippingHint string `json:"freeShippingHint,omitempty"`
}

type CartPage struct {
	Empty   bool            `json:"empty"`
	Message string          `json:"message,omitempty"`
	Lines   []CartLine      `json:"lines"`
	Summary CheckoutSummary `json:"summary"`
	Count   int             `json:"count"`
}

func NewCheckoutSummary(s pricing.Summary) CheckoutSummary {
	return CheckoutSummary{
		Items:            s.TotalItems,
		TotalMRP:         Money(s.TotalMRP),
		TotalDiscount:    Money(s.TotalDiscount),
		Subtotal:         Money(s.TotalAmount),
		Shipping:         ShippingLabel(s.ShippingFee),
		Total:            Money(s.GrandTotal),
		FreeShippingHint: FreeShippingHint(s.AmountToFreeShipping),
	}
}

// NewCartPage pairs each cart entry with its priced line; both slices are in
// the same order.
func NewCartPage(entries []cart.Entry, s pricing.Summary, imageBase string) CartPage {
	page := CartPage{
		Empty:   s.Empty,
		Lines:   make([]CartLine, 0, len(s.Lines)),
		Summary: NewCheckoutSummary(s),
		Count:   cart.Count(entries),
	}
	if s.Empty {
		page.Message = "Your cart is empty."
	}
	for i, l := range s.Lines {
		line := CartLine{
			ProductID:       l.ProductID,
			Name:            l.Name,
			Color:           l.Color,
			Quantity:        l.Quantity,
			BasePrice:       Money(l.BasePrice),
			DiscountedPrice: Money(l.UnitPrice),
			LineTotal:       Money(l.LineTotal),
		}
		if line.Color == "" {
			line.Color = "N/A"
		}
		if l.Discount.IsPositive() {
			line.Discount = l.Discount.String() + "% OFF"
		}
		if i < len(entries) {
			line.ImageURL = firstImage(imageBase, entries[i].Images)
		}
		page.Lines = append(page.Lines, line)
	}
	return page
}

// Badge renders the navigation count, capped for display.
func Badge(n int) string {
	if n > 99 {
		return "99+"
	}
	return strconv.Itoa(n)
}
