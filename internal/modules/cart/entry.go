// Package cart keeps a session's shopping cart: one entry per product, with
// the chosen color and a quantity.
package cart

import "github.com/drashti611/gowear-frontend/internal/modules/catalog"

// Entry is the product as it was when added, plus the shopper's choices.
type Entry struct {
	catalog.Product
	SelectedColor string `json:"selectedColor"`
	Quantity      int    `json:"quantity"`
}

type AddStatus string

const (
	Added         AddStatus = "added"
	AlreadyInCart AddStatus = "already_in_cart"
)

// Message is the shopper-facing text for the status.
func (s AddStatus) Message() string {
	switch s {
	case AlreadyInCart:
		return "Product is already in cart!"
	default:
		return "Added to cart!"
	}
}
