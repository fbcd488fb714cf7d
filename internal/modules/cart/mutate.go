package cart

import "github.com/drashti611/gowear-frontend/internal/modules/catalog"

// AddToCart appends product with quantity 1. A product already in the cart
// leaves it untouched. An empty color means the first variant's color.
func AddToCart(cart []Entry, p catalog.Product, color string) ([]Entry, AddStatus) {
	if Contains(cart, p.ID) {
		return cart, AlreadyInCart
	}
	if color == "" {
		color = catalog.FirstColor(p)
	}
	out := make([]Entry, len(cart), len(cart)+1)
	copy(out, cart)
	return append(out, Entry{Product: p, SelectedColor: color, Quantity: 1}), Added
}

func RemoveFromCart(cart []Entry, productID string) []Entry {
	out := make([]Entry, 0, len(cart))
	for _, e := range cart {
		if e.ID != productID {
			out = append(out, e)
		}
	}
	return out
}

// RemoveLines drops every line whose product id is in ids.
func RemoveLines(cart []Entry, ids []string) []Entry {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := make([]Entry, 0, len(cart))
	for _, e := range cart {
		if _, ok := drop[e.ID]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// SetQuantity stores quantity as given; callers validate the range.
func SetQuantity(cart []Entry, productID string, quantity int) []Entry {
	out := make([]Entry, len(cart))
	copy(out, cart)
	for i := range out {
		if out[i].ID == productID {
			out[i].Quantity = quantity
		}
	}
	return out
}

func Contains(cart []Entry, productID string) bool {
	for _, e := range cart {
		if e.ID == productID {
			return true
		}
	}
	return false
}

// Count is the badge number: units across lines with a positive quantity.
func Count(cart []Entry) int {
	n := 0
	for _, e := range cart {
		if e.Quantity > 0 {
			n += e.Quantity
		}
	}
	return n
}
