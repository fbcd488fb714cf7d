package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var ErrCartEmpty = errors.New("checkout: cart is empty")

type OutOfStockItem struct {
	ProductID string
	Name      string
	Color     string
	Requested int
	Available int
}

type OutOfStockError struct {
	Items []OutOfStockItem
}

func (e *OutOfStockError) Error() string {
	if len(e.Items) == 0 {
		return "out of stock"
	}
	it := e.Items[0]
	return fmt.Sprintf("out of stock: product=%s color=%s requested=%d available=%d", it.ProductID, it.Color, it.Requested, it.Available)
}

// Fields maps each offending product id to a shopper-facing line.
func (e *OutOfStockError) Fields() map[string]string {
	out := make(map[string]string, len(e.Items))
	for _, it := range e.Items {
		name := it.Name
		if name == "" {
			name = it.ProductID
		}
		color := ""
		if it.Color != "" {
			color = " (" + it.Color + ")"
		}
		out[it.ProductID] = fmt.Sprintf("%s%s: only %d left", strings.TrimSpace(name), color, it.Available)
	}
	return out
}
