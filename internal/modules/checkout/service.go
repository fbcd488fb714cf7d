package checkout

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/drashti611/gowear-frontend/internal/backend"
	"github.com/drashti611/gowear-frontend/internal/modules/auth"
	"github.com/drashti611/gowear-frontend/internal/modules/cart"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/modules/pricing"
	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
	"github.com/drashti611/gowear-frontend/pkg/logger"
)

const placeOrderRoute = "/order/addOrder"

type ProductSource interface {
	Product(ctx context.Context, id string) (catalog.Product, error)
}

type Carts interface {
	Items(ctx context.Context, ns string) []cart.Entry
	RemoveLines(ctx context.Context, ns string, ids []string) ([]cart.Entry, error)
}

type Address struct {
	FullName string `json:"fullName" binding:"required,min=2,max=80"`
	Phone    string `json:"phone" binding:"required,min=7,max=20"`
	Line1    string `json:"line1" binding:"required,max=200"`
	Line2    string `json:"line2,omitempty" binding:"omitempty,max=200"`
	City     string `json:"city" binding:"required,max=80"`
	State    string `json:"state" binding:"required,max=80"`
	Pincode  string `json:"pincode" binding:"required,numeric,len=6"`
}

type orderLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type orderRequest struct {
	UserID        string          `json:"userId"`
	Items         []orderLine     `json:"items"`
	TotalMRP      decimal.Decimal `json:"totalMrp"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	ShippingFee   decimal.Decimal `json:"shippingFee"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	Address       Address         `json:"address"`
}

type Order struct {
	ID      string          `json:"orderId"`
	Message string          `json:"message,omitempty"`
	Summary pricing.Summary `json:"summary"`
}

type Service struct {
	carts    Carts
	products ProductSource
	be       *backend.Client
}

func NewService(carts Carts, products ProductSource, be *backend.Client) *Service {
	return &Service{carts: carts, products: products, be: be}
}

func (s *Service) Summary(ctx context.Context, ns string) pricing.Summary {
	return pricing.Summarize(s.carts.Items(ctx, ns))
}

// Place validates the cart against current stock, submits the order and
// removes the ordered lines. Lines added while the order is in flight stay
// in the cart.
func (s *Service) Place(ctx context.Context, ns string, who auth.Identity, addr Address) (Order, error) {
	entries := s.carts.Items(ctx, ns)
	summary := pricing.Summarize(entries)
	if summary.Empty {
		return Order{}, &apperr.AppError{Kind: apperr.Invalid, PublicMsg: "Your cart is empty", Err: ErrCartEmpty}
	}

	current := make(map[string]catalog.Product, len(entries))
	for _, e := range entries {
		if e.Quantity <= 0 {
			continue
		}
		p, err := s.products.Product(ctx, e.ID)
		if err != nil {
			if ae, ok := apperr.As(err); ok && ae.Kind == apperr.NotFound {
				continue
			}
			return Order{}, err
		}
		current[e.ID] = p
	}

	if err := CheckStock(entries, current); err != nil {
		var oos *OutOfStockError
		if errors.As(err, &oos) {
			return Order{}, &apperr.AppError{
				Kind:      apperr.Conflict,
				PublicMsg: "Some items are no longer available in the requested quantity",
				Fields:    oos.Fields(),
				Err:       oos,
			}
		}
		return Order{}, err
	}

	req := orderRequest{
		UserID:        who.UserID,
		Items:         make([]orderLine, 0, len(summary.Lines)),
		TotalMRP:      summary.TotalMRP,
		TotalDiscount: summary.TotalDiscount,
		TotalAmount:   summary.TotalAmount,
		ShippingFee:   summary.ShippingFee,
		GrandTotal:    summary.GrandTotal,
		Address:       addr,
	}
	for _, l := range summary.Lines {
		if l.Quantity <= 0 {
			continue
		}
		req.Items = append(req.Items, orderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Color:     l.Color,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}

	var out struct {
		ID      string `json:"_id"`
		OrderID string `json:"orderId"`
		Message string `json:"message"`
	}
	if err := s.be.Do(ctx, backend.Request{
		Op: "order.create", Method: http.MethodPost, Path: placeOrderRoute,
		Token: who.Token, Body: req, Out: &out, FailMsg: "Error placing order",
	}); err != nil {
		return Order{}, err
	}

	ordered := make([]string, 0, len(entries))
	for _, e := range entries {
		ordered = append(ordered, e.ID)
	}
	if _, err := s.carts.RemoveLines(ctx, ns, ordered); err != nil {
		logger.Error(ctx).Err(err).Msg("cart_lines_remove_after_order_failed")
	}

	id := out.OrderID
	if id == "" {
		id = out.ID
	}
	logger.Info(ctx).Str("order_id", id).Str("user_id", who.UserID).Str("grand_total", summary.GrandTotal.String()).Msg("order_placed")
	return Order{ID: id, Message: out.Message, Summary: summary}, nil
}
