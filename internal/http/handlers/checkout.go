package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drashti611/gowear-frontend/internal/http/middleware"
	"github.com/drashti611/gowear-frontend/internal/modules/checkout"
	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
	"github.com/drashti611/gowear-frontend/pkg/view"
)

type CheckoutHandler struct {
	Checkout *checkout.Service
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{Checkout: svc}
}

// Get handles GET /api/checkout.
func (h *CheckoutHandler) Get(c *gin.Context) {
	ctx, ns := sessionOf(c)
	c.JSON(http.StatusOK, view.NewCheckoutSummary(h.Checkout.Summary(ctx, ns)))
}

// Place handles POST /api/checkout behind middleware.RequireAuth.
func (h *CheckoutHandler) Place(c *gin.Context) {
	who, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Please log in to place an order"))
		return
	}
	var addr checkout.Address
	if !bindJSON(c, &addr) {
		return
	}
	ctx, ns := sessionOf(c)
	order, err := h.Checkout.Place(ctx, ns, who, addr)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"orderId": order.ID,
		"message": orDefault(order.Message, "Order placed successfully"),
		"summary": view.NewCheckoutSummary(order.Summary),
	})
}
