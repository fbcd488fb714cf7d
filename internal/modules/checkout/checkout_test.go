package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drashti611/gowear-frontend/internal/backend"
	"github.com/drashti611/gowear-frontend/internal/kvstore"
	"github.com/drashti611/gowear-frontend/internal/modules/auth"
	"github.com/drashti611/gowear-frontend/internal/modules/cart"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
)

type nopPublisher struct{}

func (nopPublisher) Publish(string) {}

type products map[string]catalog.Product

func (p products) Product(_ context.Context, id string) (catalog.Product, error) {
	if v, ok := p[id]; ok {
		return v, nil
	}
	return catalog.Product{}, apperr.NotFoundErr("Product not found")
}

func tee(id string, stock int) catalog.Product {
	price := decimal.NewFromInt(1200)
	return catalog.Product{
		ID:   id,
		Name: "Tee " + id,
		Variants: []catalog.Variant{
			{Color: "Black", Sizes: []catalog.SizeOption{{Size: "M", Stock: stock, Price: &price}}},
		},
	}
}

var addr = Address{FullName: "Asha Rao", Phone: "9876543210", Line1: "12 MG Road", City: "Pune", State: "MH", Pincode: "411001"}

func TestCheckStock(t *testing.T) {
	entries := []cart.Entry{
		{Product: tee("a", 5), SelectedColor: "Black", Quantity: 2},
		{Product: tee("b", 5), SelectedColor: "Black", Quantity: 3},
		{Product: tee("c", 5), SelectedColor: "Black", Quantity: 1},
		{Product: tee("d", 5), SelectedColor: "Black", Quantity: 0},
	}
	current := map[string]catalog.Product{"a": tee("a", 2), "b": tee("b", 1)}

	err := CheckStock(entries, current)
	var oos *OutOfStockError
	require.True(t, errors.As(err, &oos))
	require.Len(t, oos.Items, 2)
	assert.Equal(t, "b", oos.Items[0].ProductID)
	assert.Equal(t, 1, oos.Items[0].Available)
	assert.Equal(t, "c", oos.Items[1].ProductID)
	assert.Equal(t, 0, oos.Items[1].Available)
	assert.Contains(t, oos.Fields()["b"], "only 1 left")

	assert.NoError(t, CheckStock(entries[:1], current))
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	var got orderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, placeOrderRoute, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"_id": "o1", "message": "Order placed"})
	}))
	defer srv.Close()

	carts := cart.NewService(kvstore.NewMemory(), nopPublisher{}, nil)
	_, _, err := carts.Add(ctx, "sess", tee("a", 5), "")
	require.NoError(t, err)
	_, err = carts.SetQuantity(ctx, "sess", "a", 3)
	require.NoError(t, err)

	s := NewService(carts, products{"a": tee("a", 5)}, backend.New(srv.URL, time.Second))
	assert.Equal(t, "3600", s.Summary(ctx, "sess").TotalAmount.String())

	order, err := s.Place(ctx, "sess", auth.Identity{Token: "tok", UserID: "u1"}, addr)
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, "Order placed", order.Message)
	assert.True(t, order.Summary.ShippingFee.IsZero())

	assert.Equal(t, "u1", got.UserID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)
	assert.Equal(t, "3600", got.GrandTotal.String())
	assert.Equal(t, "411001", got.Address.Pincode)

	assert.Empty(t, carts.Items(ctx, "sess"))
}

func TestPlaceRejectsEmptyCart(t *testing.T) {
	s := NewService(cart.NewService(kvstore.NewMemory(), nopPublisher{}, nil), products{}, nil)

	_, err := s.Place(context.Background(), "sess", auth.Identity{UserID: "u1"}, addr)
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Equal(t, http.StatusBadRequest, apperr.HTTPStatus(err))
}

func TestPlaceRejectsOutOfStock(t *testing.T) {
	ctx := context.Background()
	carts := cart.NewService(kvstore.NewMemory(), nopPublisher{}, nil)
	_, _, err := carts.Add(ctx, "sess", tee("a", 5), "")
	require.NoError(t, err)

	s := NewService(carts, products{"a": tee("a", 0)}, nil)
	_, err = s.Place(ctx, "sess", auth.Identity{UserID: "u1"}, addr)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperr.HTTPStatus(err))
	ae, _ := apperr.As(err)
	assert.Contains(t, ae.Fields, "a")
	assert.Len(t, carts.Items(ctx, "sess"), 1)
}

func TestPlaceKeepsLinesAddedWhileOrderIsInFlight(t *testing.T) {
	ctx := context.Background()
	arrived := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		_ = json.NewEncoder(w).Encode(map[string]string{"_id": "o1"})
	}))
	defer srv.Close()

	locks := kvstore.NewLocks()
	carts := cart.NewService(kvstore.NewMemory(), nopPublisher{}, locks)
	_, _, err := carts.Add(ctx, "sess", tee("a", 5), "")
	require.NoError(t, err)

	s := NewService(carts, products{"a": tee("a", 5)}, backend.New(srv.URL, 5*time.Second))
	done := make(chan error, 1)
	go func() {
		_, err := s.Place(ctx, "sess", auth.Identity{Token: "tok", UserID: "u1"}, addr)
		done <- err
	}()

	<-arrived
	_, status, err := carts.Add(ctx, "sess", tee("b", 5), "")
	require.NoError(t, err)
	assert.Equal(t, cart.Added, status)
	close(release)
	require.NoError(t, <-done)

	items := carts.Items(ctx, "sess")
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].ID)
}
