package likes

import (
	"context"

	"github.com/drashti611/gowear-frontend/internal/bus"
	"github.com/drashti611/gowear-frontend/internal/collection"
	"github.com/drashti611/gowear-frontend/internal/kvstore"
	"github.com/drashti611/gowear-frontend/internal/modules/cart"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
	"github.com/drashti611/gowear-frontend/pkg/logger"
)

// CartAdder is the part of the cart service MoveToCart needs.
type CartAdder interface {
	Add(ctx context.Context, ns string, p catalog.Product, color string) ([]cart.Entry, cart.AddStatus, error)
}

type Service struct {
	store kvstore.Store
	pub   bus.Publisher
	cart  CartAdder
	locks *kvstore.Locks

	// OnToggle, when set, observes toggles with result "liked" or "unliked".
	OnToggle func(result string)
}

// NewService builds the likes service; nil locks gives it its own.
func NewService(store kvstore.Store, pub bus.Publisher, c CartAdder, locks *kvstore.Locks) *Service {
	if locks == nil {
		locks = kvstore.NewLocks()
	}
	return &Service{store: store, pub: pub, cart: c, locks: locks}
}

func (s *Service) Items(ctx context.Context, ns string) []Entry {
	return collection.Load[Entry](ctx, s.store, ns, kvstore.KeyLikes)
}

func (s *Service) Count(ctx context.Context, ns string) int {
	return len(s.Items(ctx, ns))
}

func (s *Service) IsLiked(ctx context.Context, ns, productID string) bool {
	return Contains(s.Items(ctx, ns), productID)
}

func (s *Service) Toggle(ctx context.Context, ns string, p catalog.Product) (bool, error) {
	unlock := s.locks.Lock(ns)
	defer unlock()

	items, liked := Toggle(s.Items(ctx, ns), p)
	if err := s.save(ctx, ns, items); err != nil {
		return false, err
	}
	if s.OnToggle != nil {
		if liked {
			s.OnToggle("liked")
		} else {
			s.OnToggle("unliked")
		}
	}
	return liked, nil
}

func (s *Service) Remove(ctx context.Context, ns, productID string) ([]Entry, error) {
	unlock := s.locks.Lock(ns)
	defer unlock()

	items := Remove(s.Items(ctx, ns), productID)
	if err := s.save(ctx, ns, items); err != nil {
		return nil, err
	}
	return items, nil
}

// MoveToCart adds a liked product to the cart in its first color. The
// product stays liked.
func (s *Service) MoveToCart(ctx context.Context, ns, productID string) (cart.AddStatus, error) {
	e, ok := Find(s.Items(ctx, ns), productID)
	if !ok {
		return "", apperr.NotFoundErr("Product is not in your likes")
	}
	_, status, err := s.cart.Add(ctx, ns, e.Product, catalog.FirstColor(e.Product))
	return status, err
}

func (s *Service) save(ctx context.Context, ns string, items []Entry) error {
	if err := collection.Save(ctx, s.store, ns, kvstore.KeyLikes, items); err != nil {
		logger.Error(ctx).Err(err).Msg("likes_save_failed")
		return err
	}
	s.pub.Publish(ns)
	return nil
}
