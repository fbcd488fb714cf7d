package cart

import (
	"context"

	"github.com/drashti611/gowear-frontend/internal/bus"
	"github.com/drashti611/gowear-frontend/internal/kvstore"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
	"github.com/drashti611/gowear-frontend/pkg/logger"
)

type Service struct {
	repo  *Repo
	pub   bus.Publisher
	locks *kvstore.Locks

	// OnMutation, when set, observes every mutation (metrics).
	OnMutation func(op, result string)
}

// NewService builds the cart service. locks is shared with every other
// writer of the session namespace; nil gives the service its own.
func NewService(store kvstore.Store, pub bus.Publisher, locks *kvstore.Locks) *Service {
	if locks == nil {
		locks = kvstore.NewLocks()
	}
	return &Service{repo: NewRepo(store), pub: pub, locks: locks}
}

func (s *Service) Items(ctx context.Context, ns string) []Entry {
	return s.repo.Load(ctx, ns)
}

func (s *Service) Count(ctx context.Context, ns string) int {
	return Count(s.repo.Load(ctx, ns))
}

func (s *Service) Add(ctx context.Context, ns string, p catalog.Product, color string) ([]Entry, AddStatus, error) {
	unlock := s.locks.Lock(ns)
	defer unlock()

	items, status := AddToCart(s.repo.Load(ctx, ns), p, color)
	if status == AlreadyInCart {
		s.observe("add", string(status))
		return items, status, nil
	}
	if color != "" && !catalog.HasColor(p, color) {
		s.observe("add", "invalid_color")
		return nil, "", apperr.InvalidErr("Please choose one of the available colors", map[string]string{
			"color": "Color " + color + " is not available for this product",
		})
	}
	if err := s.commit(ctx, ns, "add", items); err != nil {
		return nil, "", err
	}
	s.observe("add", string(status))
	logger.Debug(ctx).Str("product_id", p.ID).Msg("cart_item_added")
	return items, status, nil
}

func (s *Service) Remove(ctx context.Context, ns, productID string) ([]Entry, error) {
	unlock := s.locks.Lock(ns)
	defer unlock()

	items := RemoveFromCart(s.repo.Load(ctx, ns), productID)
	if err := s.commit(ctx, ns, "remove", items); err != nil {
		return nil, err
	}
	s.observe("remove", "ok")
	return items, nil
}

func (s *Service) SetQuantity(ctx context.Context, ns, productID string, quantity int) ([]Entry, error) {
	unlock := s.locks.Lock(ns)
	defer unlock()

	items := SetQuantity(s.repo.Load(ctx, ns), productID, quantity)
	if err := s.commit(ctx, ns, "set_quantity", items); err != nil {
		return nil, err
	}
	s.observe("set_quantity", "ok")
	return items, nil
}

func (s *Service) Clear(ctx context.Context, ns string) error {
	unlock := s.locks.Lock(ns)
	defer unlock()

	if err := s.repo.Clear(ctx, ns); err != nil {
		s.observe("clear", "error")
		return err
	}
	s.observe("clear", "ok")
	s.pub.Publish(ns)
	return nil
}

// RemoveLines drops the lines for ids and keeps everything else, including
// lines added since the caller read the cart.
func (s *Service) RemoveLines(ctx context.Context, ns string, ids []string) ([]Entry, error) {
	unlock := s.locks.Lock(ns)
	defer unlock()

	items := RemoveLines(s.repo.Load(ctx, ns), ids)
	if err := s.commit(ctx, ns, "remove_lines", items); err != nil {
		return nil, err
	}
	s.observe("remove_lines", "ok")
	return items, nil
}

func (s *Service) commit(ctx context.Context, ns, op string, items []Entry) error {
	if err := s.repo.Save(ctx, ns, items); err != nil {
		s.observe(op, "error")
		logger.Error(ctx).Err(err).Str("op", op).Msg("cart_save_failed")
		return err
	}
	s.pub.Publish(ns)
	return nil
}

func (s *Service) observe(op, result string) {
	if s.OnMutation != nil {
		s.OnMutation(op, result)
	}
}
