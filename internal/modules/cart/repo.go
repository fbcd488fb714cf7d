package cart

import (
	"context"

	"github.com/drashti611/gowear-frontend/internal/collection"
	"github.com/drashti611/gowear-frontend/internal/kvstore"
)

type Repo struct {
	store kvstore.Store
}

func NewRepo(store kvstore.Store) *Repo {
	return &Repo{store: store}
}

func (r *Repo) Load(ctx context.Context, ns string) []Entry {
	return collection.Load[Entry](ctx, r.store, ns, kvstore.KeyCart)
}

func (r *Repo) Save(ctx context.Context, ns string, entries []Entry) error {
	return collection.Save(ctx, r.store, ns, kvstore.KeyCart, entries)
}

func (r *Repo) Clear(ctx context.Context, ns string) error {
	return r.store.Delete(ctx, ns, kvstore.KeyCart)
}
