// Package collection reads and writes whole JSON-array collections (cart,
// likes) in a kvstore. Reads fail soft: anything unreadable is an empty
// collection.
package collection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/drashti611/gowear-frontend/internal/kvstore"
	"github.com/drashti611/gowear-frontend/pkg/logger"
)

// Load returns the stored collection or an empty, non-nil slice.
func Load[T any](ctx context.Context, store kvstore.Store, ns, key string) []T {
	raw, ok, err := store.Get(ctx, ns, key)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("key", key).Msg("collection_load_failed")
		return []T{}
	}
	if !ok || raw == "" {
		return []T{}
	}

	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Debug(ctx).Err(err).Str("key", key).Msg("collection_corrupt")
		return []T{}
	}
	if out == nil {
		return []T{}
	}
	return out
}

// Save replaces the stored collection.
func Save[T any](ctx context.Context, store kvstore.Store, ns, key string, entries []T) error {
	if entries == nil {
		entries = []T{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("collection: encode %s: %w", key, err)
	}
	if err := store.Set(ctx, ns, key, string(b)); err != nil {
		return fmt.Errorf("collection: save %s: %w", key, err)
	}
	return nil
}
